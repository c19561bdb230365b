package models

// BudgetRule selects how income is split across needs/wants/savings.
type BudgetRule string

const (
	RuleFiftyThirtyTwenty BudgetRule = "fifty_thirty_twenty"
	RuleSixtyTwentyTwenty BudgetRule = "sixty_twenty_twenty"
	RuleSeventyTwentyTen  BudgetRule = "seventy_twenty_ten"
	RuleCustom            BudgetRule = "custom"
)

// Allocation resolves a preset rule into its needs/wants/savings percentages.
// ok is false for RuleCustom and unknown rules, whose percentages come from
// the budget row itself.
func (r BudgetRule) Allocation() (needs, wants, savings float64, ok bool) {
	switch r {
	case RuleFiftyThirtyTwenty:
		return 50, 30, 20, true
	case RuleSixtyTwentyTwenty:
		return 60, 20, 20, true
	case RuleSeventyTwentyTen:
		return 70, 20, 10, true
	}
	return 0, 0, 0, false
}

// Budget represents a user's income allocation rule. Each user has at most
// one budget; uniqueness is enforced at the service level.
type Budget struct {
	Base
	UserID  uint       `gorm:"not null;index" json:"userId"`
	Rule    BudgetRule `gorm:"not null" json:"rule"`
	Needs   float64    `gorm:"not null" json:"needs"`
	Wants   float64    `gorm:"not null" json:"wants"`
	Savings float64    `gorm:"not null" json:"savings"`
}
