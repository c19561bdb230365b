package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "countcoins/internal/errors"
	"countcoins/internal/models"
)

// BudgetService handles the single budget allocation rule each user may hold.
type BudgetService struct {
	db *gorm.DB
}

// NewBudgetService creates a new BudgetService with the given database connection.
func NewBudgetService(db *gorm.DB) *BudgetService {
	return &BudgetService{db: db}
}

// resolveAllocation turns a rule (plus custom percentages for RuleCustom) into
// the concrete needs/wants/savings split stored on the budget row.
func resolveAllocation(rule models.BudgetRule, custom *Allocation) (Allocation, error) {
	if needs, wants, savings, ok := rule.Allocation(); ok {
		return Allocation{Needs: needs, Wants: wants, Savings: savings}, nil
	}
	if rule != models.RuleCustom || custom == nil {
		return Allocation{}, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid budget rule")
	}
	if custom.Needs+custom.Wants+custom.Savings != 100 {
		return Allocation{}, apperrors.WithMessage(apperrors.ErrInvalidInput, "Custom budget percentages must add up to 100")
	}
	return *custom, nil
}

// Create stores the user's budget. Each user may hold only one.
func (s *BudgetService) Create(userID uint, rule models.BudgetRule, custom *Allocation) (*models.Budget, error) {
	var count int64
	if err := s.db.Model(&models.Budget{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count > 0 {
		return nil, apperrors.ErrBudgetExists
	}

	alloc, err := resolveAllocation(rule, custom)
	if err != nil {
		return nil, err
	}

	budget := &models.Budget{
		UserID:  userID,
		Rule:    rule,
		Needs:   alloc.Needs,
		Wants:   alloc.Wants,
		Savings: alloc.Savings,
	}
	if err := s.db.Create(budget).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return budget, nil
}

// Get returns the user's budget, or nil without error when none exists.
func (s *BudgetService) Get(userID uint) (*models.Budget, error) {
	var budget models.Budget
	err := s.db.Where("user_id = ?", userID).Order("created_at DESC").First(&budget).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &budget, nil
}

// Update replaces the rule and percentages of the user's existing budget.
func (s *BudgetService) Update(userID uint, rule models.BudgetRule, custom *Allocation) (*models.Budget, error) {
	var budget models.Budget
	err := s.db.Where("user_id = ?", userID).Order("created_at DESC").First(&budget).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrBudgetNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	alloc, aerr := resolveAllocation(rule, custom)
	if aerr != nil {
		return nil, aerr
	}

	updates := map[string]interface{}{
		"rule":    rule,
		"needs":   alloc.Needs,
		"wants":   alloc.Wants,
		"savings": alloc.Savings,
	}
	if err := s.db.Model(&budget).Updates(updates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &budget, nil
}

// Delete removes the user's budget.
func (s *BudgetService) Delete(userID uint) error {
	result := s.db.Where("user_id = ?", userID).Delete(&models.Budget{})
	if result.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrBudgetNotFound
	}
	return nil
}

// Summary computes spending against the budget targets. Targets are derived
// from total income, so remaining amounts can be negative when overspent.
func (s *BudgetService) Summary(userID uint) (*BudgetSummary, error) {
	budget, err := s.Get(userID)
	if err != nil {
		return nil, err
	}
	if budget == nil {
		return nil, apperrors.ErrBudgetNotFound
	}

	stats, err := NewTransactionService(s.db).Stats(userID)
	if err != nil {
		return nil, err
	}

	summary := &BudgetSummary{
		TotalIncome:   stats.TotalIncome,
		TotalExpenses: stats.TotalExpenses,
		Balance:       stats.Balance,
		NeedsSpent:    stats.NeedsSpent,
		WantsSpent:    stats.WantsSpent,
		SavingsSpent:  stats.SavingsSpent,
		NeedsBudget:   stats.TotalIncome * budget.Needs / 100,
		WantsBudget:   stats.TotalIncome * budget.Wants / 100,
		SavingsBudget: stats.TotalIncome * budget.Savings / 100,
	}
	summary.NeedsRemaining = summary.NeedsBudget - summary.NeedsSpent
	summary.WantsRemaining = summary.WantsBudget - summary.WantsSpent
	summary.SavingsRemaining = summary.SavingsBudget - summary.SavingsSpent

	return summary, nil
}
