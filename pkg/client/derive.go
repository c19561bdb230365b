package client

// Pure view-model helpers. These mirror the server's aggregation rules so a
// frontend can derive display values from already-fetched data without extra
// round trips.

// Totals sums a slice of transactions into income, expenses, and balance.
func Totals(txs []Transaction) (income, expenses, balance float64) {
	for _, tx := range txs {
		switch tx.Type {
		case "income":
			income += tx.Amount
		case "expense":
			expenses += tx.Amount
		}
	}
	return income, expenses, income - expenses
}

// SpentByCategory sums expense amounts per category.
func SpentByCategory(txs []Transaction) map[string]float64 {
	spent := map[string]float64{}
	for _, tx := range txs {
		if tx.Type == "expense" {
			spent[tx.Category] += tx.Amount
		}
	}
	return spent
}

// BudgetTargets derives the per-category targets a budget implies for the
// given total income.
func BudgetTargets(b Budget, totalIncome float64) (needs, wants, savings float64) {
	return totalIncome * b.Needs / 100,
		totalIncome * b.Wants / 100,
		totalIncome * b.Savings / 100
}

// GoalCompletion returns a goal's progress as a percentage, capped at 100.
func GoalCompletion(g Goal) float64 {
	if g.TargetAmount <= 0 {
		return 0
	}
	pct := g.CurrentAmount / g.TargetAmount * 100
	if pct > 100 {
		return 100
	}
	return pct
}

// SummarizeGoals aggregates goals the same way the server's progress endpoint
// does: a goal counts as complete once its current amount reaches its target,
// and average progress is total saved over total target.
func SummarizeGoals(goals []Goal) GoalProgress {
	progress := GoalProgress{TotalGoals: len(goals)}
	for _, g := range goals {
		progress.TotalTargetAmount += g.TargetAmount
		progress.TotalCurrentAmount += g.CurrentAmount
		if g.CurrentAmount >= g.TargetAmount {
			progress.CompletedGoals++
		}
	}
	if progress.TotalTargetAmount > 0 {
		progress.AverageProgress = progress.TotalCurrentAmount / progress.TotalTargetAmount * 100
	}
	return progress
}
