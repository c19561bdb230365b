package models

import "time"

// TransactionType represents the type of transaction
type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "income"
	TransactionTypeExpense TransactionType = "expense"
)

// TransactionCategory represents the budget category a transaction counts
// against. Categories are only meaningful for expenses.
type TransactionCategory string

const (
	CategoryNeeds   TransactionCategory = "needs"
	CategoryWants   TransactionCategory = "wants"
	CategorySavings TransactionCategory = "savings"
)

// Transaction represents a single income or expense entry owned by a user.
type Transaction struct {
	Base
	UserID      uint                `gorm:"not null;index" json:"userId"`
	Type        TransactionType     `gorm:"not null" json:"type"`
	Category    TransactionCategory `gorm:"not null" json:"category"`
	Amount      float64             `gorm:"not null" json:"amount"`
	Description string              `gorm:"size:200" json:"description"`
	Date        time.Time           `gorm:"not null;index" json:"date"`
}
