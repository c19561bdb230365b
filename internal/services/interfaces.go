package services

import (
	"time"

	"countcoins/internal/models"
	"countcoins/internal/pagination"
)

// ProfileUpdate holds the optional fields of a profile update. Nil fields are
// left unchanged.
type ProfileUpdate struct {
	Email    *string
	Password *string
}

// AuthServicer defines the contract for authentication and account logic.
type AuthServicer interface {
	Signup(email, password, name string) (*models.User, error)
	Login(email, password string) (*models.User, error)
	GetProfile(userID uint) (*models.User, error)
	UpdateProfile(userID uint, update ProfileUpdate) (*models.User, error)
	DeleteAccount(userID uint) error
	RequestPasswordReset(email string) error
	ResetPassword(resetToken, newPassword string) error
}

// TransactionFilter holds optional filter parameters for listing transactions.
type TransactionFilter struct {
	Type      *models.TransactionType
	Category  *models.TransactionCategory
	StartDate *time.Time
	EndDate   *time.Time
}

// TransactionUpdate holds the optional fields of a transaction update. Nil
// fields are left unchanged.
type TransactionUpdate struct {
	Type        *models.TransactionType
	Category    *models.TransactionCategory
	Amount      *float64
	Description *string
	Date        *time.Time
}

// TransactionStats aggregates a user's transactions by type and category.
type TransactionStats struct {
	TotalIncome   float64 `json:"totalIncome"`
	TotalExpenses float64 `json:"totalExpenses"`
	Balance       float64 `json:"balance"`
	NeedsSpent    float64 `json:"needsSpent"`
	WantsSpent    float64 `json:"wantsSpent"`
	SavingsSpent  float64 `json:"savingsSpent"`
}

// TransactionServicer defines the contract for transaction-related business logic.
type TransactionServicer interface {
	Create(userID uint, txType models.TransactionType, category models.TransactionCategory, amount float64, description string, date time.Time) (*models.Transaction, error)
	List(userID uint, page pagination.PageRequest, filter TransactionFilter) ([]models.Transaction, int64, error)
	GetByID(userID, transactionID uint) (*models.Transaction, error)
	Update(userID, transactionID uint, update TransactionUpdate) (*models.Transaction, error)
	Delete(userID, transactionID uint) error
	Stats(userID uint) (*TransactionStats, error)
}

// Allocation holds needs/wants/savings percentages for a custom budget rule.
type Allocation struct {
	Needs   float64
	Wants   float64
	Savings float64
}

// BudgetSummary compares a user's spending against the budget targets derived
// from total income.
type BudgetSummary struct {
	TotalIncome      float64 `json:"totalIncome"`
	TotalExpenses    float64 `json:"totalExpenses"`
	Balance          float64 `json:"balance"`
	NeedsSpent       float64 `json:"needsSpent"`
	WantsSpent       float64 `json:"wantsSpent"`
	SavingsSpent     float64 `json:"savingsSpent"`
	NeedsBudget      float64 `json:"needsBudget"`
	WantsBudget      float64 `json:"wantsBudget"`
	SavingsBudget    float64 `json:"savingsBudget"`
	NeedsRemaining   float64 `json:"needsRemaining"`
	WantsRemaining   float64 `json:"wantsRemaining"`
	SavingsRemaining float64 `json:"savingsRemaining"`
}

// BudgetServicer defines the contract for budget-related business logic.
type BudgetServicer interface {
	Create(userID uint, rule models.BudgetRule, custom *Allocation) (*models.Budget, error)
	Get(userID uint) (*models.Budget, error)
	Update(userID uint, rule models.BudgetRule, custom *Allocation) (*models.Budget, error)
	Delete(userID uint) error
	Summary(userID uint) (*BudgetSummary, error)
}

// GoalUpdate holds the optional fields of a goal update. Nil fields are left
// unchanged.
type GoalUpdate struct {
	Title         *string
	TargetAmount  *float64
	CurrentAmount *float64
	Deadline      *time.Time
}

// GoalProgress aggregates completion data across all of a user's goals.
type GoalProgress struct {
	TotalGoals         int     `json:"totalGoals"`
	CompletedGoals     int     `json:"completedGoals"`
	TotalTargetAmount  float64 `json:"totalTargetAmount"`
	TotalCurrentAmount float64 `json:"totalCurrentAmount"`
	AverageProgress    float64 `json:"averageProgress"`
}

// GoalServicer defines the contract for goal-related business logic.
type GoalServicer interface {
	Create(userID uint, title string, targetAmount, currentAmount float64, deadline *time.Time) (*models.Goal, error)
	List(userID uint) ([]models.Goal, error)
	GetByID(userID, goalID uint) (*models.Goal, error)
	Update(userID, goalID uint, update GoalUpdate) (*models.Goal, error)
	Delete(userID, goalID uint) error
	Progress(userID uint) (*GoalProgress, error)
}
