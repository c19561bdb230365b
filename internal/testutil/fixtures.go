package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"countcoins/internal/models"
)

var fixtureCounter uint64

// TestPassword is the plaintext password backing every fixture user.
const TestPassword = "password123"

// CreateTestUser inserts a user with a unique email and a bcrypt hash of
// TestPassword. MinCost keeps fixture creation fast.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()

	n := atomic.AddUint64(&fixtureCounter, 1)
	hashed, err := bcrypt.GenerateFromPassword([]byte(TestPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash fixture password: %v", err)
	}

	user := &models.User{
		Email:    fmt.Sprintf("user%d@example.com", n),
		Password: string(hashed),
		Name:     fmt.Sprintf("Test User %d", n),
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestTransaction inserts a transaction for the user dated now.
func CreateTestTransaction(t *testing.T, db *gorm.DB, userID uint, txType models.TransactionType, category models.TransactionCategory, amount float64) *models.Transaction {
	t.Helper()

	tx := &models.Transaction{
		UserID:      userID,
		Type:        txType,
		Category:    category,
		Amount:      amount,
		Description: "test transaction",
		Date:        time.Now(),
	}
	if err := db.Create(tx).Error; err != nil {
		t.Fatalf("failed to create test transaction: %v", err)
	}
	return tx
}

// CreateTestBudget inserts a 50/30/20 budget for the user.
func CreateTestBudget(t *testing.T, db *gorm.DB, userID uint) *models.Budget {
	t.Helper()

	budget := &models.Budget{
		UserID:  userID,
		Rule:    models.RuleFiftyThirtyTwenty,
		Needs:   50,
		Wants:   30,
		Savings: 20,
	}
	if err := db.Create(budget).Error; err != nil {
		t.Fatalf("failed to create test budget: %v", err)
	}
	return budget
}

// CreateTestGoal inserts a goal with the given target and current amounts.
func CreateTestGoal(t *testing.T, db *gorm.DB, userID uint, target, current float64) *models.Goal {
	t.Helper()

	n := atomic.AddUint64(&fixtureCounter, 1)
	goal := &models.Goal{
		UserID:        userID,
		Title:         fmt.Sprintf("Goal %d", n),
		TargetAmount:  target,
		CurrentAmount: current,
	}
	if err := db.Create(goal).Error; err != nil {
		t.Fatalf("failed to create test goal: %v", err)
	}
	return goal
}
