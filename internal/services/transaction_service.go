package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "countcoins/internal/errors"
	"countcoins/internal/models"
	"countcoins/internal/pagination"
)

// TransactionService handles transaction CRUD and aggregation for a user.
type TransactionService struct {
	db *gorm.DB
}

// NewTransactionService creates a new TransactionService with the given
// database connection.
func NewTransactionService(db *gorm.DB) *TransactionService {
	return &TransactionService{db: db}
}

// Create records a new transaction. A zero date defaults to the current time.
func (s *TransactionService) Create(userID uint, txType models.TransactionType, category models.TransactionCategory, amount float64, description string, date time.Time) (*models.Transaction, error) {
	if date.IsZero() {
		date = time.Now()
	}

	tx := &models.Transaction{
		UserID:      userID,
		Type:        txType,
		Category:    category,
		Amount:      amount,
		Description: description,
		Date:        date,
	}
	if err := s.db.Create(tx).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return tx, nil
}

// List returns the user's transactions newest-first with optional filters,
// along with the total count matching the filters.
func (s *TransactionService) List(userID uint, page pagination.PageRequest, filter TransactionFilter) ([]models.Transaction, int64, error) {
	query := s.db.Model(&models.Transaction{}).Where("user_id = ?", userID)

	if filter.Type != nil {
		query = query.Where("type = ?", *filter.Type)
	}
	if filter.Category != nil {
		query = query.Where("category = ?", *filter.Category)
	}
	if filter.StartDate != nil {
		query = query.Where("date >= ?", *filter.StartDate)
	}
	if filter.EndDate != nil {
		query = query.Where("date <= ?", *filter.EndDate)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var transactions []models.Transaction
	err := query.Order("date DESC").
		Scopes(pagination.Paginate(page)).
		Find(&transactions).Error
	if err != nil {
		return nil, 0, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return transactions, total, nil
}

// GetByID returns one of the user's transactions. Transactions owned by other
// users are indistinguishable from nonexistent ones.
func (s *TransactionService) GetByID(userID, transactionID uint) (*models.Transaction, error) {
	var tx models.Transaction
	err := s.db.Where("id = ? AND user_id = ?", transactionID, userID).First(&tx).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTransactionNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &tx, nil
}

// Update applies the non-nil fields of the update to the user's transaction.
func (s *TransactionService) Update(userID, transactionID uint, update TransactionUpdate) (*models.Transaction, error) {
	tx, err := s.GetByID(userID, transactionID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if update.Type != nil {
		updates["type"] = *update.Type
	}
	if update.Category != nil {
		updates["category"] = *update.Category
	}
	if update.Amount != nil {
		updates["amount"] = *update.Amount
	}
	if update.Description != nil {
		updates["description"] = *update.Description
	}
	if update.Date != nil {
		updates["date"] = *update.Date
	}

	if len(updates) > 0 {
		if err := s.db.Model(tx).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	return tx, nil
}

// Delete removes one of the user's transactions.
func (s *TransactionService) Delete(userID, transactionID uint) error {
	result := s.db.Where("id = ? AND user_id = ?", transactionID, userID).
		Delete(&models.Transaction{})
	if result.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrTransactionNotFound
	}
	return nil
}

// Stats aggregates the user's transactions: total income, total expenses,
// balance, and expenses broken down by category.
func (s *TransactionService) Stats(userID uint) (*TransactionStats, error) {
	stats := &TransactionStats{}

	err := s.db.Model(&models.Transaction{}).
		Where("user_id = ? AND type = ?", userID, models.TransactionTypeIncome).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&stats.TotalIncome).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var byCategory []struct {
		Category models.TransactionCategory
		Total    float64
	}
	err = s.db.Model(&models.Transaction{}).
		Where("user_id = ? AND type = ?", userID, models.TransactionTypeExpense).
		Select("category, COALESCE(SUM(amount), 0) AS total").
		Group("category").
		Scan(&byCategory).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	for _, row := range byCategory {
		stats.TotalExpenses += row.Total
		switch row.Category {
		case models.CategoryNeeds:
			stats.NeedsSpent = row.Total
		case models.CategoryWants:
			stats.WantsSpent = row.Total
		case models.CategorySavings:
			stats.SavingsSpent = row.Total
		}
	}

	stats.Balance = stats.TotalIncome - stats.TotalExpenses
	return stats, nil
}
