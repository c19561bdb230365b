package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "countcoins/internal/errors"
	"countcoins/internal/models"
)

// GoalService handles savings goal CRUD and progress aggregation.
type GoalService struct {
	db *gorm.DB
}

// NewGoalService creates a new GoalService with the given database connection.
func NewGoalService(db *gorm.DB) *GoalService {
	return &GoalService{db: db}
}

// Create stores a new savings goal for the user.
func (s *GoalService) Create(userID uint, title string, targetAmount, currentAmount float64, deadline *time.Time) (*models.Goal, error) {
	goal := &models.Goal{
		UserID:        userID,
		Title:         title,
		TargetAmount:  targetAmount,
		CurrentAmount: currentAmount,
		Deadline:      deadline,
	}
	if err := s.db.Create(goal).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return goal, nil
}

// List returns the user's goals newest-first.
func (s *GoalService) List(userID uint) ([]models.Goal, error) {
	var goals []models.Goal
	err := s.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&goals).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return goals, nil
}

// GetByID returns one of the user's goals. Goals owned by other users are
// indistinguishable from nonexistent ones.
func (s *GoalService) GetByID(userID, goalID uint) (*models.Goal, error) {
	var goal models.Goal
	err := s.db.Where("id = ? AND user_id = ?", goalID, userID).First(&goal).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrGoalNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &goal, nil
}

// Update applies the non-nil fields of the update to the user's goal.
func (s *GoalService) Update(userID, goalID uint, update GoalUpdate) (*models.Goal, error) {
	goal, err := s.GetByID(userID, goalID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if update.Title != nil {
		updates["title"] = *update.Title
	}
	if update.TargetAmount != nil {
		updates["target_amount"] = *update.TargetAmount
	}
	if update.CurrentAmount != nil {
		updates["current_amount"] = *update.CurrentAmount
	}
	if update.Deadline != nil {
		updates["deadline"] = *update.Deadline
	}

	if len(updates) > 0 {
		if err := s.db.Model(goal).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	return goal, nil
}

// Delete removes one of the user's goals.
func (s *GoalService) Delete(userID, goalID uint) error {
	result := s.db.Where("id = ? AND user_id = ?", goalID, userID).Delete(&models.Goal{})
	if result.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrGoalNotFound
	}
	return nil
}

// Progress aggregates completion across all the user's goals. A goal is
// complete when its current amount has reached its target. Average progress
// is total saved over total target, as a percentage.
func (s *GoalService) Progress(userID uint) (*GoalProgress, error) {
	goals, err := s.List(userID)
	if err != nil {
		return nil, err
	}

	progress := &GoalProgress{TotalGoals: len(goals)}
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

	return progress, nil
}
