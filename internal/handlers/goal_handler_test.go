package handlers

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "countcoins/internal/errors"
	"countcoins/internal/models"
	"countcoins/internal/services"
)

// mockGoalService implements services.GoalServicer with function fields.
type mockGoalService struct {
	createFn   func(userID uint, title string, targetAmount, currentAmount float64, deadline *time.Time) (*models.Goal, error)
	listFn     func(userID uint) ([]models.Goal, error)
	getByIDFn  func(userID, goalID uint) (*models.Goal, error)
	updateFn   func(userID, goalID uint, update services.GoalUpdate) (*models.Goal, error)
	deleteFn   func(userID, goalID uint) error
	progressFn func(userID uint) (*services.GoalProgress, error)
}

var _ services.GoalServicer = (*mockGoalService)(nil)

func (m *mockGoalService) Create(userID uint, title string, targetAmount, currentAmount float64, deadline *time.Time) (*models.Goal, error) {
	return m.createFn(userID, title, targetAmount, currentAmount, deadline)
}
func (m *mockGoalService) List(userID uint) ([]models.Goal, error) {
	return m.listFn(userID)
}
func (m *mockGoalService) GetByID(userID, goalID uint) (*models.Goal, error) {
	return m.getByIDFn(userID, goalID)
}
func (m *mockGoalService) Update(userID, goalID uint, update services.GoalUpdate) (*models.Goal, error) {
	return m.updateFn(userID, goalID, update)
}
func (m *mockGoalService) Delete(userID, goalID uint) error {
	return m.deleteFn(userID, goalID)
}
func (m *mockGoalService) Progress(userID uint) (*services.GoalProgress, error) {
	return m.progressFn(userID)
}

func setupGoalRouter(service services.GoalServicer) *gin.Engine {
	handler := NewGoalHandler(service)
	router := gin.New()
	group := router.Group("/goals", injectUserID(1))
	group.POST("", handler.Create)
	group.GET("", handler.List)
	group.GET("/progress", handler.Progress)
	group.GET("/:id", handler.Get)
	group.PUT("/:id", handler.Update)
	group.DELETE("/:id", handler.Delete)
	return router
}

func TestGoalHandler_Create(t *testing.T) {
	mock := &mockGoalService{
		createFn: func(userID uint, title string, targetAmount, currentAmount float64, deadline *time.Time) (*models.Goal, error) {
			if deadline == nil {
				t.Error("expected deadline passed through")
			}
			return &models.Goal{Base: models.Base{ID: 3}, UserID: userID, Title: title, TargetAmount: targetAmount, CurrentAmount: currentAmount, Deadline: deadline}, nil
		},
	}
	router := setupGoalRouter(mock)

	w := doRequest(t, router, http.MethodPost, "/goals", gin.H{
		"title":        "Emergency fund",
		"targetAmount": 5000,
		"deadline":     "2026-12-31",
	})
	assertStatus(t, w, http.StatusCreated)
}

func TestGoalHandler_CreateValidation(t *testing.T) {
	mock := &mockGoalService{}
	router := setupGoalRouter(mock)

	cases := []struct {
		name string
		body gin.H
	}{
		{"missing title", gin.H{"targetAmount": 100}},
		{"missing target", gin.H{"title": "Fund"}},
		{"zero target", gin.H{"title": "Fund", "targetAmount": 0}},
		{"negative current", gin.H{"title": "Fund", "targetAmount": 100, "currentAmount": -1}},
		{"bad deadline", gin.H{"title": "Fund", "targetAmount": 100, "deadline": "soon"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := doRequest(t, router, http.MethodPost, "/goals", tc.body)
			assertStatus(t, w, http.StatusBadRequest)
		})
	}
}

func TestGoalHandler_List(t *testing.T) {
	mock := &mockGoalService{
		listFn: func(userID uint) ([]models.Goal, error) {
			return []models.Goal{
				{Base: models.Base{ID: 1}, Title: "A"},
				{Base: models.Base{ID: 2}, Title: "B"},
			}, nil
		},
	}
	router := setupGoalRouter(mock)

	w := doRequest(t, router, http.MethodGet, "/goals", nil)
	assertStatus(t, w, http.StatusOK)

	env := parseEnvelope(t, w)
	var goals []models.Goal
	if err := json.Unmarshal(env.Data, &goals); err != nil {
		t.Fatalf("failed to decode goals: %v", err)
	}
	if len(goals) != 2 {
		t.Errorf("expected 2 goals, got %d", len(goals))
	}
}

func TestGoalHandler_GetNotFound(t *testing.T) {
	mock := &mockGoalService{
		getByIDFn: func(userID, goalID uint) (*models.Goal, error) {
			return nil, apperrors.ErrGoalNotFound
		},
	}
	router := setupGoalRouter(mock)

	w := doRequest(t, router, http.MethodGet, "/goals/99", nil)
	assertErrorEnvelope(t, w, http.StatusNotFound, "Goal not found")
}

func TestGoalHandler_Update(t *testing.T) {
	mock := &mockGoalService{
		updateFn: func(userID, goalID uint, update services.GoalUpdate) (*models.Goal, error) {
			if update.CurrentAmount == nil || *update.CurrentAmount != 250 {
				t.Errorf("expected current amount 250, got %+v", update.CurrentAmount)
			}
			return &models.Goal{Base: models.Base{ID: goalID}, CurrentAmount: 250}, nil
		},
	}
	router := setupGoalRouter(mock)

	w := doRequest(t, router, http.MethodPut, "/goals/3", gin.H{"currentAmount": 250})
	assertStatus(t, w, http.StatusOK)
}

func TestGoalHandler_Delete(t *testing.T) {
	mock := &mockGoalService{
		deleteFn: func(userID, goalID uint) error { return nil },
	}
	router := setupGoalRouter(mock)

	w := doRequest(t, router, http.MethodDelete, "/goals/3", nil)
	assertStatus(t, w, http.StatusOK)
}

func TestGoalHandler_Progress(t *testing.T) {
	mock := &mockGoalService{
		progressFn: func(userID uint) (*services.GoalProgress, error) {
			return &services.GoalProgress{TotalGoals: 2, CompletedGoals: 1, TotalTargetAmount: 300, TotalCurrentAmount: 150, AverageProgress: 50}, nil
		},
	}
	router := setupGoalRouter(mock)

	w := doRequest(t, router, http.MethodGet, "/goals/progress", nil)
	assertStatus(t, w, http.StatusOK)

	env := parseEnvelope(t, w)
	var progress services.GoalProgress
	if err := json.Unmarshal(env.Data, &progress); err != nil {
		t.Fatalf("failed to decode progress: %v", err)
	}
	if progress.AverageProgress != 50 {
		t.Errorf("expected average progress 50, got %v", progress.AverageProgress)
	}
}
