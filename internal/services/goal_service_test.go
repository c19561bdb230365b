package services

import (
	"testing"
	"time"

	"countcoins/internal/testutil"
)

func TestGoalService_Create(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	service := NewGoalService(db)
	user := testutil.CreateTestUser(t, db)

	deadline := time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC)
	goal, err := service.Create(user.ID, "Emergency fund", 5000, 0, &deadline)
	testutil.AssertNoError(t, err)

	if goal.ID == 0 {
		t.Error("expected goal to have an ID")
	}
	if goal.Deadline == nil || !goal.Deadline.Equal(deadline) {
		t.Errorf("expected deadline %v, got %v", deadline, goal.Deadline)
	}
}

func TestGoalService_List(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	service := NewGoalService(db)
	user := testutil.CreateTestUser(t, db)
	other := testutil.CreateTestUser(t, db)

	testutil.CreateTestGoal(t, db, user.ID, 1000, 200)
	testutil.CreateTestGoal(t, db, user.ID, 500, 500)
	testutil.CreateTestGoal(t, db, other.ID, 999, 0)

	goals, err := service.List(user.ID)
	testutil.AssertNoError(t, err)
	if len(goals) != 2 {
		t.Errorf("expected 2 goals for user, got %d", len(goals))
	}
}

func TestGoalService_TenantIsolation(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	service := NewGoalService(db)
	owner := testutil.CreateTestUser(t, db)
	other := testutil.CreateTestUser(t, db)
	goal := testutil.CreateTestGoal(t, db, owner.ID, 1000, 200)

	_, err := service.GetByID(other.ID, goal.ID)
	testutil.AssertAppError(t, err, "GOAL_NOT_FOUND")

	current := 999.0
	_, err = service.Update(other.ID, goal.ID, GoalUpdate{CurrentAmount: &current})
	testutil.AssertAppError(t, err, "GOAL_NOT_FOUND")

	err = service.Delete(other.ID, goal.ID)
	testutil.AssertAppError(t, err, "GOAL_NOT_FOUND")
}

func TestGoalService_Update(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	service := NewGoalService(db)
	user := testutil.CreateTestUser(t, db)
	goal := testutil.CreateTestGoal(t, db, user.ID, 1000, 200)

	current := 350.0
	title := "Holiday fund"
	updated, err := service.Update(user.ID, goal.ID, GoalUpdate{CurrentAmount: &current, Title: &title})
	testutil.AssertNoError(t, err)

	if updated.CurrentAmount != 350 {
		t.Errorf("expected current amount 350, got %v", updated.CurrentAmount)
	}
	if updated.Title != "Holiday fund" {
		t.Errorf("expected updated title, got %s", updated.Title)
	}
	if updated.TargetAmount != 1000 {
		t.Errorf("expected target unchanged, got %v", updated.TargetAmount)
	}
}

func TestGoalService_Delete(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	service := NewGoalService(db)
	user := testutil.CreateTestUser(t, db)
	goal := testutil.CreateTestGoal(t, db, user.ID, 1000, 200)

	testutil.AssertNoError(t, service.Delete(user.ID, goal.ID))

	err := service.Delete(user.ID, goal.ID)
	testutil.AssertAppError(t, err, "GOAL_NOT_FOUND")
}

func TestGoalService_Progress(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	service := NewGoalService(db)
	user := testutil.CreateTestUser(t, db)

	testutil.CreateTestGoal(t, db, user.ID, 100, 100)
	testutil.CreateTestGoal(t, db, user.ID, 200, 50)

	progress, err := service.Progress(user.ID)
	testutil.AssertNoError(t, err)

	if progress.TotalGoals != 2 {
		t.Errorf("expected 2 goals, got %d", progress.TotalGoals)
	}
	if progress.CompletedGoals != 1 {
		t.Errorf("expected 1 completed goal, got %d", progress.CompletedGoals)
	}
	if progress.TotalTargetAmount != 300 {
		t.Errorf("expected total target 300, got %v", progress.TotalTargetAmount)
	}
	if progress.TotalCurrentAmount != 150 {
		t.Errorf("expected total current 150, got %v", progress.TotalCurrentAmount)
	}
	if progress.AverageProgress != 50 {
		t.Errorf("expected average progress 50, got %v", progress.AverageProgress)
	}
}

func TestGoalService_ProgressNoGoals(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	service := NewGoalService(db)
	user := testutil.CreateTestUser(t, db)

	progress, err := service.Progress(user.ID)
	testutil.AssertNoError(t, err)

	if progress.TotalGoals != 0 || progress.AverageProgress != 0 {
		t.Errorf("expected zero progress for no goals, got %+v", progress)
	}
}
