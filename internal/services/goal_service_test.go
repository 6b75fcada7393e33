package services

import (
	"testing"
	"time"

	"github.com/aungaung101025-ux/adupayment/internal/models"
	"github.com/aungaung101025-ux/adupayment/internal/testutil"
)

func TestAddGoal(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		userSvc := NewUserService(db)
		svc := NewGoalService(db, userSvc, NewAccountService(db))
		user := testutil.CreateTestUser(t, db)

		goal, err := svc.AddGoal(user.ID, "Vacation", 100000, time.Now().AddDate(0, 3, 0))
		testutil.AssertNoError(t, err)
		if goal.ID == "" {
			t.Fatal("expected generated goal ID")
		}
		if goal.StartDate.IsZero() {
			t.Error("expected start date stamped")
		}
	})

	t.Run("past_target_date", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		userSvc := NewUserService(db)
		svc := NewGoalService(db, userSvc, NewAccountService(db))
		user := testutil.CreateTestUser(t, db)

		_, err := svc.AddGoal(user.ID, "Too Late", 100000, time.Now().AddDate(0, 0, -1))
		testutil.AssertAppError(t, err, "PAST_TARGET_DATE")
	})

	t.Run("today_accepted", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		userSvc := NewUserService(db)
		svc := NewGoalService(db, userSvc, NewAccountService(db))
		user := testutil.CreateTestUser(t, db)

		_, err := svc.AddGoal(user.ID, "Today", 100000, time.Now())
		testutil.AssertNoError(t, err)
	})
}

func TestGetGoalProgress(t *testing.T) {
	t.Run("partial_progress", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		userSvc := NewUserService(db)
		svc := NewGoalService(db, userSvc, NewAccountService(db))
		user := testutil.CreateTestUser(t, db)
		goal := testutil.CreateTestGoal(t, db, user.ID, 100000)

		testutil.CreateTestTransaction(t, db, user.ID, models.TransactionTypeIncome, 40000, "Salary")

		progress, err := svc.GetGoalProgress(user.ID, goal.ID)
		testutil.AssertNoError(t, err)
		if progress.CurrentSavings != 40000 {
			t.Errorf("expected savings 40000, got %d", progress.CurrentSavings)
		}
		if progress.ProgressPct != 40 {
			t.Errorf("expected 40%%, got %f", progress.ProgressPct)
		}
		if progress.Achieved {
			t.Error("expected goal not achieved")
		}
	})

	t.Run("negative_balance_clamps_to_zero", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		userSvc := NewUserService(db)
		svc := NewGoalService(db, userSvc, NewAccountService(db))
		user := testutil.CreateTestUser(t, db)
		goal := testutil.CreateTestGoal(t, db, user.ID, 100000)

		testutil.CreateTestTransaction(t, db, user.ID, models.TransactionTypeExpense, 5000, "Food & Dining")

		progress, err := svc.GetGoalProgress(user.ID, goal.ID)
		testutil.AssertNoError(t, err)
		if progress.CurrentSavings != 0 {
			t.Errorf("expected savings clamped to 0, got %d", progress.CurrentSavings)
		}
		if progress.ProgressPct != 0 {
			t.Errorf("expected 0%%, got %f", progress.ProgressPct)
		}
	})

	t.Run("overshoot_clamps_to_target", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		userSvc := NewUserService(db)
		svc := NewGoalService(db, userSvc, NewAccountService(db))
		user := testutil.CreateTestUser(t, db)
		goal := testutil.CreateTestGoal(t, db, user.ID, 100000)

		testutil.CreateTestTransaction(t, db, user.ID, models.TransactionTypeIncome, 250000, "Salary")

		progress, err := svc.GetGoalProgress(user.ID, goal.ID)
		testutil.AssertNoError(t, err)
		if progress.CurrentSavings != 100000 {
			t.Errorf("expected savings clamped to target, got %d", progress.CurrentSavings)
		}
		if progress.ProgressPct != 100 {
			t.Errorf("expected 100%%, got %f", progress.ProgressPct)
		}
		if !progress.Achieved {
			t.Error("expected goal achieved")
		}
		if progress.Remaining != 0 {
			t.Errorf("expected nothing remaining, got %d", progress.Remaining)
		}
	})

	t.Run("missing_goal", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		userSvc := NewUserService(db)
		svc := NewGoalService(db, userSvc, NewAccountService(db))
		user := testutil.CreateTestUser(t, db)

		_, err := svc.GetGoalProgress(user.ID, "no-such-goal")
		testutil.AssertAppError(t, err, "GOAL_NOT_FOUND")
	})
}
