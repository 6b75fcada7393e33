package services

import (
	"testing"
	"time"

	"github.com/aungaung101025-ux/adupayment/internal/models"
	"github.com/aungaung101025-ux/adupayment/internal/testutil"
)

func TestSetBudget(t *testing.T) {
	t.Run("upserts_amount", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		userSvc := NewUserService(db)
		svc := NewBudgetService(db, userSvc, NewCategoryService(db, userSvc))
		user := testutil.CreateTestUser(t, db)

		_, err := svc.SetBudget(user.ID, "Food & Dining", 50000)
		testutil.AssertNoError(t, err)
		_, err = svc.SetBudget(user.ID, "Food & Dining", 70000)
		testutil.AssertNoError(t, err)

		budgets, err := svc.GetBudgets(user.ID)
		testutil.AssertNoError(t, err)
		if len(budgets) != 1 {
			t.Fatalf("expected single budget row, got %d", len(budgets))
		}
		if budgets["Food & Dining"] != 70000 {
			t.Errorf("expected amount 70000, got %d", budgets["Food & Dining"])
		}
	})

	t.Run("unknown_category_rejected", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		userSvc := NewUserService(db)
		svc := NewBudgetService(db, userSvc, NewCategoryService(db, userSvc))
		user := testutil.CreateTestUser(t, db)

		_, err := svc.SetBudget(user.ID, "Yachts", 50000)
		testutil.AssertAppError(t, err, "UNKNOWN_CATEGORY")
	})
}

func TestGetBudgetStatus(t *testing.T) {
	t.Run("status_math", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		userSvc := NewUserService(db)
		svc := NewBudgetService(db, userSvc, NewCategoryService(db, userSvc)).(*budgetService)
		// Fix time so the day arithmetic is deterministic: 2025-06-15.
		now := time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)
		svc.now = func() time.Time { return now }
		user := testutil.CreateTestUser(t, db)

		testutil.CreateTestBudget(t, db, user.ID, "Food & Dining", 50000)
		testutil.CreateTestBudget(t, db, user.ID, "Transport", 10000)
		testutil.CreateTestBudget(t, db, user.ID, "Health", 10000)

		testutil.CreateTestTransactionAt(t, db, user.ID, models.TransactionTypeExpense, 20000, "Food & Dining", now)
		testutil.CreateTestTransactionAt(t, db, user.ID, models.TransactionTypeExpense, 9500, "Transport", now)
		testutil.CreateTestTransactionAt(t, db, user.ID, models.TransactionTypeExpense, 12000, "Health", now)
		// Last month's spending must not count.
		testutil.CreateTestTransactionAt(t, db, user.ID, models.TransactionTypeExpense, 99999, "Food & Dining",
			now.AddDate(0, -1, 0))

		entries, err := svc.GetBudgetStatus(user.ID)
		testutil.AssertNoError(t, err)
		if len(entries) != 3 {
			t.Fatalf("expected 3 entries, got %d", len(entries))
		}

		// Ordered by category: Food & Dining, Health, Transport.
		food := entries[0]
		if food.Spent != 20000 || food.Remaining != 30000 {
			t.Errorf("food: expected spent 20000 remaining 30000, got %d/%d", food.Spent, food.Remaining)
		}
		if food.PercentSpent != 40 {
			t.Errorf("food: expected 40%%, got %f", food.PercentSpent)
		}
		if food.Status != BudgetStateOK {
			t.Errorf("food: expected ok, got %s", food.Status)
		}
		// June has 30 days, now is the 15th: 16 days remain including today.
		if food.DaysRemaining != 16 {
			t.Errorf("food: expected 16 days remaining, got %d", food.DaysRemaining)
		}
		if food.DailyLimit != 30000.0/16 {
			t.Errorf("food: expected daily limit %f, got %f", 30000.0/16, food.DailyLimit)
		}

		health := entries[1]
		if health.Status != BudgetStateOver {
			t.Errorf("health: expected over, got %s", health.Status)
		}
		if health.Remaining != -2000 {
			t.Errorf("health: expected remaining -2000, got %d", health.Remaining)
		}
		if health.DailyLimit != 0 {
			t.Errorf("health: expected zero daily limit when overspent, got %f", health.DailyLimit)
		}

		transport := entries[2]
		if transport.Status != BudgetStateNear {
			t.Errorf("transport: expected near, got %s", transport.Status)
		}
	})
}

func TestCheckAlert(t *testing.T) {
	setup := func(t *testing.T) (*budgetService, *models.User, func()) {
		db := testutil.SetupTestDB(t)
		userSvc := NewUserService(db)
		svc := NewBudgetService(db, userSvc, NewCategoryService(db, userSvc)).(*budgetService)
		user := testutil.CreateTestUser(t, db)
		testutil.CreateTestBudget(t, db, user.ID, "Food & Dining", 50000)
		return svc, user, func() { testutil.TeardownTestDB(t, svc.db) }
	}

	t.Run("fires_only_on_crossing", func(t *testing.T) {
		svc, user, teardown := setup(t)
		defer teardown()
		db := svc.db

		// 75% spent before the new transaction.
		testutil.CreateTestTransaction(t, db, user.ID, models.TransactionTypeExpense, 37500, "Food & Dining")

		// This one pushes spending from 75% to 90%: alert.
		crossing := testutil.CreateTestTransaction(t, db, user.ID, models.TransactionTypeExpense, 7500, "Food & Dining")
		alert, err := svc.CheckAlert(user.ID, crossing)
		testutil.AssertNoError(t, err)
		if !alert {
			t.Error("expected alert on threshold crossing")
		}

		// Further spending past the threshold stays quiet.
		later := testutil.CreateTestTransaction(t, db, user.ID, models.TransactionTypeExpense, 1000, "Food & Dining")
		alert, err = svc.CheckAlert(user.ID, later)
		testutil.AssertNoError(t, err)
		if alert {
			t.Error("expected no alert when already past threshold")
		}
	})

	t.Run("below_threshold_quiet", func(t *testing.T) {
		svc, user, teardown := setup(t)
		defer teardown()

		tx := testutil.CreateTestTransaction(t, svc.db, user.ID, models.TransactionTypeExpense, 10000, "Food & Dining")
		alert, err := svc.CheckAlert(user.ID, tx)
		testutil.AssertNoError(t, err)
		if alert {
			t.Error("expected no alert at 20% spend")
		}
	})

	t.Run("income_ignored", func(t *testing.T) {
		svc, user, teardown := setup(t)
		defer teardown()

		tx := testutil.CreateTestTransaction(t, svc.db, user.ID, models.TransactionTypeIncome, 100000, "Salary")
		alert, err := svc.CheckAlert(user.ID, tx)
		testutil.AssertNoError(t, err)
		if alert {
			t.Error("expected no alert for income")
		}
	})

	t.Run("no_budget_quiet", func(t *testing.T) {
		svc, user, teardown := setup(t)
		defer teardown()

		tx := testutil.CreateTestTransaction(t, svc.db, user.ID, models.TransactionTypeExpense, 100000, "Transport")
		alert, err := svc.CheckAlert(user.ID, tx)
		testutil.AssertNoError(t, err)
		if alert {
			t.Error("expected no alert without a budget")
		}
	})
}

func TestDeleteBudget(t *testing.T) {
	t.Run("missing_budget", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		userSvc := NewUserService(db)
		svc := NewBudgetService(db, userSvc, NewCategoryService(db, userSvc))
		user := testutil.CreateTestUser(t, db)

		err := svc.DeleteBudget(user.ID, "Food & Dining")
		testutil.AssertAppError(t, err, "CATEGORY_NOT_FOUND")
	})
}
