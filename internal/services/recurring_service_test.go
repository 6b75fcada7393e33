package services

import (
	"sync"
	"testing"
	"time"

	"github.com/aungaung101025-ux/adupayment/internal/models"
	"github.com/aungaung101025-ux/adupayment/internal/testutil"
)

// recordingNotifier captures delivered messages for assertions.
type recordingNotifier struct {
	mu       sync.Mutex
	messages map[int64][]string
}

func newRecordingNotifier() *recordingNotifier {
	return &recordingNotifier{messages: make(map[int64][]string)}
}

func (n *recordingNotifier) Notify(userID int64, message string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.messages[userID] = append(n.messages[userID], message)
	return nil
}

func (n *recordingNotifier) count(userID int64) int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.messages[userID])
}

func TestAddRule(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewRecurringService(db, NewUserService(db), nil)
		user := testutil.CreateTestUser(t, db)

		rule, err := svc.AddRule(user.ID, models.TransactionTypeExpense, 30000, "rent", "Rent & Bills", 1)
		testutil.AssertNoError(t, err)
		if rule.ID == "" {
			t.Fatal("expected generated rule ID")
		}
	})

	t.Run("day_29_rejected", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewRecurringService(db, NewUserService(db), nil)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.AddRule(user.ID, models.TransactionTypeExpense, 30000, "rent", "Rent & Bills", 29)
		testutil.AssertAppError(t, err, "INVALID_DAY_OF_MONTH")
	})

	t.Run("day_zero_rejected", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewRecurringService(db, NewUserService(db), nil)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.AddRule(user.ID, models.TransactionTypeExpense, 30000, "rent", "Rent & Bills", 0)
		testutil.AssertAppError(t, err, "INVALID_DAY_OF_MONTH")
	})
}

func TestRunDaily(t *testing.T) {
	t.Run("idempotent_within_day", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		notifier := newRecordingNotifier()
		svc := NewRecurringService(db, NewUserService(db), notifier).(*recurringService)
		now := time.Date(2025, 6, 5, 8, 0, 0, 0, time.UTC)
		svc.now = func() time.Time { return now }

		user := testutil.CreateTestPremiumUser(t, db, 30)
		testutil.CreateTestRule(t, db, user.ID, models.TransactionTypeExpense, 30000, "Rent & Bills", 5)

		report, err := svc.RunDaily()
		testutil.AssertNoError(t, err)
		if report.Executed != 1 {
			t.Fatalf("expected 1 execution, got %d", report.Executed)
		}

		// Second run the same day skips the rule.
		report, err = svc.RunDaily()
		testutil.AssertNoError(t, err)
		if report.Executed != 0 {
			t.Errorf("expected no executions on rerun, got %d", report.Executed)
		}
		if report.Skipped != 1 {
			t.Errorf("expected 1 skip on rerun, got %d", report.Skipped)
		}

		var count int64
		db.Model(&models.Transaction{}).Where("user_id = ?", user.ID).Count(&count)
		if count != 1 {
			t.Errorf("expected exactly one materialized transaction, got %d", count)
		}
		if notifier.count(user.ID) != 1 {
			t.Errorf("expected one notification, got %d", notifier.count(user.ID))
		}
	})

	t.Run("only_rules_due_today", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewRecurringService(db, NewUserService(db), nil).(*recurringService)
		now := time.Date(2025, 6, 5, 8, 0, 0, 0, time.UTC)
		svc.now = func() time.Time { return now }

		user := testutil.CreateTestPremiumUser(t, db, 30)
		testutil.CreateTestRule(t, db, user.ID, models.TransactionTypeExpense, 30000, "Rent & Bills", 5)
		testutil.CreateTestRule(t, db, user.ID, models.TransactionTypeExpense, 1000, "Transport", 20)

		report, err := svc.RunDaily()
		testutil.AssertNoError(t, err)
		if report.Executed != 1 {
			t.Errorf("expected only the day-5 rule to run, got %d executions", report.Executed)
		}
	})

	t.Run("lapsed_subscription_excluded", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewRecurringService(db, NewUserService(db), nil).(*recurringService)
		now := time.Date(2025, 6, 5, 8, 0, 0, 0, time.UTC)
		svc.now = func() time.Time { return now }

		user := testutil.CreateTestUser(t, db)
		testutil.CreateTestRule(t, db, user.ID, models.TransactionTypeExpense, 30000, "Rent & Bills", 5)

		report, err := svc.RunDaily()
		testutil.AssertNoError(t, err)
		if report.UsersProcessed != 0 {
			t.Errorf("expected no users processed without premium, got %d", report.UsersProcessed)
		}
	})

	t.Run("materialized_transaction_is_unassigned", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewRecurringService(db, NewUserService(db), nil).(*recurringService)
		now := time.Date(2025, 6, 5, 8, 0, 0, 0, time.UTC)
		svc.now = func() time.Time { return now }

		user := testutil.CreateTestPremiumUser(t, db, 30)
		rule := testutil.CreateTestRule(t, db, user.ID, models.TransactionTypeIncome, 500000, "Salary", 5)

		_, err := svc.RunDaily()
		testutil.AssertNoError(t, err)

		var tx models.Transaction
		testutil.AssertNoError(t, db.First(&tx, "user_id = ?", user.ID).Error)
		if tx.AccountID != nil {
			t.Error("expected materialized transaction unassigned")
		}
		if tx.Description != rule.Description || tx.Amount != rule.Amount {
			t.Error("expected transaction content copied from rule")
		}
		if !tx.Date.Equal(now) {
			t.Errorf("expected transaction dated at run time, got %v", tx.Date)
		}
	})
}
