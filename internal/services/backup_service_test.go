package services

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/aungaung101025-ux/adupayment/internal/models"
	"github.com/aungaung101025-ux/adupayment/internal/testutil"
)

func TestExportJSON(t *testing.T) {
	t.Run("contains_all_sections", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBackupService(db, NewUserService(db))
		user := testutil.CreateTestUser(t, db)

		payload, err := svc.ExportJSON(user.ID)
		testutil.AssertNoError(t, err)

		var doc map[string]json.RawMessage
		testutil.AssertNoError(t, json.Unmarshal(payload, &doc))
		for _, key := range []string{"transactions", "budgets", "goals", "custom_categories", "recurring_txs", "accounts", "transfers"} {
			raw, ok := doc[key]
			if !ok {
				t.Errorf("expected key %q in export", key)
				continue
			}
			if strings.TrimSpace(string(raw)) == "null" {
				t.Errorf("expected %q to be an array, got null", key)
			}
		}
	})

	t.Run("recurring_rules_use_day_key", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBackupService(db, NewUserService(db))
		user := testutil.CreateTestUser(t, db)
		testutil.CreateTestRule(t, db, user.ID, models.TransactionTypeExpense, 9900, "Entertainment", 12)

		payload, err := svc.ExportJSON(user.ID)
		testutil.AssertNoError(t, err)

		var doc struct {
			RecurringTxs []map[string]interface{} `json:"recurring_txs"`
		}
		testutil.AssertNoError(t, json.Unmarshal(payload, &doc))
		if len(doc.RecurringTxs) != 1 {
			t.Fatalf("expected 1 recurring rule, got %d", len(doc.RecurringTxs))
		}
		day, ok := doc.RecurringTxs[0]["day"]
		if !ok {
			t.Fatal("expected rule serialized under the day key")
		}
		if day.(float64) != 12 {
			t.Errorf("expected day 12, got %v", day)
		}
	})
}

func TestRestore(t *testing.T) {
	t.Run("round_trip_remaps_accounts", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		userSvc := NewUserService(db)
		accountSvc := NewAccountService(db)
		svc := NewBackupService(db, userSvc)
		user := testutil.CreateTestUser(t, db)

		account := testutil.CreateTestAccount(t, db, user.ID, 5000)
		testutil.CreateTestAccountTransaction(t, db, user.ID, account.ID, models.TransactionTypeIncome, 20000, "Salary")
		testutil.CreateTestAccountTransaction(t, db, user.ID, account.ID, models.TransactionTypeExpense, 8000, "Transport")
		testutil.CreateTestBudget(t, db, user.ID, "Transport", 50000)
		testutil.CreateTestGoal(t, db, user.ID, 100000)

		before, err := accountSvc.ComputeBalance(user.ID, account.ID)
		testutil.AssertNoError(t, err)

		payload, err := svc.ExportJSON(user.ID)
		testutil.AssertNoError(t, err)

		// Restore into a different user; account ids must be remapped to
		// the freshly inserted rows.
		other := testutil.CreateTestUser(t, db)
		testutil.AssertNoError(t, svc.Restore(other.ID, payload))

		accounts, err := accountSvc.GetUserAccounts(other.ID)
		testutil.AssertNoError(t, err)
		if len(accounts) != 1 {
			t.Fatalf("expected 1 restored account, got %d", len(accounts))
		}
		after, err := accountSvc.ComputeBalance(other.ID, accounts[0].ID)
		testutil.AssertNoError(t, err)
		if after != before {
			t.Errorf("expected restored balance %d, got %d", before, after)
		}

		var txCount int64
		db.Model(&models.Transaction{}).Where("user_id = ? AND account_id = ?", other.ID, accounts[0].ID).Count(&txCount)
		if txCount != 2 {
			t.Errorf("expected 2 transactions attached to restored account, got %d", txCount)
		}
	})

	t.Run("ids_survive_same_user_round_trip", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBackupService(db, NewUserService(db))
		user := testutil.CreateTestUser(t, db)

		tx := testutil.CreateTestTransaction(t, db, user.ID, models.TransactionTypeExpense, 3000, "Transport")
		goal := testutil.CreateTestGoal(t, db, user.ID, 100000)
		rule := testutil.CreateTestRule(t, db, user.ID, models.TransactionTypeIncome, 250000, "Salary", 1)

		payload, err := svc.ExportJSON(user.ID)
		testutil.AssertNoError(t, err)
		testutil.AssertNoError(t, svc.Restore(user.ID, payload))

		var restoredTx models.Transaction
		testutil.AssertNoError(t, db.First(&restoredTx, "user_id = ?", user.ID).Error)
		if restoredTx.ID != tx.ID {
			t.Errorf("expected transaction id %s kept, got %s", tx.ID, restoredTx.ID)
		}
		var restoredGoal models.Goal
		testutil.AssertNoError(t, db.First(&restoredGoal, "user_id = ?", user.ID).Error)
		if restoredGoal.ID != goal.ID {
			t.Errorf("expected goal id %s kept, got %s", goal.ID, restoredGoal.ID)
		}
		var restoredRule models.RecurringRule
		testutil.AssertNoError(t, db.First(&restoredRule, "user_id = ?", user.ID).Error)
		if restoredRule.ID != rule.ID {
			t.Errorf("expected rule id %s kept, got %s", rule.ID, restoredRule.ID)
		}

		// Restoring the same backup into another user while the originals
		// still exist must generate fresh ids instead of colliding.
		other := testutil.CreateTestUser(t, db)
		testutil.AssertNoError(t, svc.Restore(other.ID, payload))

		var otherTx models.Transaction
		testutil.AssertNoError(t, db.First(&otherTx, "user_id = ?", other.ID).Error)
		if otherTx.ID == tx.ID || otherTx.ID == "" {
			t.Errorf("expected fresh transaction id for second user, got %s", otherTx.ID)
		}
	})

	t.Run("missing_required_key", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBackupService(db, NewUserService(db))
		user := testutil.CreateTestUser(t, db)

		payload := []byte(`{"transactions": [], "budgets": [], "goals": [], "custom_categories": []}`)
		err := svc.Restore(user.ID, payload)
		testutil.AssertAppError(t, err, "INVALID_BACKUP")
	})

	t.Run("accounts_section_optional", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBackupService(db, NewUserService(db))
		user := testutil.CreateTestUser(t, db)

		payload := []byte(`{
			"transactions": [{"type": "expense", "amount": 900, "description": "bus", "category": "Transport", "date": "2025-03-01"}],
			"budgets": [],
			"goals": [],
			"custom_categories": [],
			"recurring_txs": [{"type": "expense", "amount": 500, "description": "sub", "category": "Entertainment", "day": 3}]
		}`)
		testutil.AssertNoError(t, svc.Restore(user.ID, payload))

		var tx models.Transaction
		testutil.AssertNoError(t, db.First(&tx, "user_id = ?", user.ID).Error)
		if tx.AccountID != nil {
			t.Error("expected restored transaction unassigned")
		}
		if tx.Date.Format("2006-01-02") != "2025-03-01" {
			t.Errorf("expected bare date parsed, got %v", tx.Date)
		}

		var rule models.RecurringRule
		testutil.AssertNoError(t, db.First(&rule, "user_id = ?", user.ID).Error)
		if rule.DayOfMonth != 3 {
			t.Errorf("expected day 3, got %d", rule.DayOfMonth)
		}
	})

	t.Run("unresolved_account_ref_becomes_unassigned", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBackupService(db, NewUserService(db))
		user := testutil.CreateTestUser(t, db)

		payload := []byte(`{
			"transactions": [{"type": "income", "amount": 100, "description": "x", "category": "Salary", "date": "2025-03-01", "account_id": 999}],
			"budgets": [],
			"goals": [],
			"custom_categories": [],
			"recurring_txs": [],
			"accounts": [],
			"transfers": [{"from_account_id": 999, "to_account_id": 998, "amount": 10, "date": "2025-03-02"}]
		}`)
		testutil.AssertNoError(t, svc.Restore(user.ID, payload))

		var tx models.Transaction
		testutil.AssertNoError(t, db.First(&tx, "user_id = ?", user.ID).Error)
		if tx.AccountID != nil {
			t.Error("expected unresolvable account reference cleared")
		}

		var transferCount int64
		db.Model(&models.TransferLog{}).Where("user_id = ?", user.ID).Count(&transferCount)
		if transferCount != 0 {
			t.Errorf("expected transfer with unresolved endpoints dropped, got %d", transferCount)
		}
	})

	t.Run("bad_record_rolls_back", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBackupService(db, NewUserService(db))
		user := testutil.CreateTestUser(t, db)

		existing := testutil.CreateTestTransaction(t, db, user.ID, models.TransactionTypeExpense, 4200, "Food & Dining")

		payload := []byte(`{
			"transactions": [
				{"type": "expense", "amount": 100, "description": "ok", "category": "Transport", "date": "2025-03-01"},
				{"type": "loan", "amount": 200, "description": "bad", "category": "Transport", "date": "2025-03-02"}
			],
			"budgets": [],
			"goals": [],
			"custom_categories": [],
			"recurring_txs": []
		}`)
		err := svc.Restore(user.ID, payload)
		testutil.AssertAppError(t, err, "INVALID_BACKUP")

		// The original data must survive the failed restore.
		var survivors []models.Transaction
		testutil.AssertNoError(t, db.Where("user_id = ?", user.ID).Find(&survivors).Error)
		if len(survivors) != 1 || survivors[0].ID != existing.ID {
			t.Errorf("expected prior data intact after rollback, got %d rows", len(survivors))
		}
	})

	t.Run("malformed_json", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBackupService(db, NewUserService(db))
		user := testutil.CreateTestUser(t, db)

		err := svc.Restore(user.ID, []byte("not json"))
		testutil.AssertAppError(t, err, "INVALID_BACKUP")
	})
}
