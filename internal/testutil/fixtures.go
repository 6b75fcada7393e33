package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/aungaung101025-ux/adupayment/internal/models"

	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestUser creates a user with a unique chat-platform id.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()

	user := &models.User{
		ID:        1000000 + nextID(),
		WeeklyDay: "Sunday",
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestPremiumUser creates a user whose subscription is active for the
// given number of days.
func CreateTestPremiumUser(t *testing.T, db *gorm.DB, days int) *models.User {
	t.Helper()

	user := &models.User{
		ID:             1000000 + nextID(),
		WeeklyDay:      "Sunday",
		IsPremium:      true,
		PremiumEndDate: time.Now().AddDate(0, 0, days),
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test premium user: %v", err)
	}
	return user
}

// CreateTestAccount creates an account with the given opening balance.
func CreateTestAccount(t *testing.T, db *gorm.DB, userID int64, initialBalance int64) *models.Account {
	t.Helper()

	account := &models.Account{
		UserID:         userID,
		Name:           fmt.Sprintf("Test Account %d", nextID()),
		InitialBalance: initialBalance,
	}
	if err := db.Create(account).Error; err != nil {
		t.Fatalf("failed to create test account: %v", err)
	}
	return account
}

// CreateTestTransaction creates a transaction dated now.
func CreateTestTransaction(t *testing.T, db *gorm.DB, userID int64, txType models.TransactionType, amount int64, category string) *models.Transaction {
	t.Helper()
	return CreateTestTransactionAt(t, db, userID, txType, amount, category, time.Now())
}

// CreateTestTransactionAt creates a transaction with an explicit date.
func CreateTestTransactionAt(t *testing.T, db *gorm.DB, userID int64, txType models.TransactionType, amount int64, category string, date time.Time) *models.Transaction {
	t.Helper()

	tx := &models.Transaction{
		UserID:      userID,
		Type:        txType,
		Amount:      amount,
		Description: fmt.Sprintf("test tx %d", nextID()),
		Category:    category,
		Date:        date,
	}
	if err := db.Create(tx).Error; err != nil {
		t.Fatalf("failed to create test transaction: %v", err)
	}
	return tx
}

// CreateTestAccountTransaction creates a transaction assigned to an account.
func CreateTestAccountTransaction(t *testing.T, db *gorm.DB, userID int64, accountID uint, txType models.TransactionType, amount int64, category string) *models.Transaction {
	t.Helper()

	tx := &models.Transaction{
		UserID:      userID,
		AccountID:   &accountID,
		Type:        txType,
		Amount:      amount,
		Description: fmt.Sprintf("test tx %d", nextID()),
		Category:    category,
		Date:        time.Now(),
	}
	if err := db.Create(tx).Error; err != nil {
		t.Fatalf("failed to create test account transaction: %v", err)
	}
	return tx
}

// CreateTestBudget creates a budget for a category.
func CreateTestBudget(t *testing.T, db *gorm.DB, userID int64, category string, amount int64) *models.Budget {
	t.Helper()

	budget := &models.Budget{
		UserID:   userID,
		Category: category,
		Amount:   amount,
	}
	if err := db.Create(budget).Error; err != nil {
		t.Fatalf("failed to create test budget: %v", err)
	}
	return budget
}

// CreateTestGoal creates a goal due in 30 days.
func CreateTestGoal(t *testing.T, db *gorm.DB, userID int64, targetAmount int64) *models.Goal {
	t.Helper()

	goal := &models.Goal{
		UserID:       userID,
		Name:         fmt.Sprintf("Test Goal %d", nextID()),
		TargetAmount: targetAmount,
		TargetDate:   time.Now().AddDate(0, 0, 30),
		StartDate:    time.Now(),
	}
	if err := db.Create(goal).Error; err != nil {
		t.Fatalf("failed to create test goal: %v", err)
	}
	return goal
}

// CreateTestRule creates a recurring rule firing on the given day.
func CreateTestRule(t *testing.T, db *gorm.DB, userID int64, txType models.TransactionType, amount int64, category string, day int) *models.RecurringRule {
	t.Helper()

	rule := &models.RecurringRule{
		UserID:      userID,
		Type:        txType,
		Amount:      amount,
		Description: fmt.Sprintf("test rule %d", nextID()),
		Category:    category,
		DayOfMonth:  day,
	}
	if err := db.Create(rule).Error; err != nil {
		t.Fatalf("failed to create test rule: %v", err)
	}
	return rule
}
