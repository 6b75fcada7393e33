package services

import (
	"time"

	"github.com/aungaung101025-ux/adupayment/internal/models"
	"github.com/aungaung101025-ux/adupayment/internal/pagination"
)

// Notifier delivers a message to a chat user. The presentation layer owns
// delivery; the engine only fans out. Implementations must be safe for
// concurrent use.
type Notifier interface {
	Notify(userID int64, message string) error
}

// PremiumStatus is the lazily recomputed premium state of a user.
type PremiumStatus struct {
	IsPremium bool      `json:"is_premium"`
	EndDate   time.Time `json:"end_date"`
	UsedTrial bool      `json:"used_trial"`
}

// ReminderSettings holds a user's reminder preferences.
type ReminderSettings struct {
	DailyReminder bool   `json:"daily_reminder"`
	WeeklySummary bool   `json:"weekly_summary"`
	WeeklyDay     string `json:"weekly_day"`
}

// ReminderTarget is one user due for reminder fan-out.
type ReminderTarget struct {
	UserID        int64
	DailyReminder bool
	WeeklySummary bool
	WeeklyDay     string
}

// UserServicer defines the contract for user lifecycle, premium status and
// reminder preferences.
type UserServicer interface {
	GetOrCreateUser(userID int64) (*models.User, error)
	DeleteUserData(userID int64) error
	GetPremiumStatus(userID int64) (*PremiumStatus, error)
	GrantPremium(userID int64, days int, trial bool) (time.Time, error)
	RevokePremium(userID int64) error
	GetReminderSettings(userID int64) (*ReminderSettings, error)
	UpdateReminderSettings(userID int64, daily, weekly *bool, weeklyDay *string) (*ReminderSettings, error)
	UsersForReminders() ([]ReminderTarget, error)
	UsersWithRecurringRules() ([]int64, error)
}

// AccountBalance pairs an account with its derived balance.
type AccountBalance struct {
	Account models.Account `json:"account"`
	Balance int64          `json:"balance"`
}

// AccountServicer defines the contract for accounts, transfers and derived
// balances.
type AccountServicer interface {
	CreateAccount(userID int64, name string, initialBalance int64) (*models.Account, error)
	GetUserAccounts(userID int64) ([]models.Account, error)
	GetAccountByID(userID int64, accountID uint) (*models.Account, error)
	RenameAccount(userID int64, accountID uint, name string) (*models.Account, error)
	DeleteAccount(userID int64, accountID uint) error
	ComputeBalance(userID int64, accountID uint) (int64, error)
	GetAccountsWithBalance(userID int64) ([]AccountBalance, error)
	TotalBalance(userID int64) (int64, error)
	Transfer(userID int64, fromAccountID, toAccountID uint, amount int64, description string) (*models.TransferLog, error)
	GetTransfers(userID int64) ([]models.TransferLog, error)
}

// TransactionFilter holds optional filter parameters for listing transactions.
type TransactionFilter struct {
	Type      *models.TransactionType
	Category  *string
	AccountID *uint
}

// TransactionServicer defines the contract for the transaction ledger.
// Range queries are dual-mode: a start date without an end date selects the
// whole calendar month containing start; start and end select the literal
// inclusive range; neither selects everything.
type TransactionServicer interface {
	AddTransaction(userID int64, txType models.TransactionType, amount int64, description, category string, accountID *uint, date time.Time) (*models.Transaction, error)
	GetTransactionByID(userID int64, txID string) (*models.Transaction, error)
	GetRecentTransactions(userID int64, limit int) ([]models.Transaction, error)
	GetTransactions(userID int64, start, end *time.Time) ([]models.Transaction, error)
	ListTransactions(userID int64, page pagination.PageRequest, filter TransactionFilter) (*pagination.PageResponse[models.Transaction], error)
	UpdateTransaction(userID int64, txID string, txType models.TransactionType, amount int64, description, category string) (*models.Transaction, error)
	ReassignAccount(userID int64, txID string, accountID *uint) (*models.Transaction, error)
	DeleteTransaction(userID int64, txID string) error
}

// CategoryServicer defines the contract for custom categories layered over
// the built-in lists.
type CategoryServicer interface {
	AddCustomCategory(userID int64, txType models.TransactionType, name string) (*models.CustomCategory, error)
	RemoveCustomCategory(userID int64, txType models.TransactionType, name string) error
	GetCustomCategories(userID int64, txType models.TransactionType) ([]models.CustomCategory, error)
	AllCategories(userID int64, txType models.TransactionType) ([]string, error)
	IsKnownCategory(userID int64, txType models.TransactionType, name string) (bool, error)
}

// BudgetState classifies a category's consumption against its cap.
type BudgetState string

const (
	BudgetStateOK   BudgetState = "ok"
	BudgetStateNear BudgetState = "near"
	BudgetStateOver BudgetState = "over"
)

// BudgetEntry is one category's consumption for the current month.
type BudgetEntry struct {
	Category      string      `json:"category"`
	Budgeted      int64       `json:"budgeted"`
	Spent         int64       `json:"spent"`
	Remaining     int64       `json:"remaining"`
	PercentSpent  float64     `json:"percent_spent"`
	Status        BudgetState `json:"status"`
	DaysRemaining int         `json:"days_remaining"`
	DailyLimit    float64     `json:"daily_limit"`
}

// BudgetServicer defines the contract for budget caps and consumption.
type BudgetServicer interface {
	SetBudget(userID int64, category string, amount int64) (*models.Budget, error)
	GetBudgets(userID int64) (map[string]int64, error)
	DeleteBudget(userID int64, category string) error
	GetBudgetStatus(userID int64) ([]BudgetEntry, error)
	CheckAlert(userID int64, tx *models.Transaction) (bool, error)
}

// GoalProgress is the derived progress of one goal against the user's total
// balance.
type GoalProgress struct {
	Goal           models.Goal `json:"goal"`
	CurrentSavings int64       `json:"current_savings"`
	Remaining      int64       `json:"remaining"`
	ProgressPct    float64     `json:"progress_pct"`
	Achieved       bool        `json:"achieved"`
}

// GoalServicer defines the contract for savings goals.
type GoalServicer interface {
	AddGoal(userID int64, name string, targetAmount int64, targetDate time.Time) (*models.Goal, error)
	GetGoals(userID int64) ([]models.Goal, error)
	DeleteGoal(userID int64, goalID string) error
	GetGoalProgress(userID int64, goalID string) (*GoalProgress, error)
}

// RecurringRunReport summarizes one daily materialization pass.
type RecurringRunReport struct {
	UsersProcessed int `json:"users_processed"`
	Executed       int `json:"executed"`
	Skipped        int `json:"skipped"`
	Failed         int `json:"failed"`
}

// RecurringServicer defines the contract for recurring rules and their daily
// materialization. RunDaily is idempotent within a calendar day and isolates
// per-user failures.
type RecurringServicer interface {
	AddRule(userID int64, txType models.TransactionType, amount int64, description, category string, dayOfMonth int) (*models.RecurringRule, error)
	GetRules(userID int64) ([]models.RecurringRule, error)
	DeleteRule(userID int64, ruleID string) error
	RunDaily() (*RecurringRunReport, error)
}

// InsightKind identifies which rule produced an insight.
type InsightKind string

const (
	InsightSavingNegative InsightKind = "saving_rate_negative"
	InsightSavingLow      InsightKind = "saving_rate_low"
	InsightSavingGood     InsightKind = "saving_rate_good"
	InsightTopCategory    InsightKind = "top_expense_category"
	InsightBudgetOver     InsightKind = "budget_over"
	InsightBudgetWarning  InsightKind = "budget_warning"
	InsightAllNormal      InsightKind = "all_normal"
)

// Insight is one rule-based finding over the trailing 30-day window.
type Insight struct {
	Kind     InsightKind `json:"kind"`
	Category string      `json:"category,omitempty"`
	Rate     float64     `json:"rate,omitempty"`
	Percent  float64     `json:"percent,omitempty"`
	Spent    int64       `json:"spent,omitempty"`
	Budget   int64       `json:"budget,omitempty"`
	Income   int64       `json:"income,omitempty"`
	Expense  int64       `json:"expense,omitempty"`
}

// InsightReport is the full result of one analysis pass. HasData is false
// when the window contains no income and no expense at all.
type InsightReport struct {
	HasData     bool      `json:"has_data"`
	WindowStart time.Time `json:"window_start"`
	WindowEnd   time.Time `json:"window_end"`
	Insights    []Insight `json:"insights"`
}

// InsightServicer defines the contract for rule-based financial analysis.
type InsightServicer interface {
	Analyze(userID int64) (*InsightReport, error)
}

// MonthlySummary holds the current month's totals.
type MonthlySummary struct {
	Start        time.Time `json:"start"`
	End          time.Time `json:"end"`
	TotalIncome  int64     `json:"total_income"`
	TotalExpense int64     `json:"total_expense"`
	Balance      int64     `json:"balance"`
}

// ReportServicer assembles transaction rows and totals for export.
type ReportServicer interface {
	Summary(userID int64) (*MonthlySummary, error)
	AssembleReport(userID int64, start, end *time.Time) (*ReportData, error)
	Export(userID int64, title string, start, end *time.Time, format string) (*ExportResult, error)
}

// ExportResult is a rendered report document.
type ExportResult struct {
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
	Data        []byte `json:"-"`
}

// BackupServicer exports and atomically restores a user's full data set.
type BackupServicer interface {
	ExportJSON(userID int64) ([]byte, error)
	Restore(userID int64, data []byte) error
}

// AdminStats holds aggregate user counts for the admin dashboard.
type AdminStats struct {
	TotalUsers   int64 `json:"total_users"`
	PremiumUsers int64 `json:"premium_users"`
}

// AdminUserDetails holds per-user detail for the admin dashboard.
type AdminUserDetails struct {
	UserID           int64     `json:"user_id"`
	IsPremium        bool      `json:"is_premium"`
	PremiumEndDate   time.Time `json:"premium_end_date"`
	UsedTrial        bool      `json:"used_trial"`
	TransactionCount int64     `json:"transaction_count"`
}

// BroadcastResult reports a best-effort fan-out: failures are counted, not
// fatal.
type BroadcastResult struct {
	Sent   int `json:"sent"`
	Failed int `json:"failed"`
}

// AdminServicer defines the contract for operator-facing maintenance.
type AdminServicer interface {
	Stats() (*AdminStats, error)
	UserDetails(userID int64) (*AdminUserDetails, error)
	Broadcast(message string) (*BroadcastResult, error)
}
