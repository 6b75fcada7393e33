// Package errors provides custom error types for the ledger engine API.
// All service-layer errors should use AppError to ensure consistent,
// secure error responses that never leak internal details to clients.
package errors

import "net/http"

// AppError represents a structured application error with an error code,
// human-readable message, HTTP status code, and optional internal error.
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Internal   error  `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string { return e.Message }

// Unwrap returns the internal error for use with errors.Is/As.
func (e *AppError) Unwrap() error { return e.Internal }

// Wrap creates a new AppError with the same code/message/status but wraps an internal error.
func Wrap(sentinel *AppError, internal error) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    sentinel.Message,
		StatusCode: sentinel.StatusCode,
		Internal:   internal,
	}
}

// WithMessage creates a new AppError with a custom message.
func WithMessage(sentinel *AppError, message string) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    message,
		StatusCode: sentinel.StatusCode,
		Internal:   sentinel.Internal,
	}
}

// Authentication errors.
var (
	ErrUnauthorized = &AppError{Code: "UNAUTHORIZED", Message: "Authentication required", StatusCode: http.StatusUnauthorized}
	ErrForbidden    = &AppError{Code: "FORBIDDEN", Message: "Access denied", StatusCode: http.StatusForbidden}
)

// General errors.
var (
	ErrInvalidInput   = &AppError{Code: "INVALID_INPUT", Message: "Invalid input", StatusCode: http.StatusBadRequest}
	ErrNotFound       = &AppError{Code: "NOT_FOUND", Message: "Resource not found", StatusCode: http.StatusNotFound}
	ErrInternalServer = &AppError{Code: "INTERNAL_ERROR", Message: "An internal error occurred", StatusCode: http.StatusInternalServerError}
)

// User errors.
var (
	ErrUserNotFound = &AppError{Code: "USER_NOT_FOUND", Message: "User not found", StatusCode: http.StatusNotFound}
)

// Transaction errors.
var (
	ErrTransactionNotFound    = &AppError{Code: "TRANSACTION_NOT_FOUND", Message: "Transaction not found", StatusCode: http.StatusNotFound}
	ErrInvalidTransactionType = &AppError{Code: "INVALID_TRANSACTION_TYPE", Message: "Transaction type must be income or expense", StatusCode: http.StatusBadRequest}
	ErrUnknownCategory        = &AppError{Code: "UNKNOWN_CATEGORY", Message: "Category is not in the user's category set for this type", StatusCode: http.StatusBadRequest}
)

// Account errors.
var (
	ErrAccountNotFound      = &AppError{Code: "ACCOUNT_NOT_FOUND", Message: "Account not found", StatusCode: http.StatusNotFound}
	ErrDuplicateAccountName = &AppError{Code: "DUPLICATE_ACCOUNT_NAME", Message: "An account with this name already exists", StatusCode: http.StatusConflict}
	ErrSameAccountTransfer  = &AppError{Code: "SAME_ACCOUNT_TRANSFER", Message: "Cannot transfer to the same account", StatusCode: http.StatusBadRequest}
)

// Category errors.
var (
	ErrCategoryNotFound  = &AppError{Code: "CATEGORY_NOT_FOUND", Message: "Custom category not found", StatusCode: http.StatusNotFound}
	ErrDuplicateCategory = &AppError{Code: "DUPLICATE_CATEGORY", Message: "This category already exists", StatusCode: http.StatusConflict}
)

// Goal errors.
var (
	ErrGoalNotFound    = &AppError{Code: "GOAL_NOT_FOUND", Message: "Goal not found", StatusCode: http.StatusNotFound}
	ErrPastTargetDate  = &AppError{Code: "PAST_TARGET_DATE", Message: "Goal target date must not be in the past", StatusCode: http.StatusBadRequest}
)

// Recurring rule errors.
var (
	ErrRecurringNotFound = &AppError{Code: "RECURRING_NOT_FOUND", Message: "Recurring rule not found", StatusCode: http.StatusNotFound}
	ErrInvalidDayOfMonth = &AppError{Code: "INVALID_DAY_OF_MONTH", Message: "Day of month must be between 1 and 28", StatusCode: http.StatusBadRequest}
)

// Backup/restore errors.
var (
	ErrInvalidBackup = &AppError{Code: "INVALID_BACKUP", Message: "Backup file is malformed or missing required sections", StatusCode: http.StatusBadRequest}
)

// Report errors.
var (
	ErrNoReportData        = &AppError{Code: "NO_REPORT_DATA", Message: "No transactions in the requested range", StatusCode: http.StatusNotFound}
	ErrUnknownExportFormat = &AppError{Code: "UNKNOWN_EXPORT_FORMAT", Message: "Unsupported export format", StatusCode: http.StatusBadRequest}
)
