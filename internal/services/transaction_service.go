package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "github.com/aungaung101025-ux/adupayment/internal/errors"
	"github.com/aungaung101025-ux/adupayment/internal/models"
	"github.com/aungaung101025-ux/adupayment/internal/pagination"
)

// transactionService handles the transaction ledger.
type transactionService struct {
	db              *gorm.DB
	userService     UserServicer
	categoryService CategoryServicer
	accountService  AccountServicer
	now             func() time.Time
}

// NewTransactionService creates a new TransactionServicer.
func NewTransactionService(db *gorm.DB, userService UserServicer, categoryService CategoryServicer, accountService AccountServicer) TransactionServicer {
	return &transactionService{
		db:              db,
		userService:     userService,
		categoryService: categoryService,
		accountService:  accountService,
		now:             time.Now,
	}
}

func validTransactionType(t models.TransactionType) bool {
	return t == models.TransactionTypeIncome || t == models.TransactionTypeExpense
}

// AddTransaction validates and records a new transaction. The category must
// belong to the user's category set (built-in plus custom) for the type.
// A zero date defaults to now.
func (s *transactionService) AddTransaction(userID int64, txType models.TransactionType, amount int64, description, category string, accountID *uint, date time.Time) (*models.Transaction, error) {
	if !validTransactionType(txType) {
		return nil, apperrors.ErrInvalidTransactionType
	}
	if amount <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be greater than zero")
	}

	if _, err := s.userService.GetOrCreateUser(userID); err != nil {
		return nil, err
	}

	known, err := s.categoryService.IsKnownCategory(userID, txType, category)
	if err != nil {
		return nil, err
	}
	if !known {
		return nil, apperrors.ErrUnknownCategory
	}

	if accountID != nil {
		if _, err := s.accountService.GetAccountByID(userID, *accountID); err != nil {
			return nil, err
		}
	}

	if date.IsZero() {
		date = s.now()
	}

	transaction := &models.Transaction{
		UserID:      userID,
		AccountID:   accountID,
		Type:        txType,
		Amount:      amount,
		Description: description,
		Category:    category,
		Date:        date,
	}
	if err := s.db.Create(transaction).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return transaction, nil
}

// GetTransactionByID returns a transaction if it belongs to the user.
func (s *transactionService) GetTransactionByID(userID int64, txID string) (*models.Transaction, error) {
	var transaction models.Transaction
	if err := s.db.Where("id = ? AND user_id = ?", txID, userID).First(&transaction).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTransactionNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &transaction, nil
}

// GetRecentTransactions returns the newest transactions, most recent first.
func (s *transactionService) GetRecentTransactions(userID int64, limit int) ([]models.Transaction, error) {
	if limit <= 0 {
		limit = 5
	}
	var transactions []models.Transaction
	if err := s.db.Where("user_id = ?", userID).
		Order("date DESC").
		Limit(limit).
		Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return transactions, nil
}

// rangeBounds resolves the dual-mode date range contract:
//   - start only: the whole calendar month containing start, from day one
//     00:00:00 through the month's last day 23:59:59 (December rolls over
//     to January of the next year);
//   - start and end: the literal range, inclusive of both day boundaries;
//   - neither: no bounds.
func rangeBounds(start, end *time.Time) (*time.Time, *time.Time) {
	if start == nil {
		return nil, nil
	}

	loc := start.Location()
	from := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, loc)

	if end == nil {
		from = time.Date(start.Year(), start.Month(), 1, 0, 0, 0, 0, loc)
		lastDay := from.AddDate(0, 1, -1)
		to := time.Date(lastDay.Year(), lastDay.Month(), lastDay.Day(), 23, 59, 59, 0, loc)
		return &from, &to
	}

	to := time.Date(end.Year(), end.Month(), end.Day(), 23, 59, 59, 0, end.Location())
	return &from, &to
}

// GetTransactions returns transactions in the resolved range, oldest first.
func (s *transactionService) GetTransactions(userID int64, start, end *time.Time) ([]models.Transaction, error) {
	q := s.db.Where("user_id = ?", userID)

	from, to := rangeBounds(start, end)
	if from != nil {
		q = q.Where("date >= ? AND date <= ?", *from, *to)
	}

	var transactions []models.Transaction
	if err := q.Order("date ASC").Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return transactions, nil
}

// ListTransactions returns a paginated, filtered page of transactions,
// newest first.
func (s *transactionService) ListTransactions(userID int64, page pagination.PageRequest, filter TransactionFilter) (*pagination.PageResponse[models.Transaction], error) {
	page.Defaults()

	base := s.db.Model(&models.Transaction{}).Where("user_id = ?", userID)
	if filter.Type != nil {
		base = base.Where("type = ?", *filter.Type)
	}
	if filter.Category != nil {
		base = base.Where("category = ?", *filter.Category)
	}
	if filter.AccountID != nil {
		base = base.Where("account_id = ?", *filter.AccountID)
	}

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var transactions []models.Transaction
	if err := base.Scopes(pagination.Paginate(page)).
		Order("date DESC").
		Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(transactions, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// UpdateTransaction edits type, amount, description and category in place.
// The account reference is changed only through ReassignAccount.
func (s *transactionService) UpdateTransaction(userID int64, txID string, txType models.TransactionType, amount int64, description, category string) (*models.Transaction, error) {
	if !validTransactionType(txType) {
		return nil, apperrors.ErrInvalidTransactionType
	}
	if amount <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be greater than zero")
	}

	known, err := s.categoryService.IsKnownCategory(userID, txType, category)
	if err != nil {
		return nil, err
	}
	if !known {
		return nil, apperrors.ErrUnknownCategory
	}

	transaction, err := s.GetTransactionByID(userID, txID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"type":        txType,
		"amount":      amount,
		"description": description,
		"category":    category,
	}
	if err := s.db.Model(transaction).Updates(updates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return transaction, nil
}

// ReassignAccount moves a transaction to another account, or to unassigned
// when accountID is nil.
func (s *transactionService) ReassignAccount(userID int64, txID string, accountID *uint) (*models.Transaction, error) {
	transaction, err := s.GetTransactionByID(userID, txID)
	if err != nil {
		return nil, err
	}

	if accountID != nil {
		if _, err := s.accountService.GetAccountByID(userID, *accountID); err != nil {
			return nil, err
		}
	}

	if err := s.db.Model(transaction).Update("account_id", accountID).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return transaction, nil
}

// DeleteTransaction removes a transaction by id.
func (s *transactionService) DeleteTransaction(userID int64, txID string) error {
	transaction, err := s.GetTransactionByID(userID, txID)
	if err != nil {
		return err
	}
	if err := s.db.Delete(transaction).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
