package services

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	apperrors "github.com/aungaung101025-ux/adupayment/internal/errors"
	"github.com/aungaung101025-ux/adupayment/internal/models"
)

// accountService handles accounts, transfers and derived balances.
//
// Balances are recomputed from the full event history on every read rather
// than maintained as a mutable counter. Account counts per user are small,
// so the extra reads are cheap and the balance can never drift from the
// stored transactions and transfers.
type accountService struct {
	db  *gorm.DB
	now func() time.Time
}

// NewAccountService creates a new AccountServicer.
func NewAccountService(db *gorm.DB) AccountServicer {
	return &accountService{db: db, now: time.Now}
}

// CreateAccount creates a named account. Names are unique per user,
// case-sensitive exact match.
func (s *accountService) CreateAccount(userID int64, name string, initialBalance int64) (*models.Account, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "account name is required")
	}

	var count int64
	if err := s.db.Model(&models.Account{}).Where("user_id = ? AND name = ?", userID, name).Count(&count).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count > 0 {
		return nil, apperrors.ErrDuplicateAccountName
	}

	account := &models.Account{
		UserID:         userID,
		Name:           name,
		InitialBalance: initialBalance,
	}
	if err := s.db.Create(account).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return account, nil
}

// GetUserAccounts returns all accounts for the user, oldest first.
func (s *accountService) GetUserAccounts(userID int64) ([]models.Account, error) {
	var accounts []models.Account
	if err := s.db.Where("user_id = ?", userID).Order("id ASC").Find(&accounts).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return accounts, nil
}

// GetAccountByID returns an account if it belongs to the user.
func (s *accountService) GetAccountByID(userID int64, accountID uint) (*models.Account, error) {
	var account models.Account
	if err := s.db.Where("id = ? AND user_id = ?", accountID, userID).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrAccountNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &account, nil
}

// RenameAccount changes an account's name, keeping per-user uniqueness.
func (s *accountService) RenameAccount(userID int64, accountID uint, name string) (*models.Account, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "account name is required")
	}

	account, err := s.GetAccountByID(userID, accountID)
	if err != nil {
		return nil, err
	}

	var count int64
	if err := s.db.Model(&models.Account{}).
		Where("user_id = ? AND name = ? AND id <> ?", userID, name, accountID).
		Count(&count).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count > 0 {
		return nil, apperrors.ErrDuplicateAccountName
	}

	if err := s.db.Model(account).Update("name", name).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return account, nil
}

// DeleteAccount removes an account. Transactions that referenced it become
// unassigned so their amounts keep counting toward the user's total balance.
func (s *accountService) DeleteAccount(userID int64, accountID uint) error {
	account, err := s.GetAccountByID(userID, accountID)
	if err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Transaction{}).
			Where("user_id = ? AND account_id = ?", userID, accountID).
			Update("account_id", nil).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if err := tx.Delete(account).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
}

// sumTransactions sums amounts matching the type for one account (or for
// unassigned transactions when accountID is nil). Missing rows sum to 0.
func (s *accountService) sumTransactions(userID int64, accountID *uint, txType models.TransactionType) (int64, error) {
	var total int64
	q := s.db.Model(&models.Transaction{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("user_id = ? AND type = ?", userID, txType)
	if accountID != nil {
		q = q.Where("account_id = ?", *accountID)
	} else {
		q = q.Where("account_id IS NULL")
	}
	if err := q.Scan(&total).Error; err != nil {
		return 0, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return total, nil
}

func (s *accountService) sumTransfers(userID int64, column string, accountID uint) (int64, error) {
	var total int64
	err := s.db.Model(&models.TransferLog{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("user_id = ?", userID).
		Where(column+" = ?", accountID).
		Scan(&total).Error
	if err != nil {
		return 0, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return total, nil
}

// ComputeBalance derives the account balance from its opening balance plus
// every transaction and transfer referencing it.
func (s *accountService) ComputeBalance(userID int64, accountID uint) (int64, error) {
	account, err := s.GetAccountByID(userID, accountID)
	if err != nil {
		return 0, err
	}
	return s.balanceOf(account)
}

func (s *accountService) balanceOf(account *models.Account) (int64, error) {
	income, err := s.sumTransactions(account.UserID, &account.ID, models.TransactionTypeIncome)
	if err != nil {
		return 0, err
	}
	expense, err := s.sumTransactions(account.UserID, &account.ID, models.TransactionTypeExpense)
	if err != nil {
		return 0, err
	}
	in, err := s.sumTransfers(account.UserID, "to_account_id", account.ID)
	if err != nil {
		return 0, err
	}
	out, err := s.sumTransfers(account.UserID, "from_account_id", account.ID)
	if err != nil {
		return 0, err
	}
	return account.InitialBalance + income - expense + in - out, nil
}

// GetAccountsWithBalance returns every account paired with its derived
// balance.
func (s *accountService) GetAccountsWithBalance(userID int64) ([]AccountBalance, error) {
	accounts, err := s.GetUserAccounts(userID)
	if err != nil {
		return nil, err
	}

	result := make([]AccountBalance, 0, len(accounts))
	for i := range accounts {
		balance, err := s.balanceOf(&accounts[i])
		if err != nil {
			return nil, err
		}
		result = append(result, AccountBalance{Account: accounts[i], Balance: balance})
	}
	return result, nil
}

// TotalBalance sums every account balance plus the synthetic unassigned
// pseudo-account (transactions created before multi-account support).
// Transfers cancel out across accounts so they never change the total.
func (s *accountService) TotalBalance(userID int64) (int64, error) {
	balances, err := s.GetAccountsWithBalance(userID)
	if err != nil {
		return 0, err
	}

	var total int64
	for _, b := range balances {
		total += b.Balance
	}

	unassignedIncome, err := s.sumTransactions(userID, nil, models.TransactionTypeIncome)
	if err != nil {
		return 0, err
	}
	unassignedExpense, err := s.sumTransactions(userID, nil, models.TransactionTypeExpense)
	if err != nil {
		return 0, err
	}

	return total + unassignedIncome - unassignedExpense, nil
}

// Transfer moves funds between two of the user's accounts by appending a
// transfer log entry.
func (s *accountService) Transfer(userID int64, fromAccountID, toAccountID uint, amount int64, description string) (*models.TransferLog, error) {
	if amount <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "transfer amount must be greater than zero")
	}
	if fromAccountID == toAccountID {
		return nil, apperrors.ErrSameAccountTransfer
	}

	if _, err := s.GetAccountByID(userID, fromAccountID); err != nil {
		return nil, err
	}
	if _, err := s.GetAccountByID(userID, toAccountID); err != nil {
		return nil, err
	}

	transfer := &models.TransferLog{
		UserID:        userID,
		FromAccountID: fromAccountID,
		ToAccountID:   toAccountID,
		Amount:        amount,
		Description:   description,
		Date:          s.now(),
	}
	if err := s.db.Create(transfer).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return transfer, nil
}

// GetTransfers returns the user's transfer log, newest first.
func (s *accountService) GetTransfers(userID int64) ([]models.TransferLog, error) {
	var transfers []models.TransferLog
	if err := s.db.Where("user_id = ?", userID).Order("date DESC").Find(&transfers).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return transfers, nil
}
