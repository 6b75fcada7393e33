package services

import (
	"encoding/json"
	"time"

	"gorm.io/gorm"

	apperrors "github.com/aungaung101025-ux/adupayment/internal/errors"
	"github.com/aungaung101025-ux/adupayment/internal/models"
)

// backupService serializes a user's full data set to JSON and restores it
// atomically.
type backupService struct {
	db          *gorm.DB
	userService UserServicer
}

// NewBackupService creates a new BackupServicer.
func NewBackupService(db *gorm.DB, userService UserServicer) BackupServicer {
	return &backupService{db: db, userService: userService}
}

// Keys every valid backup must carry. Accounts and transfers are optional so
// older backups without them still restore.
var requiredBackupKeys = []string{"transactions", "budgets", "goals", "custom_categories", "recurring_txs"}

type backupTransaction struct {
	ID          string `json:"id,omitempty"`
	Type        string `json:"type"`
	Amount      int64  `json:"amount"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Date        string `json:"date"`
	AccountID   *uint  `json:"account_id,omitempty"`
}

type backupBudget struct {
	Category string `json:"category"`
	Amount   int64  `json:"amount"`
}

type backupGoal struct {
	ID           string `json:"id,omitempty"`
	Name         string `json:"name"`
	TargetAmount int64  `json:"target_amount"`
	TargetDate   string `json:"target_date"`
	StartDate    string `json:"start_date"`
}

type backupCategory struct {
	Type string `json:"type"`
	Name string `json:"name"`
}

type backupRecurring struct {
	ID          string `json:"id,omitempty"`
	Type        string `json:"type"`
	Amount      int64  `json:"amount"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Day         int    `json:"day"`
}

type backupAccount struct {
	ID             uint   `json:"id"`
	Name           string `json:"name"`
	InitialBalance int64  `json:"initial_balance"`
}

type backupTransfer struct {
	FromAccountID uint   `json:"from_account_id"`
	ToAccountID   uint   `json:"to_account_id"`
	Amount        int64  `json:"amount"`
	Date          string `json:"date"`
}

type backupDocument struct {
	Transactions     []backupTransaction `json:"transactions"`
	Budgets          []backupBudget      `json:"budgets"`
	Goals            []backupGoal        `json:"goals"`
	CustomCategories []backupCategory    `json:"custom_categories"`
	RecurringTxs     []backupRecurring   `json:"recurring_txs"`
	Accounts         []backupAccount     `json:"accounts"`
	Transfers        []backupTransfer    `json:"transfers"`
}

// ExportJSON serializes the user's transactions, budgets, goals, custom
// categories, recurring rules, accounts and transfers. Dates are RFC 3339.
func (s *backupService) ExportJSON(userID int64) ([]byte, error) {
	doc := backupDocument{
		Transactions:     []backupTransaction{},
		Budgets:          []backupBudget{},
		Goals:            []backupGoal{},
		CustomCategories: []backupCategory{},
		RecurringTxs:     []backupRecurring{},
		Accounts:         []backupAccount{},
		Transfers:        []backupTransfer{},
	}

	var transactions []models.Transaction
	if err := s.db.Where("user_id = ?", userID).Order("date ASC").Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	for _, tx := range transactions {
		doc.Transactions = append(doc.Transactions, backupTransaction{
			ID:          tx.ID,
			Type:        string(tx.Type),
			Amount:      tx.Amount,
			Description: tx.Description,
			Category:    tx.Category,
			Date:        tx.Date.Format(time.RFC3339),
			AccountID:   tx.AccountID,
		})
	}

	var budgets []models.Budget
	if err := s.db.Where("user_id = ?", userID).Find(&budgets).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	for _, b := range budgets {
		doc.Budgets = append(doc.Budgets, backupBudget{Category: b.Category, Amount: b.Amount})
	}

	var goals []models.Goal
	if err := s.db.Where("user_id = ?", userID).Find(&goals).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	for _, g := range goals {
		doc.Goals = append(doc.Goals, backupGoal{
			ID:           g.ID,
			Name:         g.Name,
			TargetAmount: g.TargetAmount,
			TargetDate:   g.TargetDate.Format(time.RFC3339),
			StartDate:    g.StartDate.Format(time.RFC3339),
		})
	}

	var customCategories []models.CustomCategory
	if err := s.db.Where("user_id = ?", userID).Find(&customCategories).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	for _, c := range customCategories {
		doc.CustomCategories = append(doc.CustomCategories, backupCategory{Type: string(c.Type), Name: c.Name})
	}

	var rules []models.RecurringRule
	if err := s.db.Where("user_id = ?", userID).Find(&rules).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	for _, r := range rules {
		doc.RecurringTxs = append(doc.RecurringTxs, backupRecurring{
			ID:          r.ID,
			Type:        string(r.Type),
			Amount:      r.Amount,
			Description: r.Description,
			Category:    r.Category,
			Day:         r.DayOfMonth,
		})
	}

	var accounts []models.Account
	if err := s.db.Where("user_id = ?", userID).Order("id ASC").Find(&accounts).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	for _, a := range accounts {
		doc.Accounts = append(doc.Accounts, backupAccount{ID: a.ID, Name: a.Name, InitialBalance: a.InitialBalance})
	}

	var transfers []models.TransferLog
	if err := s.db.Where("user_id = ?", userID).Order("date ASC").Find(&transfers).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	for _, t := range transfers {
		doc.Transfers = append(doc.Transfers, backupTransfer{
			FromAccountID: t.FromAccountID,
			ToAccountID:   t.ToAccountID,
			Amount:        t.Amount,
			Date:          t.Date.Format(time.RFC3339),
		})
	}

	payload, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return payload, nil
}

// restoreID keeps the backup's id when nothing else holds it. On a
// collision it returns empty so BeforeCreate generates a fresh one.
func restoreID(tx *gorm.DB, model interface{}, id string) (string, error) {
	if id == "" {
		return "", nil
	}
	var count int64
	if err := tx.Model(model).Where("id = ?", id).Count(&count).Error; err != nil {
		return "", err
	}
	if count > 0 {
		return "", nil
	}
	return id, nil
}

// parseBackupDate accepts RFC 3339 timestamps and bare dates.
func parseBackupDate(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", value)
}

// Restore replaces the user's entire data set with the backup's contents.
// The swap runs in a single database transaction, so a malformed record
// rolls everything back and the previous data survives. Account ids in the
// backup are remapped to the newly inserted rows; transaction references
// that cannot be resolved become unassigned, and transfers with unresolved
// endpoints are dropped.
func (s *backupService) Restore(userID int64, data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return apperrors.Wrap(apperrors.ErrInvalidBackup, err)
	}
	for _, key := range requiredBackupKeys {
		if _, ok := raw[key]; !ok {
			return apperrors.WithMessage(apperrors.ErrInvalidBackup, "missing key: "+key)
		}
	}

	var doc backupDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return apperrors.Wrap(apperrors.ErrInvalidBackup, err)
	}

	if _, err := s.userService.GetOrCreateUser(userID); err != nil {
		return err
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		for _, model := range []interface{}{
			&models.Transaction{},
			&models.TransferLog{},
			&models.Budget{},
			&models.Goal{},
			&models.CustomCategory{},
			&models.RecurringRule{},
			&models.Account{},
		} {
			if err := tx.Where("user_id = ?", userID).Delete(model).Error; err != nil {
				return err
			}
		}

		accountIDMap := make(map[uint]uint, len(doc.Accounts))
		for _, a := range doc.Accounts {
			account := models.Account{
				UserID:         userID,
				Name:           a.Name,
				InitialBalance: a.InitialBalance,
			}
			if err := tx.Create(&account).Error; err != nil {
				return err
			}
			accountIDMap[a.ID] = account.ID
		}

		for _, t := range doc.Transactions {
			date, err := parseBackupDate(t.Date)
			if err != nil {
				return apperrors.WithMessage(apperrors.ErrInvalidBackup, "bad transaction date: "+t.Date)
			}
			txType := models.TransactionType(t.Type)
			if !validTransactionType(txType) {
				return apperrors.WithMessage(apperrors.ErrInvalidBackup, "bad transaction type: "+t.Type)
			}

			var accountID *uint
			if t.AccountID != nil {
				if mapped, ok := accountIDMap[*t.AccountID]; ok {
					accountID = &mapped
				}
			}

			id, err := restoreID(tx, &models.Transaction{}, t.ID)
			if err != nil {
				return err
			}
			transaction := models.Transaction{
				ID:          id,
				UserID:      userID,
				AccountID:   accountID,
				Type:        txType,
				Amount:      t.Amount,
				Description: t.Description,
				Category:    t.Category,
				Date:        date,
			}
			if err := tx.Create(&transaction).Error; err != nil {
				return err
			}
		}

		for _, b := range doc.Budgets {
			budget := models.Budget{UserID: userID, Category: b.Category, Amount: b.Amount}
			if err := tx.Create(&budget).Error; err != nil {
				return err
			}
		}

		for _, g := range doc.Goals {
			targetDate, err := parseBackupDate(g.TargetDate)
			if err != nil {
				return apperrors.WithMessage(apperrors.ErrInvalidBackup, "bad goal target date: "+g.TargetDate)
			}
			startDate := targetDate
			if g.StartDate != "" {
				if startDate, err = parseBackupDate(g.StartDate); err != nil {
					return apperrors.WithMessage(apperrors.ErrInvalidBackup, "bad goal start date: "+g.StartDate)
				}
			}
			id, err := restoreID(tx, &models.Goal{}, g.ID)
			if err != nil {
				return err
			}
			goal := models.Goal{
				ID:           id,
				UserID:       userID,
				Name:         g.Name,
				TargetAmount: g.TargetAmount,
				TargetDate:   targetDate,
				StartDate:    startDate,
			}
			if err := tx.Create(&goal).Error; err != nil {
				return err
			}
		}

		for _, c := range doc.CustomCategories {
			category := models.CustomCategory{
				UserID: userID,
				Type:   models.TransactionType(c.Type),
				Name:   c.Name,
			}
			if err := tx.Create(&category).Error; err != nil {
				return err
			}
		}

		for _, r := range doc.RecurringTxs {
			id, err := restoreID(tx, &models.RecurringRule{}, r.ID)
			if err != nil {
				return err
			}
			rule := models.RecurringRule{
				ID:          id,
				UserID:      userID,
				Type:        models.TransactionType(r.Type),
				Amount:      r.Amount,
				Description: r.Description,
				Category:    r.Category,
				DayOfMonth:  r.Day,
			}
			if err := tx.Create(&rule).Error; err != nil {
				return err
			}
		}

		for _, t := range doc.Transfers {
			from, okFrom := accountIDMap[t.FromAccountID]
			to, okTo := accountIDMap[t.ToAccountID]
			if !okFrom || !okTo {
				continue
			}
			date, err := parseBackupDate(t.Date)
			if err != nil {
				return apperrors.WithMessage(apperrors.ErrInvalidBackup, "bad transfer date: "+t.Date)
			}
			transfer := models.TransferLog{
				UserID:        userID,
				FromAccountID: from,
				ToAccountID:   to,
				Amount:        t.Amount,
				Date:          date,
			}
			if err := tx.Create(&transfer).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if appErr, ok := err.(*apperrors.AppError); ok {
			return appErr
		}
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
