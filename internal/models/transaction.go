package models

import (
	"time"

	"github.com/aungaung101025-ux/adupayment/internal/uuid"

	"gorm.io/gorm"
)

// TransactionType represents the type of transaction
type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "income"
	TransactionTypeExpense TransactionType = "expense"
)

// Transaction represents a single income or expense record. Amount is a
// positive integer in the smallest currency unit. AccountID is nullable:
// transactions recorded before multi-account support (and recurring
// materializations) carry no account reference and count toward the
// synthetic "unassigned" balance.
type Transaction struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	UserID      int64           `gorm:"not null;index" json:"user_id"`
	AccountID   *uint           `gorm:"index" json:"account_id,omitempty"`
	Type        TransactionType `gorm:"size:10;not null" json:"type"`
	Amount      int64           `gorm:"type:bigint;not null" json:"amount"`
	Description string          `json:"description"`
	Category    string          `gorm:"not null" json:"category"`
	Date        time.Time       `gorm:"not null;index" json:"date"`

	Account *Account `gorm:"foreignKey:AccountID" json:"account,omitempty"`
}

// BeforeCreate hook generates a UUIDv7 for new records
func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.New()
	}
	return nil
}
