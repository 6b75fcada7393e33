package models

import "time"

// TransferLog records a movement of funds between two of the same user's
// accounts. Transfers are append-only; reversing one means inserting a
// compensating transfer in the opposite direction.
type TransferLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	UserID        int64     `gorm:"not null;index" json:"user_id"`
	FromAccountID uint      `gorm:"not null;index" json:"from_account_id"`
	ToAccountID   uint      `gorm:"not null;index" json:"to_account_id"`
	Amount        int64     `gorm:"type:bigint;not null" json:"amount"`
	Description   string    `json:"description"`
	Date          time.Time `gorm:"not null" json:"date"`

	FromAccount *Account `gorm:"foreignKey:FromAccountID" json:"from_account,omitempty"`
	ToAccount   *Account `gorm:"foreignKey:ToAccountID" json:"to_account,omitempty"`
}
