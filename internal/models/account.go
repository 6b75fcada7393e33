package models

import "time"

// Account represents a named money account. The current balance is never
// stored: it is derived from InitialBalance plus every transaction and
// transfer referencing the account, so balances cannot drift from the
// underlying events.
type Account struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	UserID         int64  `gorm:"not null;uniqueIndex:idx_account_user_name" json:"user_id"`
	Name           string `gorm:"not null;uniqueIndex:idx_account_user_name" json:"name"`
	InitialBalance int64  `gorm:"type:bigint;not null;default:0" json:"initial_balance"`
}
