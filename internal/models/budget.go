package models

import "time"

// Budget is a monthly spending cap for one category. One row per
// (user, category); setting a budget again overwrites the amount.
type Budget struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	UserID   int64  `gorm:"not null;uniqueIndex:idx_budget_user_category" json:"user_id"`
	Category string `gorm:"not null;uniqueIndex:idx_budget_user_category" json:"category"`
	Amount   int64  `gorm:"type:bigint;not null" json:"amount"`
}
