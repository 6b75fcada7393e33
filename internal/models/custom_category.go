package models

import "time"

// CustomCategory extends the built-in category list for one transaction
// type. The (user, type, name) triple is unique.
type CustomCategory struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	UserID int64           `gorm:"not null;uniqueIndex:idx_custom_cat" json:"user_id"`
	Type   TransactionType `gorm:"size:10;not null;uniqueIndex:idx_custom_cat" json:"type"`
	Name   string          `gorm:"not null;uniqueIndex:idx_custom_cat" json:"name"`
}
