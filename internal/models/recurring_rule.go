package models

import (
	"time"

	"github.com/aungaung101025-ux/adupayment/internal/uuid"

	"gorm.io/gorm"
)

// RecurringRule materializes into a concrete transaction once per month on
// DayOfMonth. Days 29-31 are deliberately rejected so rules fire in every
// month regardless of length.
type RecurringRule struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	UserID      int64           `gorm:"not null;index" json:"user_id"`
	Type        TransactionType `gorm:"size:10;not null" json:"type"`
	Amount      int64           `gorm:"type:bigint;not null" json:"amount"`
	Description string          `json:"description"`
	Category    string          `gorm:"not null" json:"category"`
	DayOfMonth  int             `gorm:"not null" json:"day_of_month"`
}

// BeforeCreate hook generates a UUIDv7 for new records
func (r *RecurringRule) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.New()
	}
	return nil
}
