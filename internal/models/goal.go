package models

import (
	"time"

	"github.com/aungaung101025-ux/adupayment/internal/uuid"

	"gorm.io/gorm"
)

// Goal is a savings target. Progress is derived from the user's total
// balance at read time, clamped to [0, TargetAmount]; all goals share the
// same global balance rather than earmarked funds.
type Goal struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	UserID       int64     `gorm:"not null;index" json:"user_id"`
	Name         string    `gorm:"not null" json:"name"`
	TargetAmount int64     `gorm:"type:bigint;not null" json:"target_amount"`
	TargetDate   time.Time `gorm:"not null" json:"target_date"`
	StartDate    time.Time `gorm:"not null" json:"start_date"`
}

// BeforeCreate hook generates a UUIDv7 for new records
func (g *Goal) BeforeCreate(tx *gorm.DB) error {
	if g.ID == "" {
		g.ID = uuid.New()
	}
	return nil
}
