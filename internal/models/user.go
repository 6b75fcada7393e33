package models

import "time"

// User represents a chat-platform user. The primary key is the opaque
// integer identity assigned by the chat platform; rows are created lazily
// on first interaction. Deleting a user cascades to every owned entity.
type User struct {
	ID        int64     `gorm:"primaryKey;autoIncrement:false" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Premium status. IsPremium is lazily recomputed against PremiumEndDate
	// on read, never actively expired.
	IsPremium      bool      `gorm:"not null;default:false" json:"is_premium"`
	PremiumEndDate time.Time `json:"premium_end_date"`
	UsedTrial      bool      `gorm:"not null;default:false" json:"used_trial"`

	// Reminder preferences.
	DailyReminder bool   `gorm:"not null;default:false" json:"daily_reminder"`
	WeeklySummary bool   `gorm:"not null;default:false" json:"weekly_summary"`
	WeeklyDay     string `gorm:"not null;default:'Sunday'" json:"weekly_day"`

	Transactions     []Transaction    `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"transactions,omitempty"`
	Accounts         []Account        `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"accounts,omitempty"`
	Transfers        []TransferLog    `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"transfers,omitempty"`
	Budgets          []Budget         `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"budgets,omitempty"`
	Goals            []Goal           `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"goals,omitempty"`
	CustomCategories []CustomCategory `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"custom_categories,omitempty"`
	RecurringRules   []RecurringRule  `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"recurring_rules,omitempty"`
}
