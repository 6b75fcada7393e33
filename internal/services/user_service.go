package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "github.com/aungaung101025-ux/adupayment/internal/errors"
	"github.com/aungaung101025-ux/adupayment/internal/logger"
	"github.com/aungaung101025-ux/adupayment/internal/models"
)

// userService handles user lifecycle, premium status and reminder settings.
type userService struct {
	db  *gorm.DB
	now func() time.Time
}

// NewUserService creates a new UserServicer.
func NewUserService(db *gorm.DB) UserServicer {
	return &userService{db: db, now: time.Now}
}

// GetOrCreateUser returns the user row, creating it on first contact.
func (s *userService) GetOrCreateUser(userID int64) (*models.User, error) {
	var user models.User
	err := s.db.Where("id = ?", userID).First(&user).Error
	if err == nil {
		return &user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	logger.Get().Infow("creating new user", "user_id", userID)
	user = models.User{
		ID:        userID,
		WeeklyDay: "Sunday",
	}
	if err := s.db.Create(&user).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &user, nil
}

// DeleteUserData removes the user and, through cascade, every entity they
// own. Irreversible.
func (s *userService) DeleteUserData(userID int64) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.Where("id = ?", userID).First(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrUserNotFound
			}
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		// SQLite test databases do not enforce the FK cascade by default,
		// so child rows are removed explicitly.
		for _, model := range []interface{}{
			&models.Transaction{}, &models.TransferLog{}, &models.Account{},
			&models.Budget{}, &models.Goal{}, &models.CustomCategory{}, &models.RecurringRule{},
		} {
			if err := tx.Where("user_id = ?", userID).Delete(model).Error; err != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, err)
			}
		}

		if err := tx.Delete(&user).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		logger.Get().Infow("deleted all user data", "user_id", userID)
		return nil
	})
}

// GetPremiumStatus reads the premium state, lazily clearing the flag when
// the end date has passed.
func (s *userService) GetPremiumStatus(userID int64) (*PremiumStatus, error) {
	user, err := s.GetOrCreateUser(userID)
	if err != nil {
		return nil, err
	}

	active := user.IsPremium && user.PremiumEndDate.After(s.now())
	if user.IsPremium && !active {
		if err := s.db.Model(user).Update("is_premium", false).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		logger.Get().Infow("premium expired", "user_id", userID)
	}

	return &PremiumStatus{
		IsPremium: active,
		EndDate:   user.PremiumEndDate,
		UsedTrial: user.UsedTrial,
	}, nil
}

// GrantPremium extends premium access by the given number of days from now.
func (s *userService) GrantPremium(userID int64, days int, trial bool) (time.Time, error) {
	user, err := s.GetOrCreateUser(userID)
	if err != nil {
		return time.Time{}, err
	}

	endDate := s.now().AddDate(0, 0, days)
	updates := map[string]interface{}{
		"is_premium":       true,
		"premium_end_date": endDate,
	}
	if trial {
		updates["used_trial"] = true
	}
	if err := s.db.Model(user).Updates(updates).Error; err != nil {
		return time.Time{}, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	logger.Get().Infow("granted premium", "user_id", userID, "days", days, "trial", trial)
	return endDate, nil
}

// RevokePremium clears premium access immediately.
func (s *userService) RevokePremium(userID int64) error {
	var user models.User
	if err := s.db.Where("id = ?", userID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrUserNotFound
		}
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	updates := map[string]interface{}{
		"is_premium":       false,
		"premium_end_date": time.Time{},
	}
	if err := s.db.Model(&user).Updates(updates).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// GetReminderSettings returns the user's reminder preferences.
func (s *userService) GetReminderSettings(userID int64) (*ReminderSettings, error) {
	user, err := s.GetOrCreateUser(userID)
	if err != nil {
		return nil, err
	}
	return &ReminderSettings{
		DailyReminder: user.DailyReminder,
		WeeklySummary: user.WeeklySummary,
		WeeklyDay:     user.WeeklyDay,
	}, nil
}

// UpdateReminderSettings applies any provided preference changes.
func (s *userService) UpdateReminderSettings(userID int64, daily, weekly *bool, weeklyDay *string) (*ReminderSettings, error) {
	user, err := s.GetOrCreateUser(userID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if daily != nil {
		updates["daily_reminder"] = *daily
	}
	if weekly != nil {
		updates["weekly_summary"] = *weekly
	}
	if weeklyDay != nil {
		updates["weekly_day"] = *weeklyDay
	}
	if len(updates) > 0 {
		if err := s.db.Model(user).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	return s.GetReminderSettings(userID)
}

// UsersForReminders returns premium users with at least one reminder enabled.
func (s *userService) UsersForReminders() ([]ReminderTarget, error) {
	var users []models.User
	err := s.db.
		Where("is_premium = ? AND premium_end_date > ?", true, s.now()).
		Where("daily_reminder = ? OR weekly_summary = ?", true, true).
		Find(&users).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	targets := make([]ReminderTarget, 0, len(users))
	for _, u := range users {
		targets = append(targets, ReminderTarget{
			UserID:        u.ID,
			DailyReminder: u.DailyReminder,
			WeeklySummary: u.WeeklySummary,
			WeeklyDay:     u.WeeklyDay,
		})
	}
	return targets, nil
}

// UsersWithRecurringRules returns premium users owning at least one rule.
func (s *userService) UsersWithRecurringRules() ([]int64, error) {
	var ids []int64
	err := s.db.Model(&models.User{}).
		Distinct("users.id").
		Joins("JOIN recurring_rules ON recurring_rules.user_id = users.id").
		Where("users.is_premium = ? AND users.premium_end_date > ?", true, s.now()).
		Pluck("users.id", &ids).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return ids, nil
}
