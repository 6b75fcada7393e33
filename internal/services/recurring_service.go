package services

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	apperrors "github.com/aungaung101025-ux/adupayment/internal/errors"
	"github.com/aungaung101025-ux/adupayment/internal/logger"
	"github.com/aungaung101025-ux/adupayment/internal/models"
)

// recurringService manages monthly recurring transaction rules and their
// daily materialization run.
type recurringService struct {
	db          *gorm.DB
	userService UserServicer
	notifier    Notifier
	now         func() time.Time
}

// NewRecurringService creates a new RecurringServicer. notifier may be nil
// when no delivery channel is wired.
func NewRecurringService(db *gorm.DB, userService UserServicer, notifier Notifier) RecurringServicer {
	return &recurringService{
		db:          db,
		userService: userService,
		notifier:    notifier,
		now:         time.Now,
	}
}

// AddRule registers a monthly recurring transaction. Only days 1 through 28
// are accepted so the rule fires every month.
func (s *recurringService) AddRule(userID int64, txType models.TransactionType, amount int64, description, category string, dayOfMonth int) (*models.RecurringRule, error) {
	if !validTransactionType(txType) {
		return nil, apperrors.ErrInvalidTransactionType
	}
	if amount <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be greater than zero")
	}
	if dayOfMonth < 1 || dayOfMonth > 28 {
		return nil, apperrors.ErrInvalidDayOfMonth
	}

	if _, err := s.userService.GetOrCreateUser(userID); err != nil {
		return nil, err
	}

	rule := &models.RecurringRule{
		UserID:      userID,
		Type:        txType,
		Amount:      amount,
		Description: description,
		Category:    category,
		DayOfMonth:  dayOfMonth,
	}
	if err := s.db.Create(rule).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return rule, nil
}

// GetRules returns the user's recurring rules ordered by day of month.
func (s *recurringService) GetRules(userID int64) ([]models.RecurringRule, error) {
	var rules []models.RecurringRule
	if err := s.db.Where("user_id = ?", userID).
		Order("day_of_month ASC").
		Find(&rules).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return rules, nil
}

// DeleteRule removes a recurring rule by id.
func (s *recurringService) DeleteRule(userID int64, ruleID string) error {
	result := s.db.Where("id = ? AND user_id = ?", ruleID, userID).
		Delete(&models.RecurringRule{})
	if result.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrRecurringNotFound
	}
	return nil
}

// alreadyExecutedToday reports whether a transaction matching the rule's
// content was already recorded today. Matching is by description, amount and
// type, which makes the run idempotent within a day.
func (s *recurringService) alreadyExecutedToday(rule models.RecurringRule, dayStart, dayEnd time.Time) (bool, error) {
	var count int64
	err := s.db.Model(&models.Transaction{}).
		Where("user_id = ? AND description = ? AND amount = ? AND type = ? AND date >= ? AND date <= ?",
			rule.UserID, rule.Description, rule.Amount, rule.Type, dayStart, dayEnd).
		Count(&count).Error
	if err != nil {
		return false, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return count > 0, nil
}

// RunDaily materializes every rule due today for every premium user with
// rules. Failures are counted per rule and never abort the run.
func (s *recurringService) RunDaily() (*RecurringRunReport, error) {
	log := logger.Get()
	now := s.now()
	today := now.Day()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	dayEnd := time.Date(now.Year(), now.Month(), now.Day(), 23, 59, 59, 0, now.Location())

	userIDs, err := s.userService.UsersWithRecurringRules()
	if err != nil {
		return nil, err
	}

	report := &RecurringRunReport{}
	for _, userID := range userIDs {
		report.UsersProcessed++

		var rules []models.RecurringRule
		if err := s.db.Where("user_id = ? AND day_of_month = ?", userID, today).
			Find(&rules).Error; err != nil {
			log.Errorw("failed to load recurring rules", "user_id", userID, "error", err)
			report.Failed++
			continue
		}

		for _, rule := range rules {
			done, err := s.alreadyExecutedToday(rule, dayStart, dayEnd)
			if err != nil {
				log.Errorw("failed to check recurring execution", "rule_id", rule.ID, "error", err)
				report.Failed++
				continue
			}
			if done {
				report.Skipped++
				continue
			}

			transaction := &models.Transaction{
				UserID:      rule.UserID,
				Type:        rule.Type,
				Amount:      rule.Amount,
				Description: rule.Description,
				Category:    rule.Category,
				Date:        now,
			}
			if err := s.db.Create(transaction).Error; err != nil {
				log.Errorw("failed to materialize recurring transaction", "rule_id", rule.ID, "error", err)
				report.Failed++
				continue
			}
			report.Executed++

			if s.notifier != nil {
				msg := fmt.Sprintf("Recurring %s recorded: %s (%d) in %s", rule.Type, rule.Description, rule.Amount, rule.Category)
				if err := s.notifier.Notify(rule.UserID, msg); err != nil {
					log.Warnw("failed to notify recurring execution", "user_id", rule.UserID, "error", err)
				}
			}
		}
	}
	return report, nil
}
