package services

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	apperrors "github.com/aungaung101025-ux/adupayment/internal/errors"
	"github.com/aungaung101025-ux/adupayment/internal/models"
)

// goalService manages savings goals. Progress is measured against the user's
// total balance across all accounts, so every goal draws on the same pool.
type goalService struct {
	db             *gorm.DB
	userService    UserServicer
	accountService AccountServicer
	now            func() time.Time
}

// NewGoalService creates a new GoalServicer.
func NewGoalService(db *gorm.DB, userService UserServicer, accountService AccountServicer) GoalServicer {
	return &goalService{
		db:             db,
		userService:    userService,
		accountService: accountService,
		now:            time.Now,
	}
}

// AddGoal creates a savings goal. The target date must not be in the past.
func (s *goalService) AddGoal(userID int64, name string, targetAmount int64, targetDate time.Time) (*models.Goal, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "goal name is required")
	}
	if targetAmount <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "target amount must be greater than zero")
	}

	now := s.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if targetDate.Before(today) {
		return nil, apperrors.ErrPastTargetDate
	}

	if _, err := s.userService.GetOrCreateUser(userID); err != nil {
		return nil, err
	}

	goal := &models.Goal{
		UserID:       userID,
		Name:         name,
		TargetAmount: targetAmount,
		TargetDate:   targetDate,
		StartDate:    today,
	}
	if err := s.db.Create(goal).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return goal, nil
}

// GetGoals returns the user's goals in creation order.
func (s *goalService) GetGoals(userID int64) ([]models.Goal, error) {
	var goals []models.Goal
	if err := s.db.Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&goals).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return goals, nil
}

// DeleteGoal removes a goal by id.
func (s *goalService) DeleteGoal(userID int64, goalID string) error {
	result := s.db.Where("id = ? AND user_id = ?", goalID, userID).
		Delete(&models.Goal{})
	if result.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrGoalNotFound
	}
	return nil
}

// GetGoalProgress reports the goal's progress against the user's total
// balance, clamped to [0, target].
func (s *goalService) GetGoalProgress(userID int64, goalID string) (*GoalProgress, error) {
	var goal models.Goal
	err := s.db.Where("id = ? AND user_id = ?", goalID, userID).First(&goal).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.ErrGoalNotFound
	}
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	total, err := s.accountService.TotalBalance(userID)
	if err != nil {
		return nil, err
	}

	savings := total
	if savings < 0 {
		savings = 0
	}
	if savings > goal.TargetAmount {
		savings = goal.TargetAmount
	}

	pct := 0.0
	if goal.TargetAmount > 0 {
		pct = float64(savings) / float64(goal.TargetAmount) * 100
	}

	return &GoalProgress{
		Goal:           goal,
		CurrentSavings: savings,
		Remaining:      goal.TargetAmount - savings,
		ProgressPct:    pct,
		Achieved:       pct >= 100,
	}, nil
}
