package services

import (
	"time"

	"gorm.io/gorm"

	apperrors "github.com/aungaung101025-ux/adupayment/internal/errors"
	"github.com/aungaung101025-ux/adupayment/internal/logger"
	"github.com/aungaung101025-ux/adupayment/internal/models"
)

// adminService provides operator-facing maintenance operations.
type adminService struct {
	db          *gorm.DB
	userService UserServicer
	notifier    Notifier
	now         func() time.Time
}

// NewAdminService creates a new AdminServicer. notifier may be nil when no
// delivery channel is wired; Broadcast then counts every user as failed.
func NewAdminService(db *gorm.DB, userService UserServicer, notifier Notifier) AdminServicer {
	return &adminService{
		db:          db,
		userService: userService,
		notifier:    notifier,
		now:         time.Now,
	}
}

// Stats returns aggregate user counts. Premium counts only subscriptions
// that have not lapsed.
func (s *adminService) Stats() (*AdminStats, error) {
	stats := &AdminStats{}
	if err := s.db.Model(&models.User{}).Count(&stats.TotalUsers).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if err := s.db.Model(&models.User{}).
		Where("is_premium = ? AND premium_end_date > ?", true, s.now()).
		Count(&stats.PremiumUsers).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return stats, nil
}

// UserDetails returns one user's premium state and activity volume.
func (s *adminService) UserDetails(userID int64) (*AdminUserDetails, error) {
	status, err := s.userService.GetPremiumStatus(userID)
	if err != nil {
		return nil, err
	}

	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var txCount int64
	if err := s.db.Model(&models.Transaction{}).
		Where("user_id = ?", userID).
		Count(&txCount).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return &AdminUserDetails{
		UserID:           userID,
		IsPremium:        status.IsPremium,
		PremiumEndDate:   status.EndDate,
		UsedTrial:        user.UsedTrial,
		TransactionCount: txCount,
	}, nil
}

// Broadcast sends a message to every registered user, counting failures
// instead of aborting.
func (s *adminService) Broadcast(message string) (*BroadcastResult, error) {
	if message == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "message is required")
	}

	var userIDs []int64
	if err := s.db.Model(&models.User{}).Pluck("id", &userIDs).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	log := logger.Get()
	result := &BroadcastResult{}
	for _, id := range userIDs {
		if s.notifier == nil {
			result.Failed++
			continue
		}
		if err := s.notifier.Notify(id, message); err != nil {
			log.Warnw("broadcast delivery failed", "user_id", id, "error", err)
			result.Failed++
			continue
		}
		result.Sent++
	}
	return result, nil
}
