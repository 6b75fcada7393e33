package services

import (
	"strings"

	"gorm.io/gorm"

	"github.com/aungaung101025-ux/adupayment/internal/categories"
	apperrors "github.com/aungaung101025-ux/adupayment/internal/errors"
	"github.com/aungaung101025-ux/adupayment/internal/models"
)

// categoryService manages the per-user category set: a fixed built-in list
// per transaction type, extended by user-defined custom categories.
type categoryService struct {
	db          *gorm.DB
	userService UserServicer
}

// NewCategoryService creates a new CategoryServicer.
func NewCategoryService(db *gorm.DB, userService UserServicer) CategoryServicer {
	return &categoryService{db: db, userService: userService}
}

// AddCustomCategory registers a user-defined category for a transaction type.
// Names that collide with a built-in or an existing custom category of the
// same type are rejected.
func (s *categoryService) AddCustomCategory(userID int64, txType models.TransactionType, name string) (*models.CustomCategory, error) {
	if !validTransactionType(txType) {
		return nil, apperrors.ErrInvalidTransactionType
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "category name is required")
	}
	if categories.IsBuiltin(txType, name) {
		return nil, apperrors.ErrDuplicateCategory
	}

	if _, err := s.userService.GetOrCreateUser(userID); err != nil {
		return nil, err
	}

	var count int64
	if err := s.db.Model(&models.CustomCategory{}).
		Where("user_id = ? AND type = ? AND name = ?", userID, txType, name).
		Count(&count).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count > 0 {
		return nil, apperrors.ErrDuplicateCategory
	}

	category := &models.CustomCategory{
		UserID: userID,
		Type:   txType,
		Name:   name,
	}
	if err := s.db.Create(category).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return category, nil
}

// RemoveCustomCategory deletes a custom category. Built-in categories cannot
// be removed, and existing transactions keep the removed name.
func (s *categoryService) RemoveCustomCategory(userID int64, txType models.TransactionType, name string) error {
	if !validTransactionType(txType) {
		return apperrors.ErrInvalidTransactionType
	}
	name = strings.TrimSpace(name)
	if categories.IsBuiltin(txType, name) {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "built-in categories cannot be removed")
	}

	result := s.db.Where("user_id = ? AND type = ? AND name = ?", userID, txType, name).
		Delete(&models.CustomCategory{})
	if result.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrCategoryNotFound
	}
	return nil
}

// GetCustomCategories returns the user's custom categories for a type, in
// creation order.
func (s *categoryService) GetCustomCategories(userID int64, txType models.TransactionType) ([]models.CustomCategory, error) {
	if !validTransactionType(txType) {
		return nil, apperrors.ErrInvalidTransactionType
	}
	var list []models.CustomCategory
	if err := s.db.Where("user_id = ? AND type = ?", userID, txType).
		Order("id ASC").
		Find(&list).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return list, nil
}

// AllCategories returns built-in categories followed by the user's custom
// categories for the given type.
func (s *categoryService) AllCategories(userID int64, txType models.TransactionType) ([]string, error) {
	custom, err := s.GetCustomCategories(userID, txType)
	if err != nil {
		return nil, err
	}
	all := categories.Builtin(txType)
	for _, c := range custom {
		all = append(all, c.Name)
	}
	return all, nil
}

// IsKnownCategory reports whether name belongs to the user's category set for
// the given type.
func (s *categoryService) IsKnownCategory(userID int64, txType models.TransactionType, name string) (bool, error) {
	if categories.IsBuiltin(txType, name) {
		return true, nil
	}
	var count int64
	if err := s.db.Model(&models.CustomCategory{}).
		Where("user_id = ? AND type = ? AND name = ?", userID, txType, name).
		Count(&count).Error; err != nil {
		return false, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return count > 0, nil
}
