package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "github.com/aungaung101025-ux/adupayment/internal/errors"
	"github.com/aungaung101025-ux/adupayment/internal/models"
)

// alertThresholdPct is the spend percentage at which a budget alert fires.
const alertThresholdPct = 80.0

// budgetService manages monthly per-category expense budgets.
type budgetService struct {
	db              *gorm.DB
	userService     UserServicer
	categoryService CategoryServicer
	now             func() time.Time
}

// NewBudgetService creates a new BudgetServicer.
func NewBudgetService(db *gorm.DB, userService UserServicer, categoryService CategoryServicer) BudgetServicer {
	return &budgetService{
		db:              db,
		userService:     userService,
		categoryService: categoryService,
		now:             time.Now,
	}
}

// monthWindow returns the first instant and the last counted instant of the
// calendar month containing t.
func monthWindow(t time.Time) (time.Time, time.Time) {
	start := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	lastDay := start.AddDate(0, 1, -1)
	end := time.Date(lastDay.Year(), lastDay.Month(), lastDay.Day(), 23, 59, 59, 0, t.Location())
	return start, end
}

// SetBudget creates or replaces the budget amount for an expense category.
func (s *budgetService) SetBudget(userID int64, category string, amount int64) (*models.Budget, error) {
	if amount <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "budget amount must be greater than zero")
	}
	known, err := s.categoryService.IsKnownCategory(userID, models.TransactionTypeExpense, category)
	if err != nil {
		return nil, err
	}
	if !known {
		return nil, apperrors.ErrUnknownCategory
	}

	if _, err := s.userService.GetOrCreateUser(userID); err != nil {
		return nil, err
	}

	var budget models.Budget
	err = s.db.Where("user_id = ? AND category = ?", userID, category).First(&budget).Error
	switch {
	case err == nil:
		if err := s.db.Model(&budget).Update("amount", amount).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		budget.Amount = amount
		return &budget, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		budget = models.Budget{UserID: userID, Category: category, Amount: amount}
		if err := s.db.Create(&budget).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return &budget, nil
	default:
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
}

// GetBudgets returns the user's budget amounts keyed by category.
func (s *budgetService) GetBudgets(userID int64) (map[string]int64, error) {
	var budgets []models.Budget
	if err := s.db.Where("user_id = ?", userID).Find(&budgets).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	result := make(map[string]int64, len(budgets))
	for _, b := range budgets {
		result[b.Category] = b.Amount
	}
	return result, nil
}

// DeleteBudget removes the budget for a category.
func (s *budgetService) DeleteBudget(userID int64, category string) error {
	result := s.db.Where("user_id = ? AND category = ?", userID, category).
		Delete(&models.Budget{})
	if result.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrCategoryNotFound
	}
	return nil
}

// spentInMonth sums the user's expenses for a category inside the current
// month window.
func (s *budgetService) spentInMonth(userID int64, category string, at time.Time) (int64, error) {
	start, end := monthWindow(at)
	var spent int64
	err := s.db.Model(&models.Transaction{}).
		Where("user_id = ? AND type = ? AND category = ? AND date >= ? AND date <= ?",
			userID, models.TransactionTypeExpense, category, start, end).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&spent).Error
	if err != nil {
		return 0, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return spent, nil
}

// GetBudgetStatus evaluates every budget against the current month's
// spending, ordered by category for stable output.
func (s *budgetService) GetBudgetStatus(userID int64) ([]BudgetEntry, error) {
	var budgets []models.Budget
	if err := s.db.Where("user_id = ?", userID).
		Order("category ASC").
		Find(&budgets).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	now := s.now()
	_, monthEnd := monthWindow(now)
	// Days left in the month, counting today.
	daysRemaining := monthEnd.Day() - now.Day() + 1

	entries := make([]BudgetEntry, 0, len(budgets))
	for _, b := range budgets {
		spent, err := s.spentInMonth(userID, b.Category, now)
		if err != nil {
			return nil, err
		}

		remaining := b.Amount - spent
		percent := 0.0
		if b.Amount > 0 {
			percent = float64(spent) / float64(b.Amount) * 100
		}

		status := BudgetStateOK
		switch {
		case spent > b.Amount:
			status = BudgetStateOver
		case float64(remaining) < float64(b.Amount)*0.10:
			status = BudgetStateNear
		}

		dailyLimit := 0.0
		if daysRemaining > 0 {
			left := remaining
			if left < 0 {
				left = 0
			}
			dailyLimit = float64(left) / float64(daysRemaining)
		}

		entries = append(entries, BudgetEntry{
			Category:      b.Category,
			Budgeted:      b.Amount,
			Spent:         spent,
			Remaining:     remaining,
			PercentSpent:  percent,
			Status:        status,
			DaysRemaining: daysRemaining,
			DailyLimit:    dailyLimit,
		})
	}
	return entries, nil
}

// CheckAlert reports whether the given expense transaction pushed its
// category's monthly spend across the alert threshold. The alert fires only
// on the crossing transaction, so repeated spending past the threshold stays
// quiet.
func (s *budgetService) CheckAlert(userID int64, tx *models.Transaction) (bool, error) {
	if tx == nil || tx.Type != models.TransactionTypeExpense {
		return false, nil
	}

	var budget models.Budget
	err := s.db.Where("user_id = ? AND category = ?", userID, tx.Category).First(&budget).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if budget.Amount <= 0 {
		return false, nil
	}

	spent, err := s.spentInMonth(userID, tx.Category, tx.Date)
	if err != nil {
		return false, err
	}

	percent := float64(spent) / float64(budget.Amount) * 100
	contribution := float64(tx.Amount) / float64(budget.Amount) * 100
	return percent >= alertThresholdPct && percent-contribution < alertThresholdPct, nil
}
