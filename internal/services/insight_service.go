package services

import (
	"time"

	"gorm.io/gorm"

	apperrors "github.com/aungaung101025-ux/adupayment/internal/errors"
	"github.com/aungaung101025-ux/adupayment/internal/models"
)

// insightWindowDays is how far back Analyze looks.
const insightWindowDays = 30

// insightService produces rule-based spending insights over a rolling window.
type insightService struct {
	db  *gorm.DB
	now func() time.Time
}

// NewInsightService creates a new InsightServicer.
func NewInsightService(db *gorm.DB) InsightServicer {
	return &insightService{db: db, now: time.Now}
}

type categorySum struct {
	Category string
	Total    int64
}

func (s *insightService) sumByType(userID int64, txType models.TransactionType, start, end time.Time) (int64, error) {
	var total int64
	err := s.db.Model(&models.Transaction{}).
		Where("user_id = ? AND type = ? AND date >= ? AND date <= ?", userID, txType, start, end).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error
	if err != nil {
		return 0, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return total, nil
}

// Analyze evaluates the insight rules over the trailing window: saving rate,
// dominant expense category, and budget consumption. When the window has no
// activity at all, HasData is false and no insights are emitted.
func (s *insightService) Analyze(userID int64) (*InsightReport, error) {
	now := s.now()
	end := now
	start := now.AddDate(0, 0, -insightWindowDays)

	report := &InsightReport{
		WindowStart: start,
		WindowEnd:   end,
		Insights:    []Insight{},
	}

	income, err := s.sumByType(userID, models.TransactionTypeIncome, start, end)
	if err != nil {
		return nil, err
	}
	expense, err := s.sumByType(userID, models.TransactionTypeExpense, start, end)
	if err != nil {
		return nil, err
	}

	if income == 0 && expense == 0 {
		return report, nil
	}
	report.HasData = true

	if income > 0 {
		rate := float64(income-expense) / float64(income) * 100
		switch {
		case rate < 0:
			report.Insights = append(report.Insights, Insight{
				Kind: InsightSavingNegative, Rate: rate, Income: income, Expense: expense,
			})
		case rate < 15:
			report.Insights = append(report.Insights, Insight{
				Kind: InsightSavingLow, Rate: rate, Income: income, Expense: expense,
			})
		default:
			report.Insights = append(report.Insights, Insight{
				Kind: InsightSavingGood, Rate: rate, Income: income, Expense: expense,
			})
		}
	} else if expense > 0 {
		// Spending with no income at all is the worst saving rate there is.
		report.Insights = append(report.Insights, Insight{
			Kind: InsightSavingNegative, Income: 0, Expense: expense,
		})
	}

	if expense > 0 {
		var sums []categorySum
		err := s.db.Model(&models.Transaction{}).
			Where("user_id = ? AND type = ? AND date >= ? AND date <= ?",
				userID, models.TransactionTypeExpense, start, end).
			Select("category, COALESCE(SUM(amount), 0) AS total").
			Group("category").
			Order("total DESC").
			Scan(&sums).Error
		if err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if len(sums) > 0 {
			share := float64(sums[0].Total) / float64(expense) * 100
			if share > 30 {
				report.Insights = append(report.Insights, Insight{
					Kind:     InsightTopCategory,
					Category: sums[0].Category,
					Percent:  share,
					Spent:    sums[0].Total,
					Expense:  expense,
				})
			}
		}
	}

	// Budgets are checked against the same trailing window as the other
	// rules, ordered by category for stable output. Categories with no
	// spending in the window stay quiet.
	var budgets []models.Budget
	if err := s.db.Where("user_id = ?", userID).
		Order("category ASC").
		Find(&budgets).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	for _, b := range budgets {
		if b.Amount <= 0 {
			continue
		}
		var spent int64
		err := s.db.Model(&models.Transaction{}).
			Where("user_id = ? AND type = ? AND category = ? AND date >= ? AND date <= ?",
				userID, models.TransactionTypeExpense, b.Category, start, end).
			Select("COALESCE(SUM(amount), 0)").
			Scan(&spent).Error
		if err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if spent <= 0 {
			continue
		}
		percent := float64(spent) / float64(b.Amount) * 100
		switch {
		case percent >= 100:
			report.Insights = append(report.Insights, Insight{
				Kind: InsightBudgetOver, Category: b.Category, Percent: percent, Spent: spent, Budget: b.Amount,
			})
		case percent >= 80:
			report.Insights = append(report.Insights, Insight{
				Kind: InsightBudgetWarning, Category: b.Category, Percent: percent, Spent: spent, Budget: b.Amount,
			})
		}
	}

	if len(report.Insights) == 0 {
		report.Insights = append(report.Insights, Insight{Kind: InsightAllNormal})
	}
	return report, nil
}
