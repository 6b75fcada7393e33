package services

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	apperrors "github.com/aungaung101025-ux/adupayment/internal/errors"
	"github.com/aungaung101025-ux/adupayment/internal/models"
	"github.com/aungaung101025-ux/adupayment/internal/report"
)

// ReportData is an assembled report over a resolved date range.
type ReportData struct {
	Start        time.Time            `json:"start"`
	End          time.Time            `json:"end"`
	TotalIncome  int64                `json:"total_income"`
	TotalExpense int64                `json:"total_expense"`
	Balance      int64                `json:"balance"`
	Transactions []models.Transaction `json:"transactions"`
}

// reportService assembles period totals and renders export documents.
type reportService struct {
	db                 *gorm.DB
	transactionService TransactionServicer
	now                func() time.Time
}

// NewReportService creates a new ReportServicer.
func NewReportService(db *gorm.DB, transactionService TransactionServicer) ReportServicer {
	return &reportService{
		db:                 db,
		transactionService: transactionService,
		now:                time.Now,
	}
}

// Summary returns income, expense and net balance for the current calendar
// month.
func (s *reportService) Summary(userID int64) (*MonthlySummary, error) {
	now := s.now()
	start, end := monthWindow(now)

	summary := &MonthlySummary{Start: start, End: end}
	for _, txType := range []models.TransactionType{models.TransactionTypeIncome, models.TransactionTypeExpense} {
		var total int64
		err := s.db.Model(&models.Transaction{}).
			Where("user_id = ? AND type = ? AND date >= ? AND date <= ?", userID, txType, start, end).
			Select("COALESCE(SUM(amount), 0)").
			Scan(&total).Error
		if err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if txType == models.TransactionTypeIncome {
			summary.TotalIncome = total
		} else {
			summary.TotalExpense = total
		}
	}
	summary.Balance = summary.TotalIncome - summary.TotalExpense
	return summary, nil
}

// AssembleReport gathers the transactions in range and computes totals. The
// range follows the same dual-mode contract as transaction queries.
func (s *reportService) AssembleReport(userID int64, start, end *time.Time) (*ReportData, error) {
	transactions, err := s.transactionService.GetTransactions(userID, start, end)
	if err != nil {
		return nil, err
	}

	data := &ReportData{Transactions: transactions}

	from, to := rangeBounds(start, end)
	switch {
	case from != nil:
		data.Start = *from
		data.End = *to
	case len(transactions) > 0:
		data.Start = transactions[0].Date
		data.End = transactions[len(transactions)-1].Date
	}

	for _, tx := range transactions {
		if tx.Type == models.TransactionTypeIncome {
			data.TotalIncome += tx.Amount
		} else {
			data.TotalExpense += tx.Amount
		}
	}
	data.Balance = data.TotalIncome - data.TotalExpense
	return data, nil
}

// Export renders the report in the requested format. An empty range yields
// ErrNoReportData rather than an empty document.
func (s *reportService) Export(userID int64, title string, start, end *time.Time, format string) (*ExportResult, error) {
	data, err := s.AssembleReport(userID, start, end)
	if err != nil {
		return nil, err
	}
	if len(data.Transactions) == 0 {
		return nil, apperrors.ErrNoReportData
	}

	if title == "" {
		title = "Financial Report"
	}

	doc := &report.Document{
		Title:        title,
		Start:        data.Start,
		End:          data.End,
		TotalIncome:  data.TotalIncome,
		TotalExpense: data.TotalExpense,
		Rows:         make([]report.Row, 0, len(data.Transactions)),
	}
	for _, tx := range data.Transactions {
		doc.Rows = append(doc.Rows, report.Row{
			Date:        tx.Date,
			Type:        string(tx.Type),
			Description: tx.Description,
			Category:    tx.Category,
			Amount:      tx.Amount,
		})
	}

	stamp := s.now().Format("20060102")
	switch format {
	case report.FormatExcel:
		payload, err := report.RenderExcel(doc)
		if err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return &ExportResult{
			Filename:    fmt.Sprintf("report_%s.xlsx", stamp),
			ContentType: report.ContentTypeExcel,
			Data:        payload,
		}, nil
	case report.FormatCSV:
		payload, err := report.RenderCSV(doc)
		if err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return &ExportResult{
			Filename:    fmt.Sprintf("report_%s.csv", stamp),
			ContentType: report.ContentTypeCSV,
			Data:        payload,
		}, nil
	default:
		return nil, apperrors.ErrUnknownExportFormat
	}
}
