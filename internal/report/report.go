// Package report renders transaction reports into downloadable documents.
package report

import "time"

// Supported export formats.
const (
	FormatExcel = "xlsx"
	FormatCSV   = "csv"
)

// Content types for rendered documents.
const (
	ContentTypeExcel = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	ContentTypeCSV   = "text/csv; charset=utf-8"
)

// Row is one transaction line in a report.
type Row struct {
	Date        time.Time
	Type        string
	Description string
	Category    string
	Amount      int64
}

// Document is a fully assembled report ready for rendering.
type Document struct {
	Title        string
	Start        time.Time
	End          time.Time
	TotalIncome  int64
	TotalExpense int64
	Rows         []Row
}

// Balance returns net income over the document's range.
func (d *Document) Balance() int64 {
	return d.TotalIncome - d.TotalExpense
}
