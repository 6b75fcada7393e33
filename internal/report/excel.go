package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

const dateLayout = "2006-01-02"

// RenderExcel renders the document as an .xlsx workbook with a summary block
// followed by one row per transaction.
func RenderExcel(doc *Document) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Report"
	f.SetSheetName("Sheet1", sheet)

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	f.SetCellValue(sheet, "A1", doc.Title)
	f.SetCellStyle(sheet, "A1", "A1", bold)
	f.SetCellValue(sheet, "A2", fmt.Sprintf("Period: %s - %s",
		doc.Start.Format(dateLayout), doc.End.Format(dateLayout)))
	f.SetCellValue(sheet, "A3", "Total Income")
	f.SetCellValue(sheet, "B3", doc.TotalIncome)
	f.SetCellValue(sheet, "A4", "Total Expense")
	f.SetCellValue(sheet, "B4", doc.TotalExpense)
	f.SetCellValue(sheet, "A5", "Balance")
	f.SetCellValue(sheet, "B5", doc.Balance())

	headers := []string{"Date", "Type", "Description", "Category", "Amount"}
	const headerRow = 7
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, headerRow)
		if err != nil {
			return nil, fmt.Errorf("failed to build cell name: %w", err)
		}
		f.SetCellValue(sheet, cell, h)
		f.SetCellStyle(sheet, cell, cell, bold)
	}

	for i, row := range doc.Rows {
		r := headerRow + 1 + i
		f.SetCellValue(sheet, fmt.Sprintf("A%d", r), row.Date.Format(dateLayout))
		f.SetCellValue(sheet, fmt.Sprintf("B%d", r), row.Type)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", r), row.Description)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", r), row.Category)
		f.SetCellValue(sheet, fmt.Sprintf("E%d", r), row.Amount)
	}

	f.SetColWidth(sheet, "A", "A", 14)
	f.SetColWidth(sheet, "C", "D", 24)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
