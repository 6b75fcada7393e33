package report

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
)

// RenderCSV renders the document as UTF-8 CSV. A BOM is prepended so
// spreadsheet applications detect the encoding.
func RenderCSV(doc *Document) ([]byte, error) {
	var buf bytes.Buffer
	buf.Write([]byte{0xEF, 0xBB, 0xBF})

	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"Date", "Type", "Description", "Category", "Amount"}); err != nil {
		return nil, fmt.Errorf("failed to write csv header: %w", err)
	}
	for _, row := range doc.Rows {
		record := []string{
			row.Date.Format(dateLayout),
			row.Type,
			row.Description,
			row.Category,
			strconv.FormatInt(row.Amount, 10),
		}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write csv row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush csv: %w", err)
	}
	return buf.Bytes(), nil
}
