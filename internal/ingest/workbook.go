package ingest

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ── Workbook-level errors ──

var (
	// ErrTooManyRows means the table exceeds the configured row bound.
	ErrTooManyRows = errors.New("workbook has too many data rows")
	// ErrEmptyWorkbook means the first sheet has no header row.
	ErrEmptyWorkbook = errors.New("workbook has no data")
)

// MissingColumnsError reports recognized columns absent from the header.
type MissingColumnsError struct {
	Columns []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("missing columns: %s", strings.Join(e.Columns, ", "))
}

// ReadWorkbook extracts the data rows of the first sheet of an .xlsx
// stream. The header row must contain every recognized column; extra
// columns are ignored. Rows beyond maxRows fail with ErrTooManyRows before
// any normalization work happens.
func ReadWorkbook(r io.Reader, maxRows int) ([]RawRow, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrEmptyWorkbook
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return nil, ErrEmptyWorkbook
	}

	// Map recognized columns to their header positions.
	header := rows[0]
	colIndex := make(map[string]int, len(Columns))
	for i, cell := range header {
		colIndex[strings.TrimSpace(cell)] = i
	}

	var missing []string
	for _, col := range Columns {
		if _, ok := colIndex[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, &MissingColumnsError{Columns: missing}
	}

	out := make([]RawRow, 0, len(rows)-1)
	for i, row := range rows[1:] {
		if rowIsEmpty(row) {
			continue
		}
		if len(out) >= maxRows {
			return nil, ErrTooManyRows
		}

		cells := make(map[string]string, len(Columns))
		for _, col := range Columns {
			idx := colIndex[col]
			if idx < len(row) {
				cells[col] = strings.TrimSpace(row[idx])
			}
		}
		out = append(out, RawRow{Index: i, Cells: cells})
	}

	return out, nil
}

func rowIsEmpty(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
