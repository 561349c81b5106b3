package ingest

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
)

// buildWorkbook writes header + rows into an in-memory .xlsx stream.
func buildWorkbook(t *testing.T, header []string, rows [][]string) *bytes.Buffer {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		t.Fatalf("write header: %v", err)
	}
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			t.Fatalf("write row %d: %v", i, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("flush workbook: %v", err)
	}
	return buf
}

func sampleRow() []string {
	// Order matches Columns.
	return []string{
		"Mikroekonomia", "EK", "1", "Bachelor", "1", "A. Hoxha",
		"1.2", "L", "O", "P", "90",
	}
}

func TestReadWorkbook_Success(t *testing.T) {
	buf := buildWorkbook(t, Columns, [][]string{sampleRow(), sampleRow()})

	rows, err := ReadWorkbook(buf, 100)
	if err != nil {
		t.Fatalf("ReadWorkbook should succeed: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0].Index != 0 || rows[1].Index != 1 {
		t.Errorf("row indexes must follow sheet order: %d, %d", rows[0].Index, rows[1].Index)
	}
	if rows[0].Cells[ColName] != "Mikroekonomia" {
		t.Errorf("expected name cell, got %q", rows[0].Cells[ColName])
	}
	if rows[0].Cells[ColDuration] != "90" {
		t.Errorf("expected duration cell, got %q", rows[0].Cells[ColDuration])
	}
}

func TestReadWorkbook_ExtraColumnsIgnored(t *testing.T) {
	header := append([]string{"Unrelated"}, Columns...)
	row := append([]string{"noise"}, sampleRow()...)
	buf := buildWorkbook(t, header, [][]string{row})

	rows, err := ReadWorkbook(buf, 100)
	if err != nil {
		t.Fatalf("extra columns must be ignored: %v", err)
	}
	if rows[0].Cells[ColName] != "Mikroekonomia" {
		t.Errorf("recognized columns must map by header name, got %q", rows[0].Cells[ColName])
	}
	if _, ok := rows[0].Cells["Unrelated"]; ok {
		t.Error("unrecognized columns must not be captured")
	}
}

func TestReadWorkbook_MissingColumns(t *testing.T) {
	header := Columns[:len(Columns)-2] // drop role + duration
	buf := buildWorkbook(t, header, nil)

	_, err := ReadWorkbook(buf, 100)
	var missing *MissingColumnsError
	if !errors.As(err, &missing) {
		t.Fatalf("expected MissingColumnsError, got %v", err)
	}
	if len(missing.Columns) != 2 {
		t.Errorf("expected 2 missing columns, got %v", missing.Columns)
	}
	if !strings.Contains(err.Error(), ColDuration) {
		t.Errorf("error should name the missing column: %v", err)
	}
}

func TestReadWorkbook_SkipsEmptyRows(t *testing.T) {
	empty := make([]string, len(Columns))
	buf := buildWorkbook(t, Columns, [][]string{sampleRow(), empty, sampleRow()})

	rows, err := ReadWorkbook(buf, 100)
	if err != nil {
		t.Fatalf("ReadWorkbook should succeed: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("blank rows must be skipped, got %d rows", len(rows))
	}
	// Indexes still follow sheet positions so lecture ids stay traceable.
	if rows[1].Index != 2 {
		t.Errorf("expected second data row at sheet index 2, got %d", rows[1].Index)
	}
}

func TestReadWorkbook_TooManyRows(t *testing.T) {
	buf := buildWorkbook(t, Columns, [][]string{sampleRow(), sampleRow(), sampleRow()})

	_, err := ReadWorkbook(buf, 2)
	if !errors.Is(err, ErrTooManyRows) {
		t.Fatalf("expected ErrTooManyRows, got %v", err)
	}
}

func TestReadWorkbook_NotAWorkbook(t *testing.T) {
	_, err := ReadWorkbook(strings.NewReader("definitely not xlsx"), 100)
	if err == nil {
		t.Fatal("expected an error for a non-xlsx stream")
	}
}

func TestReadWorkbook_HeaderOnly(t *testing.T) {
	buf := buildWorkbook(t, Columns, nil)

	rows, err := ReadWorkbook(buf, 100)
	if err != nil {
		t.Fatalf("header-only workbook is valid: %v", err)
	}
	if len(rows) != 0 {
		t.Errorf("expected no data rows, got %d", len(rows))
	}
}
