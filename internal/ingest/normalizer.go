package ingest

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/GencZhushi/schedule-builder/internal/model"
)

// Recognized workbook column names. The upload format is fixed; renaming a
// column in the source spreadsheet is a caller error, not something the
// parser guesses around.
const (
	ColName           = "Lenda_e_rreg"
	ColDepartment     = "Dep_reale_rreg"
	ColSemester       = "Sem_rreg"
	ColLevel          = "Niveli_rreg"
	ColYear           = "Viti_rreg"
	ColProfessor      = "Prof_rreg"
	ColGroup          = "Grup_rreg"
	ColSessionType    = "Status_lende_rreg"
	ColRequirement    = "Qasja_lende_rreg"
	ColInstructorRole = "Mesimdhe_lende_rreg"
	ColDuration       = "Time_per_lec_rreg"
)

// Columns lists every recognized column; the workbook header must contain
// all of them.
var Columns = []string{
	ColName, ColDepartment, ColSemester, ColLevel, ColYear, ColProfessor,
	ColGroup, ColSessionType, ColRequirement, ColInstructorRole, ColDuration,
}

// RawRow is one data row of the uploaded table: recognized column name to
// trimmed cell text. Index is the 0-based data row position (header
// excluded) and becomes part of the lecture id.
type RawRow struct {
	Index int
	Cells map[string]string
}

// requiredColumns must be non-empty for a row to normalize; the remaining
// columns (semester, level, year, professor) pass through as free-form text.
var requiredColumns = []string{
	ColName, ColDepartment, ColGroup, ColSessionType, ColRequirement,
	ColInstructorRole, ColDuration,
}

// NormalizeRow converts one raw row into a Lecture, or reports every field
// that failed. It is pure and per-row order-independent: a bad row never
// affects its neighbours.
func NormalizeRow(row RawRow) (model.Lecture, []model.RowError) {
	var errs []model.RowError

	cell := func(col string) string {
		return strings.TrimSpace(row.Cells[col])
	}

	for _, col := range requiredColumns {
		if cell(col) == "" {
			errs = append(errs, model.RowError{
				Row:     row.Index,
				Field:   col,
				Kind:    model.RowErrMissingField,
				Message: fmt.Sprintf("column %s is required", col),
			})
		}
	}

	lec := model.Lecture{
		LectureID:      fmt.Sprintf("lec_%d", row.Index),
		Name:           cell(ColName),
		DepartmentCode: cell(ColDepartment),
		Semester:       cell(ColSemester),
		Level:          cell(ColLevel),
		Year:           cell(ColYear),
		Professor:      cell(ColProfessor),
		Group:          cell(ColGroup),
	}

	if code := cell(ColSessionType); code != "" {
		st, err := model.ParseSessionType(code)
		if err != nil {
			errs = append(errs, model.RowError{
				Row: row.Index, Field: ColSessionType,
				Kind: model.RowErrInvalidEnum, Message: err.Error(),
			})
		}
		lec.SessionType = st
	}

	if code := cell(ColRequirement); code != "" {
		req, err := model.ParseRequirement(code)
		if err != nil {
			errs = append(errs, model.RowError{
				Row: row.Index, Field: ColRequirement,
				Kind: model.RowErrInvalidEnum, Message: err.Error(),
			})
		}
		lec.Requirement = req
	}

	if code := cell(ColInstructorRole); code != "" {
		role, err := model.ParseInstructorRole(code)
		if err != nil {
			errs = append(errs, model.RowError{
				Row: row.Index, Field: ColInstructorRole,
				Kind: model.RowErrInvalidEnum, Message: err.Error(),
			})
		}
		lec.InstructorRole = role
	}

	if raw := cell(ColDuration); raw != "" {
		minutes, err := strconv.Atoi(raw)
		if err != nil || minutes <= 0 {
			errs = append(errs, model.RowError{
				Row: row.Index, Field: ColDuration,
				Kind:    model.RowErrInvalidNumber,
				Message: fmt.Sprintf("duration %q is not a positive integer", raw),
			})
		}
		lec.DurationMinutes = minutes
	}

	if len(errs) > 0 {
		return model.Lecture{}, errs
	}
	return lec, nil
}

// NormalizeRows runs NormalizeRow over the whole table. Invalid rows are
// collected as row errors and never abort the batch.
func NormalizeRows(rows []RawRow) ([]model.Lecture, []model.RowError) {
	lectures := make([]model.Lecture, 0, len(rows))
	rowErrors := make([]model.RowError, 0)

	for _, row := range rows {
		lec, errs := NormalizeRow(row)
		if len(errs) > 0 {
			rowErrors = append(rowErrors, errs...)
			continue
		}
		lectures = append(lectures, lec)
	}

	return lectures, rowErrors
}
