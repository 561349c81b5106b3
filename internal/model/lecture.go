package model

import "fmt"

// ── Lecture enums ──
//
// The workbook carries these as single-letter codes. They are decoded once
// at ingestion and carried as closed types from there on.

// SessionType distinguishes lectures from exercises.
type SessionType string

const (
	SessionLecture  SessionType = "lecture"
	SessionExercise SessionType = "exercise"
)

// ParseSessionType decodes the workbook code (L=Lecture, U=Exercise).
func ParseSessionType(code string) (SessionType, error) {
	switch code {
	case "L":
		return SessionLecture, nil
	case "U":
		return SessionExercise, nil
	default:
		return "", fmt.Errorf("unknown session type code %q (valid: L, U)", code)
	}
}

// Requirement marks a course obligatory or elective.
type Requirement string

const (
	RequirementObligatory Requirement = "obligatory"
	RequirementElective   Requirement = "elective"
)

// ParseRequirement decodes the workbook code (O=Obligatory, Z=Elective).
func ParseRequirement(code string) (Requirement, error) {
	switch code {
	case "O":
		return RequirementObligatory, nil
	case "Z":
		return RequirementElective, nil
	default:
		return "", fmt.Errorf("unknown requirement code %q (valid: O, Z)", code)
	}
}

// InstructorRole identifies who teaches the unit.
type InstructorRole string

const (
	RoleProfessor InstructorRole = "professor"
	RoleAssistant InstructorRole = "assistant"
)

// ParseInstructorRole decodes the workbook code (P=Professor, A=Assistant).
func ParseInstructorRole(code string) (InstructorRole, error) {
	switch code {
	case "P":
		return RoleProfessor, nil
	case "A":
		return RoleAssistant, nil
	default:
		return "", fmt.Errorf("unknown instructor role code %q (valid: P, A)", code)
	}
}

// Lecture is one teaching unit parsed from one workbook row.
// LectureID is assigned at ingestion and immutable; every other field is
// replaceable through a session edit.
type Lecture struct {
	LectureID       string         `json:"lecture_id"`
	Name            string         `json:"name"`
	DepartmentCode  string         `json:"department_code"`
	Semester        string         `json:"semester"`
	Level           string         `json:"level"`
	Year            string         `json:"year"`
	Professor       string         `json:"professor"`
	Group           string         `json:"group"`
	SessionType     SessionType    `json:"session_type"`
	Requirement     Requirement    `json:"requirement"`
	InstructorRole  InstructorRole `json:"instructor_role"`
	DurationMinutes int            `json:"duration_minutes"`
}

// ── Row errors ──

// RowErrorKind classifies why a workbook row failed normalization.
type RowErrorKind string

const (
	RowErrMissingField  RowErrorKind = "missing_field"
	RowErrInvalidEnum   RowErrorKind = "invalid_enum"
	RowErrInvalidNumber RowErrorKind = "invalid_number"
)

// RowError records one failed input row. Row is the 0-based data row index
// (header excluded), matching the lec_<n> ids of its sibling rows.
type RowError struct {
	Row     int          `json:"row"`
	Field   string       `json:"field"`
	Kind    RowErrorKind `json:"kind"`
	Message string       `json:"message"`
}
