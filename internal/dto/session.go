package dto

// ── Session module DTOs ──

// UpdateLectureRequest replaces every mutable field of one lecture.
// Callers send the complete record, not a diff; LectureID, when present,
// must match the path id (the id itself is immutable).
type UpdateLectureRequest struct {
	LectureID       string `json:"lecture_id"      binding:"omitempty"`
	Name            string `json:"name"            binding:"required"`
	DepartmentCode  string `json:"department_code" binding:"required"`
	Semester        string `json:"semester"`
	Level           string `json:"level"`
	Year            string `json:"year"`
	Professor       string `json:"professor"`
	Group           string `json:"group"           binding:"required"`
	SessionType     string `json:"session_type"    binding:"required,oneof=lecture exercise"`
	Requirement     string `json:"requirement"     binding:"required,oneof=obligatory elective"`
	InstructorRole  string `json:"instructor_role" binding:"required,oneof=professor assistant"`
	DurationMinutes int    `json:"duration_minutes" binding:"required,gt=0"`
}

// LectureResponse is one normalized lecture.
type LectureResponse struct {
	LectureID       string `json:"lecture_id"`
	Name            string `json:"name"`
	DepartmentCode  string `json:"department_code"`
	Semester        string `json:"semester"`
	Level           string `json:"level"`
	Year            string `json:"year"`
	Professor       string `json:"professor"`
	Group           string `json:"group"`
	SessionType     string `json:"session_type"`
	Requirement     string `json:"requirement"`
	InstructorRole  string `json:"instructor_role"`
	DurationMinutes int    `json:"duration_minutes"`
}

// DepartmentResponse is one derived department aggregate.
type DepartmentResponse struct {
	Code         string `json:"code"`
	Name         string `json:"name"`
	LectureCount int    `json:"lecture_count"`
}

// GroupResponse is one derived group aggregate.
type GroupResponse struct {
	GroupID      string   `json:"group_id"`
	SubGroups    []string `json:"sub_groups"`
	LectureCount int      `json:"lecture_count"`
}

// SubgroupResponse is one derived subgroup aggregate.
type SubgroupResponse struct {
	SubgroupID   string `json:"subgroup_id"`
	ParentGroup  string `json:"parent_group"`
	LectureCount int    `json:"lecture_count"`
}

// RowErrorResponse reports one workbook row that failed normalization.
type RowErrorResponse struct {
	Row     int    `json:"row"`
	Field   string `json:"field"`
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// SessionSummary counts the ingested lectures by category.
type SessionSummary struct {
	TotalLectures   int `json:"total_lectures"`
	LectureCount    int `json:"lecture_count"`
	ExerciseCount   int `json:"exercise_count"`
	ObligatoryCount int `json:"obligatory_count"`
	ElectiveCount   int `json:"elective_count"`
	ProfessorCount  int `json:"professor_count"`
	AssistantCount  int `json:"assistant_count"`
	RowErrorCount   int `json:"row_error_count"`
}

// SessionResponse is the complete view of one ingestion session. Every
// session write returns this whole structure so callers can replace their
// local copy wholesale.
type SessionResponse struct {
	SessionID   string               `json:"session_id"`
	Lectures    []LectureResponse    `json:"lectures"`
	Departments []DepartmentResponse `json:"departments"`
	Groups      []GroupResponse      `json:"groups"`
	Subgroups   []SubgroupResponse   `json:"subgroups"`
	RowErrors   []RowErrorResponse   `json:"row_errors"`
	Summary     SessionSummary       `json:"summary"`
	CreatedAt   string               `json:"created_at"`
	UpdatedAt   string               `json:"updated_at"`
}
