package model

import "time"

// Session is one ingested workbook: the normalized lectures in original row
// order, the derived aggregate collections, and the row errors kept for
// caller inspection. The session store owns this data exclusively.
type Session struct {
	SessionID   string       `json:"session_id"`
	Lectures    []Lecture    `json:"lectures"`
	Departments []Department `json:"departments"`
	Groups      []Group      `json:"groups"`
	Subgroups   []Subgroup   `json:"subgroups"`
	RowErrors   []RowError   `json:"row_errors"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// Clone returns a deep copy. The session store hands out clones so callers
// can never mutate stored state except through store operations.
func (s *Session) Clone() *Session {
	out := *s
	out.Lectures = append([]Lecture(nil), s.Lectures...)
	out.Departments = append([]Department(nil), s.Departments...)
	out.Groups = append([]Group(nil), s.Groups...)
	for i := range out.Groups {
		out.Groups[i].SubGroups = append([]string(nil), s.Groups[i].SubGroups...)
	}
	out.Subgroups = append([]Subgroup(nil), s.Subgroups...)
	out.RowErrors = append([]RowError(nil), s.RowErrors...)
	return &out
}

// LectureIndex returns the position of the lecture with the given id,
// or -1 when absent.
func (s *Session) LectureIndex(lectureID string) int {
	for i := range s.Lectures {
		if s.Lectures[i].LectureID == lectureID {
			return i
		}
	}
	return -1
}
