package model

// Aggregates are derived from the current lecture set of a session and are
// never written directly; any change to the lectures recomputes all three
// collections from scratch.

// Department groups lectures by their exact department code.
type Department struct {
	Code         string `json:"code"`
	Name         string `json:"name"` // display name; falls back to Code
	LectureCount int    `json:"lecture_count"`
}

// Group is keyed by the token before the first '.' of a lecture's group
// value ("1" for "1.2"). Every lecture belongs to exactly one group.
type Group struct {
	GroupID      string   `json:"group_id"`
	SubGroups    []string `json:"sub_groups"` // distinct full group strings under this key
	LectureCount int      `json:"lecture_count"`
}

// Subgroup is a full group string containing a separator ("1.2").
type Subgroup struct {
	SubgroupID   string `json:"subgroup_id"`
	ParentGroup  string `json:"parent_group"`
	LectureCount int    `json:"lecture_count"`
}
