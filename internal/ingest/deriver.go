package ingest

import (
	"sort"
	"strings"

	"github.com/GencZhushi/schedule-builder/internal/model"
)

// DepartmentNameResolver maps a department code to its display name.
// The mapping lives outside the pipeline (configuration, or a future
// registry service); unresolved codes fall back to the code itself.
type DepartmentNameResolver interface {
	Resolve(code string) (string, bool)
}

// StaticNames is a fixed code-to-name map.
type StaticNames map[string]string

// Resolve implements DepartmentNameResolver.
func (m StaticNames) Resolve(code string) (string, bool) {
	name, ok := m[code]
	return name, ok
}

// Aggregates holds the three derived collections, each sorted by key so
// equal lecture sets always derive identical output.
type Aggregates struct {
	Departments []model.Department
	Groups      []model.Group
	Subgroups   []model.Subgroup
}

// Derive recomputes every aggregate from scratch. Full recomputation keeps
// the derivation total and correct after any edit; incremental patching is
// not worth the bug surface at session sizes.
//
// Grouping rules:
//   - departments: exact (trimmed) department code
//   - group key: token before the first '.' of the group value, or the
//     whole value when it has no separator
//   - subgroup: the whole value, registered only when a separator exists
//
// Every lecture counts in exactly one group; a subgroup-qualified lecture
// additionally counts in its subgroup.
func Derive(lectures []model.Lecture, names DepartmentNameResolver) Aggregates {
	departments := make(map[string]*model.Department)
	groups := make(map[string]*model.Group)
	subgroups := make(map[string]*model.Subgroup)
	subsSeen := make(map[string]map[string]bool) // group key → sub ids

	for i := range lectures {
		lec := &lectures[i]

		// ── department ──
		code := strings.TrimSpace(lec.DepartmentCode)
		dept, ok := departments[code]
		if !ok {
			name := code
			if names != nil {
				if resolved, found := names.Resolve(code); found {
					name = resolved
				}
			}
			dept = &model.Department{Code: code, Name: name}
			departments[code] = dept
		}
		dept.LectureCount++

		// ── group / subgroup ──
		full := strings.TrimSpace(lec.Group)
		key, _, hasSub := strings.Cut(full, ".")

		grp, ok := groups[key]
		if !ok {
			grp = &model.Group{GroupID: key}
			groups[key] = grp
			subsSeen[key] = make(map[string]bool)
		}
		grp.LectureCount++

		if hasSub {
			if !subsSeen[key][full] {
				subsSeen[key][full] = true
				grp.SubGroups = append(grp.SubGroups, full)
			}
			sub, ok := subgroups[full]
			if !ok {
				sub = &model.Subgroup{SubgroupID: full, ParentGroup: key}
				subgroups[full] = sub
			}
			sub.LectureCount++
		}
	}

	out := Aggregates{
		Departments: make([]model.Department, 0, len(departments)),
		Groups:      make([]model.Group, 0, len(groups)),
		Subgroups:   make([]model.Subgroup, 0, len(subgroups)),
	}
	for _, d := range departments {
		out.Departments = append(out.Departments, *d)
	}
	for _, g := range groups {
		sort.Strings(g.SubGroups)
		out.Groups = append(out.Groups, *g)
	}
	for _, s := range subgroups {
		out.Subgroups = append(out.Subgroups, *s)
	}

	sort.Slice(out.Departments, func(i, j int) bool { return out.Departments[i].Code < out.Departments[j].Code })
	sort.Slice(out.Groups, func(i, j int) bool { return out.Groups[i].GroupID < out.Groups[j].GroupID })
	sort.Slice(out.Subgroups, func(i, j int) bool { return out.Subgroups[i].SubgroupID < out.Subgroups[j].SubgroupID })

	return out
}
