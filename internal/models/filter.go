package models

import (
	"strconv"
	"strings"
)

// CatalogFilter is the immutable set of constraints applied to the catalog.
// Empty strings and a nil Grade mean "no constraint" on that axis.
type CatalogFilter struct {
	State    string `json:"state,omitempty"`
	Field    string `json:"field,omitempty"`
	Grade    *int   `json:"grade,omitempty"`
	Category string `json:"category,omitempty"`
	FreeText string `json:"search,omitempty"`
}

// NewCatalogFilter normalises raw UI control values into a CatalogFilter.
// "", "All" and missing values all collapse to unset; a non-numeric grade is ignored.
// "All States" is kept as a literal state value.
func NewCatalogFilter(state, field, grade, category, search string) CatalogFilter {
	f := CatalogFilter{
		State:    normaliseChoice(state),
		Field:    normaliseChoice(field),
		Category: normaliseChoice(category),
		FreeText: search,
	}
	if g, ok := ParseGrade(grade); ok {
		f.Grade = &g
	}
	return f
}

// ParseGrade converts a grade selector value. "All", "" and garbage are not grades.
func ParseGrade(raw string) (int, bool) {
	raw = strings.TrimSpace(raw)
	if normaliseChoice(raw) == "" {
		return 0, false
	}
	g, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return g, true
}

// IsEmpty reports whether no axis is constrained.
func (f CatalogFilter) IsEmpty() bool {
	return f.State == "" && f.Field == "" && f.Grade == nil && f.Category == "" && f.FreeText == ""
}

// WithGrade returns a copy constrained to grade.
func (f CatalogFilter) WithGrade(grade int) CatalogFilter {
	f.Grade = &grade
	return f
}

func normaliseChoice(raw string) string {
	if strings.EqualFold(strings.TrimSpace(raw), "all") {
		return ""
	}
	return raw
}

// ParsedQuery is the structured result of a smart search.
type ParsedQuery struct {
	State      string   `json:"state,omitempty"`
	Fields     []string `json:"fields"`
	Category   string   `json:"category,omitempty"`
	Grade      *int     `json:"grade,omitempty"`
	SearchTerm string   `json:"search_term"`
}

// HasFilters reports whether anything structured was detected.
func (q ParsedQuery) HasFilters() bool {
	return q.State != "" || len(q.Fields) > 0 || q.Category != "" || q.Grade != nil
}
