package catalog

import (
	"strings"

	"github.com/noah-isme/spark-api/internal/models"
)

// Filter returns the programs that satisfy every axis of f, in their original order.
// An unconstrained filter returns a copy of programs.
func Filter(programs []models.Program, f models.CatalogFilter) []models.Program {
	out := make([]models.Program, 0, len(programs))
	needle := strings.ToLower(f.FreeText)
	for _, p := range programs {
		if matches(p, f, needle) {
			out = append(out, p)
		}
	}
	return out
}

// Matches reports whether a single program passes f.
func Matches(p models.Program, f models.CatalogFilter) bool {
	return matches(p, f, strings.ToLower(f.FreeText))
}

func matches(p models.Program, f models.CatalogFilter, needle string) bool {
	return matchesState(p, f.State) &&
		matchesField(p, f.Field) &&
		matchesGrade(p, f.Grade) &&
		matchesSearch(p, needle) &&
		matchesCategory(p, f.Category)
}

func matchesState(p models.Program, state string) bool {
	return state == "" || p.State == state || p.IsNational()
}

func matchesField(p models.Program, field string) bool {
	return field == "" || p.HasField(field)
}

func matchesGrade(p models.Program, grade *int) bool {
	return grade == nil || p.HasGrade(*grade)
}

// matchesCategory never matches uncategorised programs against a set category.
func matchesCategory(p models.Program, category string) bool {
	return category == "" || (p.Category != "" && p.Category == category)
}

func matchesSearch(p models.Program, needle string) bool {
	if needle == "" {
		return true
	}
	return strings.Contains(strings.ToLower(p.Title), needle) ||
		strings.Contains(strings.ToLower(p.Description), needle)
}

// ApplyParsed merges smart-search results into base, the way the search box drives the filter controls:
// detected state, category and grade replace the current selection, only the first detected field is
// applied and the remaining ones are dropped, and the whole typed text becomes the free-text search.
// A detected grade of 0 is treated as not detected.
func ApplyParsed(base models.CatalogFilter, parsed models.ParsedQuery) models.CatalogFilter {
	f := base
	if parsed.State != "" {
		f.State = parsed.State
	}
	if len(parsed.Fields) > 0 {
		f.Field = parsed.Fields[0]
	}
	if parsed.Category != "" {
		f.Category = parsed.Category
	}
	if parsed.Grade != nil && *parsed.Grade != 0 {
		g := *parsed.Grade
		f.Grade = &g
	}
	if parsed.SearchTerm != "" {
		f.FreeText = parsed.SearchTerm
	}
	return f
}
