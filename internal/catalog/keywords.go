package catalog

import (
	_ "embed"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/hashicorp/go-multierror"
	"gopkg.in/yaml.v3"
)

//go:embed data/keywords.yaml
var defaultKeywords []byte

// KeywordGroup maps a canonical name to the trigger keywords that select it.
type KeywordGroup struct {
	Name     string   `yaml:"name"`
	Keywords []string `yaml:"keywords"`
}

// KeywordTables drives the smart-search parser. Slices are ordered; order is precedence.
type KeywordTables struct {
	States       []string       `yaml:"states"`
	Fields       []KeywordGroup `yaml:"fields"`
	Categories   []KeywordGroup `yaml:"categories"`
	GradePattern string         `yaml:"grade_pattern"`
}

// DefaultKeywordTables returns the embedded tables.
func DefaultKeywordTables() (KeywordTables, error) {
	return ParseKeywordTables(defaultKeywords)
}

// LoadKeywordTables reads tables from path, or the embedded defaults when path is empty.
func LoadKeywordTables(path string) (KeywordTables, error) {
	if path == "" {
		return DefaultKeywordTables()
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return KeywordTables{}, fmt.Errorf("read keyword tables: %w", err)
	}
	return ParseKeywordTables(raw)
}

// ParseKeywordTables decodes and validates YAML keyword tables. Keywords are lowercased
// because matching runs against lowercased input.
func ParseKeywordTables(raw []byte) (KeywordTables, error) {
	var tables KeywordTables
	if err := yaml.Unmarshal(raw, &tables); err != nil {
		return KeywordTables{}, fmt.Errorf("decode keyword tables: %w", err)
	}

	for i, s := range tables.States {
		tables.States[i] = strings.ToLower(strings.TrimSpace(s))
	}
	lowerGroups(tables.Fields)
	lowerGroups(tables.Categories)

	if err := tables.Validate(); err != nil {
		return KeywordTables{}, err
	}
	return tables, nil
}

// Validate reports every structural problem in the tables at once.
func (t KeywordTables) Validate() error {
	var result *multierror.Error
	if len(t.States) == 0 {
		result = multierror.Append(result, fmt.Errorf("states: table is empty"))
	}
	for i, s := range t.States {
		if s == "" {
			result = multierror.Append(result, fmt.Errorf("states[%d]: empty name", i))
		}
	}
	result = validateGroups(result, "fields", t.Fields)
	result = validateGroups(result, "categories", t.Categories)
	if t.GradePattern == "" {
		result = multierror.Append(result, fmt.Errorf("grade_pattern: missing"))
	} else if _, err := regexp.Compile(t.GradePattern); err != nil {
		result = multierror.Append(result, fmt.Errorf("grade_pattern: %w", err))
	}
	return result.ErrorOrNil()
}

func validateGroups(result *multierror.Error, table string, groups []KeywordGroup) *multierror.Error {
	seen := make(map[string]struct{}, len(groups))
	for i, g := range groups {
		if strings.TrimSpace(g.Name) == "" {
			result = multierror.Append(result, fmt.Errorf("%s[%d]: empty name", table, i))
		}
		if _, dup := seen[g.Name]; dup {
			result = multierror.Append(result, fmt.Errorf("%s[%d]: duplicate name %q", table, i, g.Name))
		}
		seen[g.Name] = struct{}{}
		if len(g.Keywords) == 0 {
			result = multierror.Append(result, fmt.Errorf("%s[%d] %q: no keywords", table, i, g.Name))
		}
		for j, kw := range g.Keywords {
			if kw == "" {
				result = multierror.Append(result, fmt.Errorf("%s[%d] %q: keyword %d is empty", table, i, g.Name, j))
			}
		}
	}
	return result
}

func lowerGroups(groups []KeywordGroup) {
	for i := range groups {
		for j, kw := range groups[i].Keywords {
			groups[i].Keywords[j] = strings.ToLower(strings.TrimSpace(kw))
		}
	}
}
