package catalog

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/noah-isme/spark-api/internal/models"
)

// QueryParser turns free text into structured filter hints.
type QueryParser interface {
	Parse(text string) models.ParsedQuery
}

type stateKeyword struct {
	match string
	name  string
}

// Parser is the rule-based smart-search parser. It is immutable and safe for concurrent use.
type Parser struct {
	states     []stateKeyword
	fields     []KeywordGroup
	categories []KeywordGroup
	grade      *regexp.Regexp
}

// NewParser builds a parser from validated keyword tables.
func NewParser(tables KeywordTables) (*Parser, error) {
	if err := tables.Validate(); err != nil {
		return nil, err
	}
	grade, err := regexp.Compile(tables.GradePattern)
	if err != nil {
		return nil, fmt.Errorf("compile grade pattern: %w", err)
	}

	states := make([]stateKeyword, 0, len(tables.States))
	for _, s := range tables.States {
		states = append(states, stateKeyword{match: s, name: titleWords(s)})
	}

	return &Parser{
		states:     states,
		fields:     tables.Fields,
		categories: tables.Categories,
		grade:      grade,
	}, nil
}

// Parse extracts state, fields, category and grade from text. Each axis is independent.
// Matching is naive substring containment, so "system" triggers the "stem" keyword.
func (p *Parser) Parse(text string) models.ParsedQuery {
	lower := strings.ToLower(text)
	return models.ParsedQuery{
		State:      p.detectState(lower),
		Fields:     p.detectFields(lower),
		Category:   p.detectCategory(lower),
		Grade:      p.detectGrade(lower),
		SearchTerm: text,
	}
}

func (p *Parser) detectState(lower string) string {
	for _, s := range p.states {
		if strings.Contains(lower, s.match) {
			return s.name
		}
	}
	return ""
}

func (p *Parser) detectFields(lower string) []string {
	fields := []string{}
	for _, g := range p.fields {
		if containsAny(lower, g.Keywords) {
			fields = append(fields, g.Name)
		}
	}
	return fields
}

func (p *Parser) detectCategory(lower string) string {
	for _, g := range p.categories {
		if containsAny(lower, g.Keywords) {
			return g.Name
		}
	}
	return ""
}

func (p *Parser) detectGrade(lower string) *int {
	m := p.grade.FindStringSubmatch(lower)
	if m == nil {
		return nil
	}
	for _, group := range m[1:] {
		if group == "" {
			continue
		}
		g, err := strconv.Atoi(group)
		if errors.Is(err, strconv.ErrRange) {
			// Still a grade, just one no program offers.
			g = math.MaxInt
		} else if err != nil {
			return nil
		}
		return &g
	}
	return nil
}

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

func titleWords(s string) string {
	words := strings.Split(s, " ")
	for i, w := range words {
		if w == "" {
			continue
		}
		r, size := utf8.DecodeRuneInString(w)
		words[i] = string(unicode.ToUpper(r)) + w[size:]
	}
	return strings.Join(words, " ")
}
