package catalog

import (
	"math"
	"testing"
	"unicode/utf8"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/spark-api/internal/models"
)

func intPtr(v int) *int { return &v }

func newTestParser(t *testing.T) *Parser {
	t.Helper()
	tables, err := DefaultKeywordTables()
	require.NoError(t, err)
	p, err := NewParser(tables)
	require.NoError(t, err)
	return p
}

func TestParserParse(t *testing.T) {
	p := newTestParser(t)

	cases := []struct {
		name  string
		input string
		want  models.ParsedQuery
	}{
		{
			name:  "state and field",
			input: "engineering programs in Massachusetts",
			want: models.ParsedQuery{
				State:      "Massachusetts",
				Fields:     []string{"Engineering"},
				SearchTerm: "engineering programs in Massachusetts",
			},
		},
		{
			name:  "field category and grade",
			input: "summer STEM opportunities for grade 10 students",
			want: models.ParsedQuery{
				Fields:     []string{"STEM"},
				Category:   models.CategorySummerProgram,
				Grade:      intPtr(10),
				SearchTerm: "summer STEM opportunities for grade 10 students",
			},
		},
		{
			name:  "ordinal grade form",
			input: "11th grade debate",
			want: models.ParsedQuery{
				Fields:     []string{},
				Grade:      intPtr(11),
				SearchTerm: "11th grade debate",
			},
		},
		{
			name:  "multi word state is title cased",
			input: "music camps in NEW YORK",
			want: models.ParsedQuery{
				State:      "New York",
				Fields:     []string{"Performing Arts"},
				SearchTerm: "music camps in NEW YORK",
			},
		},
		{
			name:  "fields accumulate in table order",
			input: "biology and math",
			want: models.ParsedQuery{
				Fields:     []string{"STEM", "Mathematics", "Life Sciences"},
				SearchTerm: "biology and math",
			},
		},
		{
			name:  "first category wins",
			input: "summer research competition",
			want: models.ParsedQuery{
				Fields:     []string{},
				Category:   models.CategorySummerProgram,
				SearchTerm: "summer research competition",
			},
		},
		{
			name:  "nothing detected",
			input: "fun things",
			want: models.ParsedQuery{
				Fields:     []string{},
				SearchTerm: "fun things",
			},
		},
		{
			name:  "empty input",
			input: "",
			want:  models.ParsedQuery{Fields: []string{}},
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			got := p.Parse(tc.input)
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Fatalf("Parse(%q) mismatch (-want +got):\n%s", tc.input, diff)
			}
		})
	}
}

func TestParserSubstringMatchingIsNaive(t *testing.T) {
	p := newTestParser(t)

	got := p.Parse("solar system")
	require.Equal(t, []string{"STEM"}, got.Fields)

	got = p.Parse("physics")
	require.Contains(t, got.Fields, "Computer Science & Technology")
	require.Contains(t, got.Fields, "STEM")
}

func TestParserCategoriesOutsideCatalogAreDetected(t *testing.T) {
	p := newTestParser(t)

	require.Equal(t, "Internship", p.Parse("paid internship").Category)
	require.Equal(t, "Research", p.Parse("research").Category)
}

func TestParserIsDeterministic(t *testing.T) {
	p := newTestParser(t)
	input := "leadership volunteer programs in Tennessee for grade 12"

	first := p.Parse(input)
	for i := 0; i < 10; i++ {
		if diff := cmp.Diff(first, p.Parse(input)); diff != "" {
			t.Fatalf("run %d differs (-first +got):\n%s", i, diff)
		}
	}
}

func TestNewParserRejectsInvalidTables(t *testing.T) {
	_, err := NewParser(KeywordTables{})
	require.Error(t, err)
}

func TestTitleWords(t *testing.T) {
	require.Equal(t, "North Dakota", titleWords("north dakota"))
	require.Equal(t, "Ohio", titleWords("ohio"))
	require.Equal(t, "Ñuble", titleWords("ñuble"))
	require.Equal(t, "Île De France", titleWords("île de france"))
}

func TestParserLocalisedStateNames(t *testing.T) {
	tables, err := DefaultKeywordTables()
	require.NoError(t, err)
	tables.States = []string{"ñuble", "são paulo"}
	p, err := NewParser(tables)
	require.NoError(t, err)

	got := p.Parse("programs in Ñuble").State
	require.Equal(t, "Ñuble", got)
	require.True(t, utf8.ValidString(got))
	require.Equal(t, "São Paulo", p.Parse("camps near SÃO PAULO").State)
}

func TestParserOverflowingGradeMatchesNothing(t *testing.T) {
	p := newTestParser(t)
	store, err := LoadStore("")
	require.NoError(t, err)

	parsed := p.Parse("programs for grade 99999999999999999999")
	require.NotNil(t, parsed.Grade)
	require.Equal(t, math.MaxInt, *parsed.Grade)
	require.Empty(t, Filter(store.All(), ApplyParsed(models.CatalogFilter{}, parsed)))
}
