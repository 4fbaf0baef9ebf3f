package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultKeywordTables(t *testing.T) {
	tables, err := DefaultKeywordTables()
	require.NoError(t, err)
	assert.Len(t, tables.States, 50)
	assert.Len(t, tables.Fields, 15)
	assert.Len(t, tables.Categories, 6)
	assert.Equal(t, "Computer Science & Technology", tables.Fields[0].Name)
	assert.Equal(t, "Summer Program", tables.Categories[0].Name)
}

func TestParseKeywordTablesLowercases(t *testing.T) {
	raw := []byte(`
states: [" Ohio "]
fields:
  - name: Robots
    keywords: [ROBOT]
categories:
  - name: Camp
    keywords: [Camp]
grade_pattern: 'grade (\d+)'
`)
	tables, err := ParseKeywordTables(raw)
	require.NoError(t, err)
	assert.Equal(t, []string{"ohio"}, tables.States)
	assert.Equal(t, []string{"robot"}, tables.Fields[0].Keywords)
	assert.Equal(t, "Robots", tables.Fields[0].Name)
}

func TestParseKeywordTablesAggregatesErrors(t *testing.T) {
	raw := []byte(`
states: []
fields:
  - name: A
    keywords: []
  - name: A
    keywords: [x, ""]
categories:
  - name: ""
    keywords: [y]
grade_pattern: '('
`)
	_, err := ParseKeywordTables(raw)
	require.Error(t, err)
	msg := err.Error()
	for _, want := range []string{"states: table is empty", "no keywords", "duplicate name", "keyword 1 is empty", "categories[0]: empty name", "grade_pattern"} {
		assert.Contains(t, msg, want)
	}
}

func TestLoadKeywordTables(t *testing.T) {
	tables, err := LoadKeywordTables("")
	require.NoError(t, err)
	assert.NotEmpty(t, tables.States)

	path := filepath.Join(t.TempDir(), "keywords.yaml")
	require.NoError(t, os.WriteFile(path, []byte("states: [\n"), 0o600))
	_, err = LoadKeywordTables(path)
	assert.Error(t, err)

	_, err = LoadKeywordTables(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
