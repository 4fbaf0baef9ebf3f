package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/spark-api/internal/models"
)

func TestLoadStoreEmbeddedSeed(t *testing.T) {
	store, err := LoadStore("")
	require.NoError(t, err)
	assert.Equal(t, 104, store.Len())

	p, ok := store.Get(1)
	require.True(t, ok)
	assert.Equal(t, "MIT Launch Entrepreneurship", p.Title)

	_, ok = store.Get(-1)
	assert.False(t, ok)
}

func TestStoreAllReturnsCopy(t *testing.T) {
	store, err := NewStore(sampleCatalog())
	require.NoError(t, err)

	all := store.All()
	all[0].Title = "changed"
	all[0].Fields[0] = "changed"

	p, _ := store.Get(1)
	assert.Equal(t, "Robotics Camp", p.Title)
	assert.Equal(t, []string{"Engineering"}, p.Fields)
	assert.Equal(t, []int{1, 2, 3, 4}, ids(store.All()))
}

func TestSeedTennesseeIncludesNationalPrograms(t *testing.T) {
	store, err := LoadStore("")
	require.NoError(t, err)

	got := Filter(store.All(), models.NewCatalogFilter("Tennessee", "All", "All", "All", ""))
	states := map[string]int{}
	for _, p := range got {
		states[p.State]++
	}
	assert.Equal(t, map[string]int{"Tennessee": 12, models.AllStates: 45}, states)
}

func TestSeedGradeExclusion(t *testing.T) {
	store, err := LoadStore("")
	require.NoError(t, err)

	nine := ids(Filter(store.All(), models.NewCatalogFilter("", "", "9", "", "")))
	eleven := ids(Filter(store.All(), models.NewCatalogFilter("", "", "11", "", "")))
	assert.NotContains(t, nine, 1)
	assert.Contains(t, eleven, 1)
}

func TestSeedFreeTextCoding(t *testing.T) {
	store, err := LoadStore("")
	require.NoError(t, err)

	got := ids(Filter(store.All(), models.CatalogFilter{FreeText: "coding"}))
	assert.Equal(t, []int{2, 54, 86, 93, 99}, got)
}

func TestStoreStateCounts(t *testing.T) {
	store, err := NewStore(sampleCatalog())
	require.NoError(t, err)

	counts := store.StateCounts()
	require.Len(t, counts, 50)
	byState := map[string]int{}
	for _, c := range counts {
		byState[c.State] = c.Count
	}
	assert.Equal(t, 2, byState["Massachusetts"])
	assert.Equal(t, 2, byState["California"])
	assert.Equal(t, 1, byState["Wyoming"])
}

func TestValidateReportsEveryViolation(t *testing.T) {
	programs := []models.Program{
		{ID: 1, Title: "A", State: "Atlantis", GradeLevel: []int{8}, Fields: []string{"X"}, Deadline: "2025-01-01"},
		{ID: 1, Title: "B", State: "Ohio", Category: "Retreat", Fields: nil, Deadline: "soon"},
	}
	err := Validate(programs)
	require.Error(t, err)

	msg := err.Error()
	for _, want := range []string{"unknown state", "outside 9-12", "duplicate id", "unknown category", "no grade levels", "no fields", "bad deadline"} {
		assert.Contains(t, msg, want)
	}

	_, err = NewStore(programs)
	assert.Error(t, err)
}

func TestLoadStoreFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "programs.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"id":7,"title":"T","state":"Ohio","grade_level":[9],"fields":["Education"],"deadline":"2025-02-02"}]`), 0o600))

	store, err := LoadStore(path)
	require.NoError(t, err)
	assert.Equal(t, 1, store.Len())

	require.NoError(t, os.WriteFile(path, []byte(`{`), 0o600))
	_, err = LoadStore(path)
	assert.Error(t, err)

	_, err = LoadStore(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)
}
