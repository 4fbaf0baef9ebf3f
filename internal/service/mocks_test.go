package service

import (
	"context"
	"sync"

	"github.com/noah-isme/spark-api/internal/catalog"
	"github.com/noah-isme/spark-api/internal/models"
)

type mockBookmarkRepo struct {
	mu      sync.Mutex
	ids     map[string][]int
	err     error
	added   []int
	removed []int
}

func newMockBookmarkRepo() *mockBookmarkRepo {
	return &mockBookmarkRepo{ids: map[string][]int{}}
}

func (m *mockBookmarkRepo) Add(ctx context.Context, userID string, programID int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.added = append(m.added, programID)
	for _, id := range m.ids[userID] {
		if id == programID {
			return nil
		}
	}
	m.ids[userID] = append(m.ids[userID], programID)
	return nil
}

func (m *mockBookmarkRepo) Remove(ctx context.Context, userID string, programID int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.removed = append(m.removed, programID)
	kept := m.ids[userID][:0]
	for _, id := range m.ids[userID] {
		if id != programID {
			kept = append(kept, id)
		}
	}
	m.ids[userID] = kept
	return nil
}

func (m *mockBookmarkRepo) ListIDs(ctx context.Context, userID string) ([]int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	return append([]int{}, m.ids[userID]...), nil
}

func testPrograms() []models.Program {
	return []models.Program{
		{ID: 1, Title: "Boston Robotics Lab", Category: models.CategorySummerProgram, State: "Massachusetts",
			Description: "Engineering summer lab", GradeLevel: []int{10, 11}, Fields: []string{"Engineering"},
			Deadline: "2025-03-10", Cost: "Free", Duration: "6 weeks", Website: "https://robotics.example"},
		{ID: 2, Title: "National Coding League", Category: models.CategoryCompetition, State: models.AllStates,
			Description: "Online coding contest", GradeLevel: []int{9, 10, 11, 12}, Fields: []string{"Computer Science & Technology", "STEM"},
			Deadline: "2025-03-01", Cost: "$25", Duration: "3 months", Website: "https://coding.example"},
		{ID: 3, Title: "Memphis Health Corps", State: "Tennessee",
			Description: "Hospital volunteering", GradeLevel: []int{11, 12}, Fields: []string{"Healthcare & Medicine"},
			Deadline: "2025-02-20", Cost: "Free", Duration: "Summer", Website: "https://health.example"},
		{ID: 4, Title: "STEM Scholars", Category: models.CategoryAcademicProgram, State: "Massachusetts",
			Description: "Year-round STEM mentoring", GradeLevel: []int{9, 10}, Fields: []string{"STEM"},
			Deadline: "2025-03-04", Cost: "Free", Duration: "1 year", Website: "https://scholars.example"},
	}
}

func newTestStore() *catalog.Store {
	store, err := catalog.NewStore(testPrograms())
	if err != nil {
		panic(err)
	}
	return store
}

func newTestParser() catalog.QueryParser {
	tables, err := catalog.DefaultKeywordTables()
	if err != nil {
		panic(err)
	}
	parser, err := catalog.NewParser(tables)
	if err != nil {
		panic(err)
	}
	return parser
}
