package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"

	"github.com/hashicorp/go-multierror"

	"github.com/noah-isme/spark-api/internal/models"
)

//go:embed data/programs.json
var defaultPrograms []byte

// Store holds the immutable program catalog.
type Store struct {
	programs []models.Program
	index    map[int]int
}

// NewStore validates programs and builds a store. Every invariant violation is reported.
func NewStore(programs []models.Program) (*Store, error) {
	if err := Validate(programs); err != nil {
		return nil, err
	}
	s := &Store{
		programs: make([]models.Program, len(programs)),
		index:    make(map[int]int, len(programs)),
	}
	for i, p := range programs {
		s.programs[i] = copyProgram(p)
		s.index[p.ID] = i
	}
	return s, nil
}

// LoadStore decodes the catalog from path, or the embedded seed when path is empty.
func LoadStore(path string) (*Store, error) {
	raw := defaultPrograms
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read catalog: %w", err)
		}
		raw = data
	}
	var programs []models.Program
	if err := json.Unmarshal(raw, &programs); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	return NewStore(programs)
}

// All returns the catalog in its original order. The slice is a copy.
func (s *Store) All() []models.Program {
	out := make([]models.Program, len(s.programs))
	for i, p := range s.programs {
		out[i] = copyProgram(p)
	}
	return out
}

// Get looks up a program by id.
func (s *Store) Get(id int) (models.Program, bool) {
	i, ok := s.index[id]
	if !ok {
		return models.Program{}, false
	}
	return copyProgram(s.programs[i]), true
}

// Len returns the number of programs.
func (s *Store) Len() int {
	return len(s.programs)
}

// Validate checks catalog invariants: unique ids, non-empty grades and fields,
// known states, categories and grades, and parseable deadlines.
func Validate(programs []models.Program) error {
	var result *multierror.Error
	seen := make(map[int]struct{}, len(programs))
	for i, p := range programs {
		ref := fmt.Sprintf("program[%d] id=%d", i, p.ID)
		if _, dup := seen[p.ID]; dup {
			result = multierror.Append(result, fmt.Errorf("%s: duplicate id", ref))
		}
		seen[p.ID] = struct{}{}

		if p.Title == "" {
			result = multierror.Append(result, fmt.Errorf("%s: missing title", ref))
		}
		if !p.IsNational() && !models.IsUSState(p.State) {
			result = multierror.Append(result, fmt.Errorf("%s: unknown state %q", ref, p.State))
		}
		if p.Category != "" && !models.IsCategory(p.Category) {
			result = multierror.Append(result, fmt.Errorf("%s: unknown category %q", ref, p.Category))
		}
		if len(p.GradeLevel) == 0 {
			result = multierror.Append(result, fmt.Errorf("%s: no grade levels", ref))
		}
		for _, g := range p.GradeLevel {
			if g < 9 || g > 12 {
				result = multierror.Append(result, fmt.Errorf("%s: grade %d outside 9-12", ref, g))
			}
		}
		if len(p.Fields) == 0 {
			result = multierror.Append(result, fmt.Errorf("%s: no fields", ref))
		}
		if _, err := p.DeadlineDate(); err != nil {
			result = multierror.Append(result, fmt.Errorf("%s: bad deadline %q", ref, p.Deadline))
		}
	}
	return result.ErrorOrNil()
}

func copyProgram(p models.Program) models.Program {
	p.GradeLevel = append([]int(nil), p.GradeLevel...)
	p.Fields = append([]string(nil), p.Fields...)
	return p
}

// StateCount is the number of programs reachable from one state, national programs included.
type StateCount struct {
	State string `json:"state"`
	Count int    `json:"count"`
}

// StateCounts returns one entry per state in alphabetical order.
func (s *Store) StateCounts() []StateCount {
	national := 0
	perState := make(map[string]int)
	for _, p := range s.programs {
		if p.IsNational() {
			national++
			continue
		}
		perState[p.State]++
	}
	out := make([]StateCount, 0, len(models.USStates))
	for _, state := range models.USStates {
		out = append(out, StateCount{State: state, Count: perState[state] + national})
	}
	return out
}
