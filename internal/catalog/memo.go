package catalog

import (
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/noah-isme/spark-api/internal/models"
)

const defaultMemoSize = 512

// MemoParser caches parse results per exact input. Results are identical to the wrapped parser.
type MemoParser struct {
	inner QueryParser
	cache *lru.Cache[string, models.ParsedQuery]
}

// NewMemoParser wraps inner with a bounded LRU of size entries.
func NewMemoParser(inner QueryParser, size int) (*MemoParser, error) {
	if size <= 0 {
		size = defaultMemoSize
	}
	cache, err := lru.New[string, models.ParsedQuery](size)
	if err != nil {
		return nil, err
	}
	return &MemoParser{inner: inner, cache: cache}, nil
}

// Parse returns the cached result for text, computing it on first use.
func (m *MemoParser) Parse(text string) models.ParsedQuery {
	if cached, ok := m.cache.Get(text); ok {
		return clone(cached)
	}
	parsed := m.inner.Parse(text)
	m.cache.Add(text, clone(parsed))
	return parsed
}

// Len reports the number of memoised inputs.
func (m *MemoParser) Len() int {
	return m.cache.Len()
}

// clone detaches the slice and pointer so callers cannot mutate cached entries.
func clone(q models.ParsedQuery) models.ParsedQuery {
	out := q
	out.Fields = append([]string{}, q.Fields...)
	if q.Grade != nil {
		g := *q.Grade
		out.Grade = &g
	}
	return out
}
