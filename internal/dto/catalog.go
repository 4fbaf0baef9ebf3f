package dto

import (
	"github.com/noah-isme/spark-api/internal/catalog"
	"github.com/noah-isme/spark-api/internal/models"
)

// ProgramCard is a catalog entry as rendered on a listing card.
type ProgramCard struct {
	models.Program
	IsFree     bool  `json:"is_free"`
	Bookmarked *bool `json:"bookmarked,omitempty"`
}

// ProgramList is the result of GET /programs.
type ProgramList struct {
	Programs           []ProgramCard        `json:"programs"`
	Filter             models.CatalogFilter `json:"filter"`
	Count              int                  `json:"count"`
	BookmarksAvailable bool                 `json:"-"`
}

// SmartSearchResult pairs the detected chips with the resulting listing.
type SmartSearchResult struct {
	Parsed   models.ParsedQuery   `json:"parsed"`
	Filter   models.CatalogFilter `json:"filter"`
	Programs []ProgramCard        `json:"programs"`
	Count    int                  `json:"count"`

	BookmarksAvailable bool `json:"-"`
}

// CatalogOptions feeds the filter dropdowns and the submission form.
type CatalogOptions struct {
	States     []string `json:"states"`
	Fields     []string `json:"fields"`
	Categories []string `json:"categories"`
	Grades     []int    `json:"grades"`
}

// StateCounts backs the interactive map.
type StateCounts struct {
	States []catalog.StateCount `json:"states"`
	Total  int                  `json:"total"`
}

// ExportFile is a rendered catalog download.
type ExportFile struct {
	Filename    string
	ContentType string
	Body        []byte
}
