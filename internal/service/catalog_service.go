package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/spark-api/internal/catalog"
	"github.com/noah-isme/spark-api/internal/dto"
	"github.com/noah-isme/spark-api/internal/models"
	appErrors "github.com/noah-isme/spark-api/pkg/errors"
	"github.com/noah-isme/spark-api/pkg/export"
)

// ProgramCatalog is the read-only program source shared by catalog and bookmark use cases.
type ProgramCatalog interface {
	All() []models.Program
	Get(id int) (models.Program, bool)
	Len() int
	StateCounts() []catalog.StateCount
}

type bookmarkIDLister interface {
	ListIDs(ctx context.Context, userID string) ([]int, error)
}

// CatalogService serves catalog listings, smart search and exports.
type CatalogService struct {
	catalog   ProgramCatalog
	parser    catalog.QueryParser
	bookmarks bookmarkIDLister
	metrics   *MetricsService
	logger    *zap.Logger
	now       func() time.Time
}

// NewCatalogService constructs a CatalogService. bookmarks may be nil, in which case no listing carries bookmark flags.
func NewCatalogService(programs ProgramCatalog, parser catalog.QueryParser, bookmarks bookmarkIDLister, metrics *MetricsService, logger *zap.Logger) *CatalogService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CatalogService{
		catalog:   programs,
		parser:    parser,
		bookmarks: bookmarks,
		metrics:   metrics,
		logger:    logger,
		now:       time.Now,
	}
}

// List filters the catalog. When userID is set the cards carry bookmark flags; a failing
// bookmark store degrades the listing to no flags instead of failing it.
func (s *CatalogService) List(ctx context.Context, filter models.CatalogFilter, userID string) dto.ProgramList {
	programs := catalog.Filter(s.catalog.All(), filter)
	s.metrics.ObserveCatalogQuery(QueryKindList, len(programs))

	cards, available := s.decorate(ctx, programs, userID)
	return dto.ProgramList{
		Programs:           cards,
		Filter:             filter,
		Count:              len(cards),
		BookmarksAvailable: available,
	}
}

// Get returns a single program card.
func (s *CatalogService) Get(ctx context.Context, id int, userID string) (*dto.ProgramCard, error) {
	program, ok := s.catalog.Get(id)
	if !ok {
		return nil, appErrors.ErrNotFound.WithMessage("program not found")
	}
	cards, _ := s.decorate(ctx, []models.Program{program}, userID)
	return &cards[0], nil
}

// Parse runs the smart-search parser only.
func (s *CatalogService) Parse(query string) models.ParsedQuery {
	parsed := s.parser.Parse(query)
	s.metrics.ObserveParsedQuery(parsed)
	return parsed
}

// SmartSearch parses query, merges it over base and evaluates the resulting filter.
func (s *CatalogService) SmartSearch(ctx context.Context, query string, base models.CatalogFilter, userID string) dto.SmartSearchResult {
	parsed := s.Parse(query)
	filter := catalog.ApplyParsed(base, parsed)
	programs := catalog.Filter(s.catalog.All(), filter)
	s.metrics.ObserveCatalogQuery(QueryKindSmartSearch, len(programs))

	s.logger.Debug("smart search",
		zap.String("query", query),
		zap.String("state", parsed.State),
		zap.Strings("fields", parsed.Fields),
		zap.String("category", parsed.Category),
		zap.Int("results", len(programs)),
	)

	cards, available := s.decorate(ctx, programs, userID)
	return dto.SmartSearchResult{
		Parsed:             parsed,
		Filter:             filter,
		Programs:           cards,
		Count:              len(cards),
		BookmarksAvailable: available,
	}
}

// StateCounts returns per-state program counts for the map view.
func (s *CatalogService) StateCounts() dto.StateCounts {
	counts := s.catalog.StateCounts()
	return dto.StateCounts{States: counts, Total: s.catalog.Len()}
}

// Options lists the values offered by the filter controls.
func (s *CatalogService) Options() dto.CatalogOptions {
	states := make([]string, 0, len(models.USStates)+1)
	states = append(states, models.AllStates)
	states = append(states, models.USStates...)
	return dto.CatalogOptions{
		States:     states,
		Fields:     append([]string(nil), models.FieldVocabulary...),
		Categories: append([]string(nil), models.Categories...),
		Grades:     append([]int(nil), models.Grades...),
	}
}

// Export renders the filtered catalog in the requested format.
func (s *CatalogService) Export(ctx context.Context, filter models.CatalogFilter, format string) (*dto.ExportFile, error) {
	exporter, err := export.ForFormat(format)
	if err != nil {
		if errors.Is(err, export.ErrUnknownFormat) {
			return nil, appErrors.ErrUnsupportedFormat.Wrap(err, "format must be csv, pdf or xlsx")
		}
		return nil, err
	}

	programs := catalog.Filter(s.catalog.All(), filter)
	s.metrics.ObserveCatalogQuery(QueryKindExport, len(programs))

	body, err := exporter.Render(programDataset(programs))
	if err != nil {
		return nil, appErrors.ErrInternal.Wrap(err, "failed to render export")
	}

	filename := fmt.Sprintf("spark-programs-%s.%s", s.now().UTC().Format("20060102"), exporter.Extension())
	return &dto.ExportFile{Filename: filename, ContentType: exporter.ContentType(), Body: body}, nil
}

func (s *CatalogService) decorate(ctx context.Context, programs []models.Program, userID string) ([]dto.ProgramCard, bool) {
	cards := make([]dto.ProgramCard, len(programs))
	for i, p := range programs {
		cards[i] = dto.ProgramCard{Program: p, IsFree: p.IsFree()}
	}
	if userID == "" || s.bookmarks == nil {
		return cards, false
	}

	ids, err := s.bookmarks.ListIDs(ctx, userID)
	if err != nil {
		s.metrics.RecordBookmarkError()
		s.logger.Warn("bookmark store unavailable, listing without bookmark flags", zap.String("user_id", userID), zap.Error(err))
		return cards, false
	}

	marked := make(map[int]struct{}, len(ids))
	for _, id := range ids {
		marked[id] = struct{}{}
	}
	for i := range cards {
		_, ok := marked[cards[i].ID]
		flag := ok
		cards[i].Bookmarked = &flag
	}
	return cards, true
}

var exportHeaders = []string{"ID", "Title", "Category", "State", "Grades", "Fields", "Deadline", "Cost", "Duration", "Website"}

func programDataset(programs []models.Program) export.Dataset {
	rows := make([]map[string]string, 0, len(programs))
	for _, p := range programs {
		grades := make([]string, len(p.GradeLevel))
		for i, g := range p.GradeLevel {
			grades[i] = strconv.Itoa(g)
		}
		rows = append(rows, map[string]string{
			"ID":       strconv.Itoa(p.ID),
			"Title":    p.Title,
			"Category": p.Category,
			"State":    p.State,
			"Grades":   strings.Join(grades, ", "),
			"Fields":   strings.Join(p.Fields, "; "),
			"Deadline": p.Deadline,
			"Cost":     p.Cost,
			"Duration": p.Duration,
			"Website":  p.Website,
		})
	}
	return export.Dataset{Title: "Spark Programs", Headers: exportHeaders, Rows: rows}
}
