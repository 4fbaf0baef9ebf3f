package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/spark-api/internal/dto"
	"github.com/noah-isme/spark-api/internal/middleware"
	"github.com/noah-isme/spark-api/internal/models"
	"github.com/noah-isme/spark-api/pkg/response"
)

type catalogService interface {
	List(ctx context.Context, filter models.CatalogFilter, userID string) dto.ProgramList
	Get(ctx context.Context, id int, userID string) (*dto.ProgramCard, error)
	Parse(query string) models.ParsedQuery
	SmartSearch(ctx context.Context, query string, base models.CatalogFilter, userID string) dto.SmartSearchResult
	StateCounts() dto.StateCounts
	Options() dto.CatalogOptions
	Export(ctx context.Context, filter models.CatalogFilter, format string) (*dto.ExportFile, error)
}

// CatalogHandler exposes the program directory.
type CatalogHandler struct {
	service catalogService
}

// NewCatalogHandler constructs a catalog handler.
func NewCatalogHandler(svc catalogService) *CatalogHandler {
	return &CatalogHandler{service: svc}
}

// List godoc
// @Summary List programs
// @Description Filter the catalog by state, field, grade, category and free text. A bearer token adds bookmark flags.
// @Tags Programs
// @Produce json
// @Param state query string false "State name, All States or All"
// @Param field query string false "Field tag"
// @Param grade query string false "Grade 9-12 or All"
// @Param category query string false "Category"
// @Param search query string false "Free text matched against title and description"
// @Success 200 {object} response.Envelope
// @Router /programs [get]
func (h *CatalogHandler) List(c *gin.Context) {
	userID := middleware.CurrentUserID(c)
	result := h.service.List(c.Request.Context(), filterFromQuery(c), userID)
	response.JSON(c, http.StatusOK, result.Programs, listMeta(result.Count, result.Filter, userID, result.BookmarksAvailable))
}

// Get godoc
// @Summary Get program
// @Tags Programs
// @Produce json
// @Param id path int true "Program ID"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /programs/{id} [get]
func (h *CatalogHandler) Get(c *gin.Context) {
	id, err := programIDParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	card, err := h.service.Get(c.Request.Context(), id, middleware.CurrentUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, card, nil)
}

// SmartSearch godoc
// @Summary Smart search
// @Description Detect state, fields, category and grade in a natural-language query and apply them over the filter params.
// @Tags Programs
// @Produce json
// @Param q query string true "Query text"
// @Param state query string false "Base state"
// @Param field query string false "Base field"
// @Param grade query string false "Base grade"
// @Param category query string false "Base category"
// @Param search query string false "Base free text"
// @Success 200 {object} response.Envelope
// @Router /programs/smart-search [get]
func (h *CatalogHandler) SmartSearch(c *gin.Context) {
	userID := middleware.CurrentUserID(c)
	result := h.service.SmartSearch(c.Request.Context(), c.Query("q"), filterFromQuery(c), userID)
	response.JSON(c, http.StatusOK, result, listMeta(result.Count, result.Filter, userID, result.BookmarksAvailable))
}

// Parse godoc
// @Summary Parse a smart-search query
// @Tags Programs
// @Produce json
// @Param q query string true "Query text"
// @Success 200 {object} response.Envelope
// @Router /programs/parse [get]
func (h *CatalogHandler) Parse(c *gin.Context) {
	parsed := h.service.Parse(c.Query("q"))
	response.JSON(c, http.StatusOK, parsed, map[string]interface{}{"has_filters": parsed.HasFilters()})
}

// States godoc
// @Summary Program counts per state
// @Tags Programs
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /programs/states [get]
func (h *CatalogHandler) States(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.service.StateCounts(), nil)
}

// Options godoc
// @Summary Filter and form options
// @Tags Programs
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /programs/options [get]
func (h *CatalogHandler) Options(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.service.Options(), nil)
}

// Export godoc
// @Summary Export programs
// @Description Download the filtered catalog as csv, pdf or xlsx.
// @Tags Programs
// @Produce octet-stream
// @Param format query string false "csv (default), pdf or xlsx"
// @Param state query string false "State"
// @Param field query string false "Field"
// @Param grade query string false "Grade"
// @Param category query string false "Category"
// @Param search query string false "Free text"
// @Success 200 {file} file
// @Failure 400 {object} response.Envelope
// @Router /programs/export [get]
func (h *CatalogHandler) Export(c *gin.Context) {
	file, err := h.service.Export(c.Request.Context(), filterFromQuery(c), c.Query("format"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Attachment(c, file.Filename, file.ContentType, file.Body)
}

func listMeta(count int, filter models.CatalogFilter, userID string, bookmarksAvailable bool) map[string]interface{} {
	meta := map[string]interface{}{
		"count":  count,
		"filter": filter,
	}
	if userID != "" {
		meta["bookmarks_available"] = bookmarksAvailable
	}
	return meta
}
