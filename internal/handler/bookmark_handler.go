package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/spark-api/internal/middleware"
	"github.com/noah-isme/spark-api/internal/models"
	appErrors "github.com/noah-isme/spark-api/pkg/errors"
	"github.com/noah-isme/spark-api/pkg/response"
)

type bookmarkService interface {
	Add(ctx context.Context, userID string, programID int) error
	Remove(ctx context.Context, userID string, programID int) error
	IDs(ctx context.Context, userID string) ([]int, error)
	List(ctx context.Context, userID string) ([]models.Program, error)
	Reminders(ctx context.Context, userID string) ([]models.DeadlineReminder, error)
}

// BookmarkHandler exposes the signed-in user's saved programs.
type BookmarkHandler struct {
	service bookmarkService
}

// NewBookmarkHandler constructs a bookmark handler.
func NewBookmarkHandler(svc bookmarkService) *BookmarkHandler {
	return &BookmarkHandler{service: svc}
}

// Add godoc
// @Summary Bookmark a program
// @Tags Bookmarks
// @Produce json
// @Security BearerAuth
// @Param programId path int true "Program ID"
// @Success 204
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /bookmarks/{programId} [post]
func (h *BookmarkHandler) Add(c *gin.Context) {
	h.mutate(c, h.service.Add)
}

// Remove godoc
// @Summary Remove a bookmark
// @Tags Bookmarks
// @Produce json
// @Security BearerAuth
// @Param programId path int true "Program ID"
// @Success 204
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /bookmarks/{programId} [delete]
func (h *BookmarkHandler) Remove(c *gin.Context) {
	h.mutate(c, h.service.Remove)
}

// List godoc
// @Summary List bookmarked programs
// @Tags Bookmarks
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /bookmarks [get]
func (h *BookmarkHandler) List(c *gin.Context) {
	claims := middleware.CurrentClaims(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	programs, err := h.service.List(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, programs, map[string]interface{}{"count": len(programs)})
}

// IDs godoc
// @Summary List bookmarked program ids
// @Tags Bookmarks
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /bookmarks/ids [get]
func (h *BookmarkHandler) IDs(c *gin.Context) {
	claims := middleware.CurrentClaims(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	ids, err := h.service.IDs(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, ids, nil)
}

// Reminders godoc
// @Summary Upcoming deadlines of bookmarked programs
// @Tags Bookmarks
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /bookmarks/reminders [get]
func (h *BookmarkHandler) Reminders(c *gin.Context) {
	claims := middleware.CurrentClaims(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	reminders, err := h.service.Reminders(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, reminders, map[string]interface{}{"count": len(reminders)})
}

func (h *BookmarkHandler) mutate(c *gin.Context, op func(ctx context.Context, userID string, programID int) error) {
	claims := middleware.CurrentClaims(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	programID, err := programIDParam(c, "programId")
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := op(c.Request.Context(), claims.UserID, programID); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
