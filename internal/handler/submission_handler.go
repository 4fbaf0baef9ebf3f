package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/spark-api/internal/dto"
	"github.com/noah-isme/spark-api/internal/middleware"
	"github.com/noah-isme/spark-api/internal/models"
	appErrors "github.com/noah-isme/spark-api/pkg/errors"
	"github.com/noah-isme/spark-api/pkg/response"
)

type submissionService interface {
	Submit(ctx context.Context, req models.SubmissionRequest, submittedBy string) (*dto.SubmissionAccepted, error)
	List(ctx context.Context, filter models.IntakeFilter) ([]models.ProgramSubmission, error)
}

type contactService interface {
	Send(ctx context.Context, req models.ContactRequest) (*models.ContactMessage, error)
	List(ctx context.Context, filter models.IntakeFilter) ([]models.ContactMessage, error)
}

// IntakeHandler receives program submissions and contact messages and lists them for admins.
type IntakeHandler struct {
	submissions submissionService
	contacts    contactService
}

// NewIntakeHandler constructs an intake handler.
func NewIntakeHandler(submissions submissionService, contacts contactService) *IntakeHandler {
	return &IntakeHandler{submissions: submissions, contacts: contacts}
}

// Submit godoc
// @Summary Submit a program
// @Description Queue a program proposal for manual review. Signed-in submitters are recorded.
// @Tags Intake
// @Accept json
// @Produce json
// @Param payload body models.SubmissionRequest true "Program submission"
// @Success 202 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 503 {object} response.Envelope
// @Router /submissions [post]
func (h *IntakeHandler) Submit(c *gin.Context) {
	var req models.SubmissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.ErrValidation.Wrap(err, "invalid submission payload"))
		return
	}

	accepted, err := h.submissions.Submit(c.Request.Context(), req, middleware.CurrentUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Accepted(c, accepted)
}

// Contact godoc
// @Summary Send a contact message
// @Tags Intake
// @Accept json
// @Produce json
// @Param payload body models.ContactRequest true "Contact message"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /contact [post]
func (h *IntakeHandler) Contact(c *gin.Context) {
	var req models.ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.ErrValidation.Wrap(err, "invalid contact payload"))
		return
	}

	msg, err := h.contacts.Send(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, msg)
}

// ListSubmissions godoc
// @Summary List program submissions
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param status query string false "Status filter"
// @Param limit query int false "Maximum rows"
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /admin/submissions [get]
func (h *IntakeHandler) ListSubmissions(c *gin.Context) {
	items, err := h.submissions.List(c.Request.Context(), intakeFilterFromQuery(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, items, map[string]interface{}{"count": len(items)})
}

// ListContactMessages godoc
// @Summary List contact messages
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param status query string false "Status filter"
// @Param limit query int false "Maximum rows"
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /admin/contact-messages [get]
func (h *IntakeHandler) ListContactMessages(c *gin.Context) {
	items, err := h.contacts.List(c.Request.Context(), intakeFilterFromQuery(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, items, map[string]interface{}{"count": len(items)})
}
