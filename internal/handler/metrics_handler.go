package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/spark-api/internal/service"
	"github.com/noah-isme/spark-api/pkg/response"
)

// MetricsHandler exposes observability endpoints.
type MetricsHandler struct {
	metrics *service.MetricsService
	catalog interface{ Len() int }
}

// NewMetricsHandler constructs a metrics handler. catalog feeds the health payload and may be nil.
func NewMetricsHandler(metrics *service.MetricsService, catalog interface{ Len() int }) *MetricsHandler {
	return &MetricsHandler{metrics: metrics, catalog: catalog}
}

// Prometheus serves the Prometheus metrics endpoint.
func (h *MetricsHandler) Prometheus(c *gin.Context) {
	if h.metrics == nil {
		c.Status(http.StatusServiceUnavailable)
		return
	}
	h.metrics.Handler().ServeHTTP(c.Writer, c.Request)
}

// Snapshot godoc
// @Summary Metrics snapshot
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /admin/metrics [get]
func (h *MetricsHandler) Snapshot(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.metrics.Snapshot(), nil)
}

// Health responds with a generic OK payload for readiness/liveness usage.
func (h *MetricsHandler) Health(c *gin.Context) {
	payload := gin.H{"status": "ok"}
	if h.catalog != nil {
		payload["programs"] = h.catalog.Len()
	}
	c.JSON(http.StatusOK, payload)
}
