package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/charlesng35/catalog/internal/monitoring"
	"github.com/charlesng35/catalog/pkg/response"
)

// HealthHandler serves liveness and readiness probes.
type HealthHandler struct {
	manager *monitoring.HealthManager
}

// NewHealthHandler returns nil when no health manager is configured.
func NewHealthHandler(manager *monitoring.HealthManager) *HealthHandler {
	if manager == nil {
		return nil
	}
	return &HealthHandler{manager: manager}
}

type healthPayload struct {
	Status    monitoring.ProbeStatus   `json:"status"`
	Checks    []monitoring.ProbeResult `json:"checks,omitempty"`
	CheckedAt time.Time                `json:"checkedAt"`
}

// Overall handles GET /health and reports the readiness status without per-check detail.
func (h *HealthHandler) Overall(c *gin.Context) {
	report := h.manager.EvaluateReadiness(c.Request.Context())
	writeHealth(c, report, false)
}

// Live handles GET /health/live
func (h *HealthHandler) Live(c *gin.Context) {
	writeHealth(c, h.manager.EvaluateLiveness(c.Request.Context()), true)
}

// Ready handles GET /health/ready
func (h *HealthHandler) Ready(c *gin.Context) {
	writeHealth(c, h.manager.EvaluateReadiness(c.Request.Context()), true)
}

// HealthDisabled answers probe routes when health checks are turned off.
func HealthDisabled(c *gin.Context) {
	response.JSON(c, http.StatusNotFound, response.Failure("Health checks are disabled", nil, nil))
}

func writeHealth(c *gin.Context, report monitoring.HealthReport, detailed bool) {
	payload := healthPayload{Status: report.Status, CheckedAt: time.Now().UTC()}
	if detailed {
		payload.Checks = report.Checks
	}

	if !report.Success {
		response.JSON(c, http.StatusServiceUnavailable, response.Failure("Service is unavailable", payload, nil))
		return
	}
	response.OK(c, response.Success("Service is healthy", payload, nil))
}
