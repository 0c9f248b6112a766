package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/charlesng35/catalog/internal/app"
	"github.com/charlesng35/catalog/internal/monitoring"
	"github.com/charlesng35/catalog/pkg/response"
)

// MonitoringHandler surfaces cache and maintenance statistics.
type MonitoringHandler struct {
	module *monitoring.Module
	cfg    *app.Config
}

// NewMonitoringHandler constructs a monitoring handler. Returns nil when monitoring is disabled.
func NewMonitoringHandler(module *monitoring.Module, cfg *app.Config) *MonitoringHandler {
	if module == nil || cfg == nil {
		return nil
	}
	if !cfg.Monitoring.Health.Enabled && !cfg.Monitoring.Prometheus.Enabled {
		return nil
	}
	return &MonitoringHandler{module: module, cfg: cfg}
}

// Summary returns per-namespace cache statistics, maintenance job state and configuration hints.
func (h *MonitoringHandler) Summary(c *gin.Context) {
	endpoint := strings.TrimSpace(h.cfg.Monitoring.Prometheus.Endpoint)
	if endpoint == "" {
		endpoint = "/metrics"
	}

	response.OK(c, response.Success("Monitoring summary fetched successfully", gin.H{
		"summary": monitoring.Snapshot(),
		"cache": gin.H{
			"driver":       h.cfg.Cache.Driver,
			"ttl":          h.cfg.Cache.TTL.String(),
			"invalidation": h.cfg.Cache.Invalidation,
			"onError":      h.cfg.Cache.OnError,
		},
		"prometheus": gin.H{
			"enabled":  h.cfg.Monitoring.Prometheus.Enabled,
			"endpoint": endpoint,
		},
	}, nil))
}
