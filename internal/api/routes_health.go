package api

import (
	"github.com/gin-gonic/gin"

	"github.com/charlesng35/catalog/internal/app"
	"github.com/charlesng35/catalog/internal/handlers"
	"github.com/charlesng35/catalog/internal/monitoring"
)

func registerHealthRoutes(r *gin.Engine, cfg *app.Config, mon *monitoring.Module) {
	if cfg == nil {
		return
	}

	if !cfg.Monitoring.Health.Enabled || mon == nil || mon.Health() == nil {
		r.GET("/health", handlers.HealthDisabled)
		r.GET("/health/live", handlers.HealthDisabled)
		r.GET("/health/ready", handlers.HealthDisabled)
		return
	}

	handler := handlers.NewHealthHandler(mon.Health())
	registerHealthEndpoints(r, handler)
	registerHealthEndpoints(r.Group("/api/v1"), handler)
}

func registerHealthEndpoints(router gin.IRouter, handler *handlers.HealthHandler) {
	router.GET("/health", handler.Overall)
	router.GET("/health/live", handler.Live)
	router.GET("/health/ready", handler.Ready)
}
