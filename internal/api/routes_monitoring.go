package api

import (
	"github.com/gin-gonic/gin"

	"github.com/charlesng35/catalog/internal/handlers"
)

func registerMonitoringRoutes(v1 *gin.RouterGroup, handler *handlers.MonitoringHandler) {
	if v1 == nil || handler == nil {
		return
	}

	group := v1.Group("/monitoring")
	group.GET("/summary", handler.Summary)
}
