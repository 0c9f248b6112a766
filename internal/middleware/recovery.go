package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	appErrors "github.com/charlesng35/catalog/pkg/errors"
	"github.com/charlesng35/catalog/pkg/logger"
	"github.com/charlesng35/catalog/pkg/response"
)

// Recovery converts panics into a 500 envelope and logs the error.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				logger.WithModule("http").Error("panic",
					zap.String("path", c.Request.URL.Path),
					zap.Any("error", r),
					zap.Stack("stack"),
				)
				c.AbortWithStatusJSON(http.StatusInternalServerError,
					response.Failure(appErrors.ErrInternalServer.Message, nil, nil))
			}
		}()
		c.Next()
	}
}

// NotFoundHandler returns a 404 envelope for unknown routes.
func NotFoundHandler(c *gin.Context) {
	response.Error(c, appErrors.NotFound(fmt.Sprintf("Cannot %s %s", c.Request.Method, c.Request.URL.Path)))
}
