package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/lokvaani/commentengine/pkg/logging"
	"github.com/lokvaani/commentengine/pkg/telemetry"
)

// Recovery turns a panic into a 500 {success:false, error} response
func Recovery(logger *zap.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logger.Error("Handler panicked",
			zap.String("path", c.Request.URL.Path),
			zap.Any("panic", recovered))
		c.AbortWithStatusJSON(http.StatusInternalServerError, errorBody{
			Error: fmt.Sprintf("internal error: %v", recovered),
		})
	})
}

// Tracing opens one span per request named after the matched route
func Tracing() gin.HandlerFunc {
	return func(c *gin.Context) {
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		ctx, span := telemetry.StartSpan(c.Request.Context(), c.Request.Method+" "+route)
		defer span.End()
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// NewEngine returns a gin engine with the shared middleware chain
func NewEngine(logger *zap.Logger) *gin.Engine {
	engine := gin.New()
	engine.Use(Recovery(logger), Tracing(), logging.GinMiddleware(logger))
	return engine
}
