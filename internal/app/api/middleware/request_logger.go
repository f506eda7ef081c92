package middleware

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/salamene/horoscope-backend/pkg/logctx"
)

// RequestLoggerMiddleware attaches a request-scoped logger enriched with the
// trace id to gin.Context and the request context, so services logging via
// logctx.FromCtx inherit it.
func RequestLoggerMiddleware(base *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		reqLogger := base
		if traceID := c.GetString("traceID"); traceID != "" {
			reqLogger = base.With("trace_id", traceID)
		}
		c.Set(logctx.GinLoggerKey, reqLogger)
		c.Request = c.Request.WithContext(logctx.WithLogger(c.Request.Context(), reqLogger))

		c.Next()
	}
}
