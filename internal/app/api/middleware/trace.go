package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/salamene/horoscope-backend/pkg/logctx"
)

// TraceMiddleware assigns each request a trace id, honoring a client-sent
// X-Request-ID when present. The id is stored in gin.Context and the request
// context and mirrored back in the response header.
func TraceMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		traceID := c.GetHeader("X-Request-ID")
		if traceID == "" {
			traceID = uuid.New().String()
		}

		c.Set("traceID", traceID)
		c.Request = c.Request.WithContext(logctx.WithTraceID(c.Request.Context(), traceID))
		c.Writer.Header().Set("X-Request-ID", traceID)

		c.Next()
	}
}
