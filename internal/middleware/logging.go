package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pageza/cookbook/backend/internal/logging"
	"github.com/pageza/cookbook/backend/internal/metrics"
)

const requestIDHeader = "X-Request-ID"

// RequestLogger tags the request context with a request id and logs one
// line per request.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		requestID := c.GetHeader(requestIDHeader)
		if requestID == "" {
			requestID = logging.NewRequestID()
		}
		ctx := logging.ContextWithRequestID(c.Request.Context(), requestID)
		c.Request = c.Request.WithContext(ctx)
		c.Header(requestIDHeader, requestID)

		c.Next()

		status := c.Writer.Status()
		event := logging.Ctx(ctx).Info()
		if status >= 500 {
			event = logging.Ctx(ctx).Error()
		} else if status >= 400 {
			event = logging.Ctx(ctx).Warn()
		}
		event.
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", status).
			Dur("duration", time.Since(start)).
			Str("client_ip", c.ClientIP()).
			Msg("request handled")
	}
}

// Metrics records request counts and latency per route template
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = "unmatched"
		}
		metrics.RecordAPIRequest(c.Request.Method, endpoint, c.Writer.Status(), time.Since(start))
	}
}
