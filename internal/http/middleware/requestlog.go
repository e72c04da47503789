package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/tubesort-backend/internal/pkg/logger"
)

// RequestIDHeader carries the per-request id on both request and response.
const RequestIDHeader = "X-Request-ID"

// RequestID assigns a uuid to requests that arrive without one.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("requestID", id)
		c.Writer.Header().Set(RequestIDHeader, id)
		c.Next()
	}
}

// RequestLog emits one structured line per request.
func RequestLog(baseLog *logger.Logger) gin.HandlerFunc {
	log := baseLog.With("middleware", "RequestLog")
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		log.Info("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
			"request_id", c.GetString("requestID"),
		)
	}
}
