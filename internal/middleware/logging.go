package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/aungaung101025-ux/adupayment/internal/logger"
)

const requestIDKey = "requestID"

// RequestLogging tags each request with an id, echoes it in the X-Request-ID
// header and logs method, path, status, latency and client IP. Requests that
// went through auth also carry the ledger user id. Health probes are not
// logged.
func RequestLogging() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.FullPath() == "/api/health" {
			c.Next()
			return
		}

		start := time.Now()
		requestID := uuid.New().String()
		c.Set(requestIDKey, requestID)
		c.Writer.Header().Set("X-Request-ID", requestID)

		c.Next()

		fields := []interface{}{
			"request_id", requestID,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency_ms", time.Since(start).Milliseconds(),
			"client_ip", c.ClientIP(),
		}
		if userID, ok := c.Get("userID"); ok {
			fields = append(fields, "user_id", userID)
		}
		logger.Get().Infow("request", fields...)
	}
}
