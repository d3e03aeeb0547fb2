package middleware

import (
	"time"

	"residence/services/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	RequestIDHeader = "X-Request-ID"
	RequestIDKey    = "requestId"
)

// RequestID reuses the caller's X-Request-ID or assigns a new one.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}

		c.Set(RequestIDKey, id)
		c.Writer.Header().Set(RequestIDHeader, id)

		c.Next()
	}
}

// RequestLogger writes one line per request. Server errors are logged at ERROR.
func RequestLogger(l logger.Logger) gin.HandlerFunc {
	if l == nil {
		l = logger.Nop()
	}
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		id := c.GetString(RequestIDKey)
		elapsed := time.Since(start)
		switch {
		case status >= 500:
			l.Error("[%s] %s %s %d %s", id, c.Request.Method, c.Request.URL.Path, status, elapsed)
		case status >= 400:
			l.Warn("[%s] %s %s %d %s", id, c.Request.Method, c.Request.URL.Path, status, elapsed)
		default:
			l.Debug("[%s] %s %s %d %s", id, c.Request.Method, c.Request.URL.Path, status, elapsed)
		}
	}
}
