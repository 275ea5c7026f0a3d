package middleware

import (
	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/google/uuid"     // UUID generation
	"github.com/sirupsen/logrus" // Structured logging
)

// RequestIDMiddleware tags every request with an X-Request-ID and logs the
// request line under it. An incoming ID is honored so upstream proxies can
// correlate.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString() // Generate a fresh ID
		}
		c.Set("requestID", requestID)          // Store in context for handlers
		c.Header("X-Request-ID", requestID)    // Echo back to the client
		logrus.WithFields(logrus.Fields{
			"request_id": requestID,
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
		}).Debug("request received")
		c.Next()
	}
}
