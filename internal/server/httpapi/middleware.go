package httpapi

import (
	"crypto/subtle"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// AdminTokenHeader carries the shared secret on privileged requests.
const AdminTokenHeader = "X-Admin-Token"

// requestLogger logs every request with a correlation id, status and timing.
func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		requestID := uuid.NewString()
		c.Set("request_id", requestID)

		c.Next()

		duration := time.Since(start).Milliseconds()
		status := c.Writer.Status()

		log := s.logger.With(
			"request_id", requestID,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", status,
			"duration_ms", duration,
		)
		if status >= http.StatusInternalServerError {
			log.Error(c.Request.Context(), "request failed")
		} else if status >= http.StatusBadRequest {
			log.Warn(c.Request.Context(), "request rejected")
		} else {
			log.Info(c.Request.Context(), "request ok")
		}
	}
}

// adminOnly gates a route behind the configured shared-secret token. An
// empty configured token means nothing can pass. The comparison is constant
// time, which is as far as this deliberately simple scheme goes.
func (s *Server) adminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		presented := c.GetHeader(AdminTokenHeader)
		if s.adminToken == "" || presented == "" ||
			subtle.ConstantTimeCompare([]byte(presented), []byte(s.adminToken)) != 1 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		c.Next()
	}
}
