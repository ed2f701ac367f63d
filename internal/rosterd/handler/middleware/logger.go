package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kiosk404/roster/pkg/logger"
)

// Logger writes one access log line per request. The watch stream is
// logged when it ends.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		if raw := c.Request.URL.RawQuery; raw != "" {
			path = path + "?" + raw
		}

		c.Next()

		entry := logger.WithField("request_id", GetRequestID(c)).
			WithField("status", c.Writer.Status()).
			WithField("latency", time.Since(start).String()).
			WithField("client_ip", c.ClientIP())
		msg := c.Request.Method + " " + path
		switch {
		case c.Writer.Status() >= 500:
			entry.Error(msg)
		case c.Writer.Status() >= 400:
			entry.Warn(msg)
		default:
			entry.Info(msg)
		}
	}
}
