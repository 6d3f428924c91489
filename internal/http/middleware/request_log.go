package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/bloglist-backend/internal/platform/ctxutil"
	"github.com/yungbote/bloglist-backend/internal/platform/logger"
)

// RequestLogger writes one line per request once the handler chain is done.
// 5xx responses log at Error and 4xx at Warn.
func RequestLogger(log *logger.Logger) gin.HandlerFunc {
	if log == nil {
		return func(c *gin.Context) { c.Next() }
	}
	log = log.With("Middleware", "RequestLogger")
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		ctx := c.Request.Context()
		route := c.FullPath()
		if route == "" {
			route = c.Request.URL.Path
		}
		status := c.Writer.Status()
		fields := append([]interface{}{
			"method", c.Request.Method,
			"path", route,
			"status", status,
			"duration_ms", time.Since(start).Milliseconds(),
		}, ctxutil.TraceFields(ctx)...)
		if userID := ctxutil.CurrentUserID(ctx); userID != nil {
			fields = append(fields, "user_id", userID.String())
		}
		if len(c.Errors) > 0 {
			fields = append(fields, "error", c.Errors.String())
		}

		logAt := log.Info
		switch {
		case status >= 500:
			logAt = log.Error
		case status >= 400:
			logAt = log.Warn
		}
		logAt("HTTP request", fields...)
	}
}
