package middleware

import (
	"log/slog"
	"time"

	ports "blog-post-service/internal/domain/ports/output"

	"github.com/gin-gonic/gin"
)

func AccessLogger(log ports.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		status := c.Writer.Status()
		args := []any{
			slog.String("method", c.Request.Method),
			slog.String("path", path),
			slog.Int("status", status),
			slog.Duration("duration", time.Since(start)),
		}
		if len(c.Errors) > 0 {
			args = append(args, slog.String("error", c.Errors.String()))
		}

		switch {
		case status >= 500:
			log.Error("HTTP request failed", args...)
		case status >= 400:
			log.Warn("HTTP request rejected", args...)
		default:
			log.Info("HTTP request", args...)
		}
	}
}
