package middleware

import (
	"strconv"
	"time"

	ports "blog-post-service/internal/domain/ports/output"

	"github.com/gin-gonic/gin"
)

// Metrics labels requests by route template so ids do not blow up label cardinality.
func Metrics(metrics ports.MetricsProvider) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())
		metrics.IncrementHTTPRequests(c.Request.Method, route, status)
		metrics.RecordHTTPRequestDuration(c.Request.Method, route, status, time.Since(start))
	}
}
