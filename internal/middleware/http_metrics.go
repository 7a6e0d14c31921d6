package middleware

import (
	"strconv"
	"time"

	"github.com/SscSPs/card_inventory_app/internal/metrics"
	"github.com/gin-gonic/gin"
)

// PrometheusMiddleware records request counts and latency. Paths are labelled
// by route template so position parameters do not explode cardinality.
func PrometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		metrics.HTTPRequestsTotal.WithLabelValues(c.Request.Method, path, strconv.Itoa(c.Writer.Status())).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(c.Request.Method, path).Observe(time.Since(start).Seconds())
	}
}
