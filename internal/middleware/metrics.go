package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/easybookevent/artistcal/pkg/metrics"
)

// unmatchedPath keeps the latency histogram's path label bounded; raw URLs of
// 404s would otherwise grow it without limit.
const unmatchedPath = "unmatched"

// Metrics records per-request latency labelled by method, route template and
// status. The scrape endpoint itself is not observed.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		switch path {
		case "/metrics":
			return
		case "":
			path = unmatchedPath
		}

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Writer.Status())
		metrics.APILatency.WithLabelValues(c.Request.Method, path, status).Observe(duration)
	}
}
