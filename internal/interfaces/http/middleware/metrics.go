package middleware

import (
	"time"

	"github.com/finplan/backend/internal/infrastructure/telemetry"
	"github.com/gin-gonic/gin"
)

// UnmatchedRoute labels requests that hit no registered route, keeping the
// route label bounded by the router's own table
const UnmatchedRoute = "unmatched"

// HTTPMetrics records request count and latency per method, route pattern and
// status. A nil metrics value makes it a pass-through.
func HTTPMetrics(metrics *telemetry.PlanningMetrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		if metrics == nil {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		metrics.ObserveHTTPRequest(c.Request.Method, routePattern(c), c.Writer.Status(), time.Since(start))
	}
}

func routePattern(c *gin.Context) string {
	if route := c.FullPath(); route != "" {
		return route
	}
	return UnmatchedRoute
}
