package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/seo-audit/backend/logging"
)

const auditPath = "/api/audit"

// RequestStats tracks visitors and audit requests, and periodically persists
// the statistics.
func RequestStats(stats *logging.Statistics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		stats.TrackVisitor(c.ClientIP())

		c.Next()

		if c.Request.URL.Path == auditPath && c.Request.Method == "POST" {
			auditTime := float64(time.Since(start).Milliseconds())
			withCompetitor := c.GetBool("withCompetitor")
			stats.TrackAudit(c.GetString("auditedUrl"), auditTime, withCompetitor, c.Writer.Status() >= 400)
		}

		// Persist every 100 requests; the save is asynchronous so the
		// response is never blocked on disk.
		if stats.GetStatistics()["totalRequests"].(int)%100 == 0 {
			go stats.Save()
		}
	}
}
