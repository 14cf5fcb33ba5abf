package config

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
)

func PerformanceLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		// Process request
		c.Next()

		// Calculate latency
		latency := time.Since(start)

		log.Printf("[PERF] %s %s | Status: %d | Time: %v",
			c.Request.Method,
			c.Request.URL.Path,
			c.Writer.Status(),
			latency)

		// Webhook handlers make several external round-trips, so give them
		// more headroom before flagging
		threshold := 200 * time.Millisecond
		if len(c.Request.URL.Path) >= 9 && c.Request.URL.Path[:9] == "/webhooks" {
			threshold = 3 * time.Second
		}
		if latency > threshold {
			log.Printf("SLOW REQUEST: %s %s took %v",
				c.Request.Method, c.Request.URL.Path, latency)
		}
	}
}
