package monitoring

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// Middleware creates a Gin middleware for metrics collection
func Middleware(metrics *Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		method := c.Request.Method

		// Process request
		c.Next()

		duration := time.Since(start)
		status := strconv.Itoa(c.Writer.Status())

		metrics.RecordHTTPRequest(method, path, status, duration)
	}
}

// Timer measures provider call duration
type Timer struct {
	start    time.Time
	metrics  *Metrics
	provider string
	method   string
}

// NewTimer creates a new timer
func NewTimer(metrics *Metrics, provider, method string) *Timer {
	return &Timer{
		start:    time.Now(),
		metrics:  metrics,
		provider: provider,
		method:   method,
	}
}

// Stop stops the timer and records the call
func (t *Timer) Stop(status string) {
	duration := time.Since(t.start)
	t.metrics.RecordProviderCall(t.provider, t.method, status, duration)
}
