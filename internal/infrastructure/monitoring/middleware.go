package monitoring

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// unmatchedRoute labels requests that hit no registered route, keeping
// label cardinality bounded.
const unmatchedRoute = "unmatched"

// otherMethod labels every method the file surface does not serve
const otherMethod = "other"

// methodLabel keeps the method label bounded. Clients can send any token
// as a method, and only GET and OPTIONS preflight are served.
func methodLabel(method string) string {
	switch method {
	case http.MethodGet, http.MethodOptions:
		return method
	}
	return otherMethod
}

// Middleware creates a Gin middleware for metrics collection
func Middleware(metrics *Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		method := methodLabel(c.Request.Method)

		// Process request
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = unmatchedRoute
		}

		duration := time.Since(start)
		status := strconv.Itoa(c.Writer.Status())
		respSize := int64(c.Writer.Size())
		if respSize < 0 {
			respSize = 0
		}

		metrics.RecordHTTPRequest(method, path, status, duration, respSize)
	}
}

// Timer measures operation duration
type Timer struct {
	start   time.Time
	metrics *Metrics
	op      string
}

// NewTimer creates a new timer. A nil metrics yields a timer that records nothing.
func NewTimer(metrics *Metrics, op string) *Timer {
	return &Timer{
		start:   time.Now(),
		metrics: metrics,
		op:      op,
	}
}

// Stop stops the timer and records the duration
func (t *Timer) Stop(outcome string) time.Duration {
	duration := time.Since(t.start)
	if t.metrics != nil {
		t.metrics.RecordFileOp(t.op, outcome, duration)
	}
	return duration
}
