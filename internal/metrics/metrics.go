package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Fetch outcomes.
const (
	OutcomeOK        = "ok"
	OutcomeError     = "error"
	OutcomeTimeout   = "timeout"
	OutcomeCancelled = "cancelled"
)

var (
	FetchesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "booksearch_fetches_total",
		Help: "Total number of Open Library fetches by outcome",
	}, []string{"outcome"})

	FetchDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "booksearch_fetch_duration_seconds",
		Help:    "Duration of Open Library fetches in seconds",
		Buckets: prometheus.DefBuckets,
	})

	ActiveSessions = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "booksearch_active_sessions",
		Help: "Number of open search sessions",
	})

	HttpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "booksearch_http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	HttpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "booksearch_http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"path"})
)

// ObserveFetch records one completed fetch.
func ObserveFetch(outcome string, took time.Duration) {
	FetchesTotal.WithLabelValues(outcome).Inc()
	FetchDuration.Observe(took.Seconds())
}

// Middleware counts requests by matched route. Unmatched routes share a
// single label value.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		HttpRequestsTotal.WithLabelValues(c.Request.Method, path, strconv.Itoa(c.Writer.Status())).Inc()
		HttpRequestDuration.WithLabelValues(path).Observe(time.Since(start).Seconds())
	}
}
