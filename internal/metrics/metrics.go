package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics tracks dashboard traffic and outbound backend calls.
type Metrics struct {
	registry        *prometheus.Registry
	httpRequests    *prometheus.HistogramVec
	backendRequests *prometheus.HistogramVec
}

// New registers the dashboard collectors on a fresh registry.
func New() *Metrics {
	registry := prometheus.NewRegistry()

	httpRequests := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "funval_dashboard",
		Name:      "http_request_duration_seconds",
		Help:      "Duration of handled HTTP requests.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	backendRequests := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "funval_dashboard",
		Name:      "backend_request_duration_seconds",
		Help:      "Duration of calls to the Funval REST API.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	registry.MustRegister(httpRequests, backendRequests)

	return &Metrics{
		registry:        registry,
		httpRequests:    httpRequests,
		backendRequests: backendRequests,
	}
}

// GinMiddleware records request durations per route.
func (m *Metrics) GinMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		m.httpRequests.WithLabelValues(
			c.Request.Method,
			path,
			strconv.Itoa(c.Writer.Status()),
		).Observe(time.Since(start).Seconds())
	}
}

// ObserveBackendRequest implements funval.Observer.
func (m *Metrics) ObserveBackendRequest(method, path string, status int, duration time.Duration) {
	m.backendRequests.WithLabelValues(method, path, strconv.Itoa(status)).Observe(duration.Seconds())
}

// Handler exposes the registry for the /metrics endpoint.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
