package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP records request counts and latencies per route.
type HTTP struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewHTTP registers the HTTP collectors on reg.
func NewHTTP(reg prometheus.Registerer) *HTTP {
	f := promauto.With(reg)
	return &HTTP{
		requests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "lexicon",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by route, method and status code",
		}, []string{"route", "method", "code"}),
		duration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "lexicon",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency by route",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
	}
}

// ObserveRequest records one finished request.
func (m *HTTP) ObserveRequest(route, method, code string, elapsed time.Duration) {
	m.requests.WithLabelValues(route, method, code).Inc()
	m.duration.WithLabelValues(route).Observe(elapsed.Seconds())
}
