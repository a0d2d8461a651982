// Package metrics defines the Prometheus collectors exported by the service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome labels for resolutions.
const (
	OutcomeExact = "exact"
	OutcomeFuzzy = "fuzzy"
	OutcomeNone  = "none"
	OutcomeError = "error"
)

// Resolver records word-resolution outcomes.
type Resolver struct {
	resolutions *prometheus.CounterVec
	queries     prometheus.Histogram
}

// NewResolver registers the resolver collectors on reg.
func NewResolver(reg prometheus.Registerer) *Resolver {
	f := promauto.With(reg)
	return &Resolver{
		// Labels: outcome (exact, fuzzy, none, error)
		resolutions: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "lexicon",
			Subsystem: "resolver",
			Name:      "resolutions_total",
			Help:      "Word resolutions by outcome",
		}, []string{"outcome"}),
		queries: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: "lexicon",
			Subsystem: "resolver",
			Name:      "store_queries",
			Help:      "Backing-store queries spent per resolution",
			Buckets:   []float64{0, 1, 2, 4, 8, 16, 32, 64},
		}),
	}
}

// ObserveResolution records one resolution and the store queries it spent.
func (m *Resolver) ObserveResolution(outcome string, queries int) {
	m.resolutions.WithLabelValues(outcome).Inc()
	m.queries.Observe(float64(queries))
}
