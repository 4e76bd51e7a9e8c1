// Package metrics exposes the service's Prometheus instruments.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the counters recorded by the HTTP layer. Outcome labels are
// coarse ("success", "conflict", "unauthorized", "invalid", "error") so the
// cardinality stays fixed.
type Metrics struct {
	Registrations *prometheus.CounterVec
	Logins        *prometheus.CounterVec
}

// New creates and registers all metrics on the default registry.
func New() *Metrics {
	return NewWith(prometheus.DefaultRegisterer)
}

// NewWith registers the metrics on the given registerer; tests pass a fresh
// prometheus.NewRegistry to stay isolated.
func NewWith(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Registrations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "campus_auth_registrations_total",
			Help: "Total registration attempts by outcome",
		}, []string{"outcome"}),
		Logins: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "campus_auth_logins_total",
			Help: "Total login attempts by outcome",
		}, []string{"outcome"}),
	}
}
