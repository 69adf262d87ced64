// Package metrics exposes process-wide prometheus collectors for the
// provider client and lookup caches.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the prometheus collectors used across the application.
type Metrics struct {
	ProviderRequests *prometheus.CounterVec
	LookupCacheHits  prometheus.Counter
	LookupCacheMiss  prometheus.Counter
}

// New registers collectors on the given registerer and returns them.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		ProviderRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "reelstack_provider_requests_total",
			Help: "Provider API requests by endpoint and outcome.",
		}, []string{"endpoint", "outcome"}),
		LookupCacheHits: factory.NewCounter(prometheus.CounterOpts{
			Name: "reelstack_lookup_cache_hits_total",
			Help: "Episode-count lookup cache hits.",
		}),
		LookupCacheMiss: factory.NewCounter(prometheus.CounterOpts{
			Name: "reelstack_lookup_cache_misses_total",
			Help: "Episode-count lookup cache misses, including expired entries.",
		}),
	}
}

// Nop returns metrics backed by a throwaway registry, for tests and
// optional wiring.
func Nop() *Metrics {
	return New(prometheus.NewRegistry())
}
