package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Catalog search Prometheus metrics.
var (
	SearchRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "storecatalog",
			Name:      "search_requests_total",
			Help:      "Total number of catalog search calls",
		},
		[]string{"backend", "operation", "status"},
	)

	SearchRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "storecatalog",
			Name:      "search_request_duration_seconds",
			Help:      "Catalog search duration in seconds, backend round trip and mapping included",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"backend", "operation"},
	)

	SearchResultsReturned = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "storecatalog",
			Name:      "search_results_returned",
			Help:      "Number of products returned per list call",
			Buckets:   []float64{0, 1, 5, 10, 25, 50, 100, 250},
		},
		[]string{"backend"},
	)
)

// Search call outcomes used as the status label.
const (
	StatusOK          = "ok"
	StatusNotFound    = "not_found"
	StatusAmbiguous   = "ambiguous"
	StatusMapping     = "mapping_error"
	StatusInvalid     = "invalid"
	StatusBackendFail = "backend_error"
)

var registerSearch sync.Once

// RegisterSearchMetrics registers catalog search metrics on the default registry.
// Safe to call more than once.
func RegisterSearchMetrics() {
	registerSearch.Do(func() {
		prometheus.MustRegister(SearchRequestsTotal)
		prometheus.MustRegister(SearchRequestDuration)
		prometheus.MustRegister(SearchResultsReturned)
	})
}
