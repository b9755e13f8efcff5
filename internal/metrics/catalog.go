package metrics

import "github.com/prometheus/client_golang/prometheus"

// Catalog provider Prometheus metrics.
var (
	ProviderRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "scentcore",
			Name:      "provider_requests_total",
			Help:      "Total number of catalog provider requests",
		},
		[]string{"endpoint", "status"},
	)

	ProviderRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "scentcore",
			Name:      "provider_request_duration_seconds",
			Help:      "Catalog provider request duration in seconds",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"endpoint"},
	)

	ProviderRetriesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "scentcore",
			Name:      "provider_retries_total",
			Help:      "Total provider attempt retries by failure kind",
		},
		[]string{"reason"}, // "rate_limited" / "timeout"
	)

	ResponseCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "scentcore",
			Name:      "response_cache_total",
			Help:      "Response cache hits and misses",
		},
		[]string{"result"}, // "hit" / "miss"
	)

	FallbackTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "scentcore",
			Name:      "fallback_total",
			Help:      "Catalog requests served from the local fallback dataset",
		},
		[]string{"endpoint"},
	)

	BreakerState = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "scentcore",
			Name:      "provider_breaker_state",
			Help:      "Provider circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)
)

var catalogMetricsRegistered bool

// RegisterCatalogMetrics registers provider metrics. Must be called once from main.
func RegisterCatalogMetrics() {
	if catalogMetricsRegistered {
		return
	}
	prometheus.MustRegister(ProviderRequestsTotal)
	prometheus.MustRegister(ProviderRequestDuration)
	prometheus.MustRegister(ProviderRetriesTotal)
	prometheus.MustRegister(ResponseCacheTotal)
	prometheus.MustRegister(FallbackTotal)
	prometheus.MustRegister(BreakerState)
	catalogMetricsRegistered = true
}
