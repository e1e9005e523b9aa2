package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Core request/hit/miss counters
	Requests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reqcache_requests_total",
			Help: "Total number of requests entering the cache layer",
		},
		[]string{"method"},
	)

	Hits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reqcache_hits_total",
			Help: "Total number of cache hits",
		},
		[]string{"method"},
	)

	Misses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reqcache_misses_total",
			Help: "Total number of cache misses",
		},
		[]string{"method"},
	)

	Bypasses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reqcache_bypass_total",
			Help: "Total number of requests issued with caching disabled",
		},
		[]string{"method"},
	)

	TransportErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reqcache_transport_errors_total",
			Help: "Total number of failed transport calls",
		},
		[]string{"method"},
	)

	StoreErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reqcache_store_errors_total",
			Help: "Total number of record store failures",
		},
		[]string{"store", "operation"},
	)

	// Store operation latency only
	StoreOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "reqcache_store_operation_duration_seconds",
			Help:    "Duration of record store operations",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation", "store"},
	)
)

// RecordRequest records a request entering the cache layer.
func RecordRequest(method string) {
	Requests.WithLabelValues(method).Inc()
}

// RecordHit records a cache hit.
func RecordHit(method string) {
	Hits.WithLabelValues(method).Inc()
}

// RecordMiss records a cache miss.
func RecordMiss(method string) {
	Misses.WithLabelValues(method).Inc()
}

// RecordBypass records a request that skipped the cache entirely.
func RecordBypass(method string) {
	Bypasses.WithLabelValues(method).Inc()
}

// RecordTransportError records a failed transport call.
func RecordTransportError(method string) {
	TransportErrors.WithLabelValues(method).Inc()
}

// RecordStoreError records a record store failure.
func RecordStoreError(store, operation string) {
	StoreErrors.WithLabelValues(store, operation).Inc()
}

// TimeStoreOperation returns a timer function for measuring store operation duration.
func TimeStoreOperation(operation, store string) func() {
	timer := prometheus.NewTimer(StoreOperationDuration.WithLabelValues(operation, store))
	return func() {
		timer.ObserveDuration()
	}
}
