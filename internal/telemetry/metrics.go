// Package telemetry provides observability primitives for the vambrace server.
package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds all Prometheus collectors for the server.
type Metrics struct {
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	ActiveRequests  prometheus.Gauge
	CacheHits       prometheus.Counter
	CacheMisses     prometheus.Counter
	CacheWrites     *prometheus.CounterVec
	CacheSkips      prometheus.Counter
	SlugRedirects   prometheus.Counter
}

// NewMetrics creates and registers all metrics with the given registerer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		RequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "vambrace",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests.",
		}, []string{"method", "path", "status"}),

		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:                       "vambrace",
			Name:                            "request_duration_seconds",
			Help:                            "HTTP request duration in seconds.",
			NativeHistogramBucketFactor:     1.1,
			NativeHistogramMaxBucketNumber:  100,
			NativeHistogramMinResetDuration: 0,
		}, []string{"method", "path"}),

		ActiveRequests: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "vambrace",
			Name:      "active_requests",
			Help:      "Number of currently active requests.",
		}),

		CacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "vambrace",
			Name:      "cache_hits_total",
			Help:      "Total response cache hits.",
		}),

		CacheMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "vambrace",
			Name:      "cache_misses_total",
			Help:      "Total response cache misses.",
		}),

		CacheWrites: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "vambrace",
			Name:      "cache_writes_total",
			Help:      "Total response cache writes by mode (immediate or deferred).",
		}, []string{"mode"}),

		CacheSkips: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "vambrace",
			Name:      "cache_skips_total",
			Help:      "Total responses skipped by the cache decorator.",
		}),

		SlugRedirects: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "vambrace",
			Name:      "slug_redirects_total",
			Help:      "Total permanent redirects issued for non-canonical slugs.",
		}),
	}

	reg.MustRegister(
		m.RequestsTotal,
		m.RequestDuration,
		m.ActiveRequests,
		m.CacheHits,
		m.CacheMisses,
		m.CacheWrites,
		m.CacheSkips,
		m.SlugRedirects,
	)

	return m
}
