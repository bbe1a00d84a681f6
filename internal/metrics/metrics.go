package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Cache names used as label values on the cache metrics
const (
	CacheAirportReference = "airport_reference"
	CacheSolarEvents      = "solar_events"
)

// MetricsRegistry holds all Prometheus metrics for Airclock
type MetricsRegistry struct {
	// HTTP Metrics
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight *prometheus.GaugeVec

	// Cache Metrics
	CacheHitsTotal   *prometheus.CounterVec
	CacheMissesTotal *prometheus.CounterVec
	CacheEntries     *prometheus.GaugeVec

	// Temporal Metrics
	ProfilesServedTotal    *prometheus.CounterVec
	TimezoneFallbacksTotal *prometheus.CounterVec
	SolarComputeDuration   *prometheus.HistogramVec

	// Reference data
	AirportSyncDuration prometheus.Histogram
	AirportsImported    prometheus.Gauge
}

// NewMetricsRegistry initializes all metrics against the given registerer.
// Pass prometheus.DefaultRegisterer in the server and a fresh
// prometheus.NewRegistry() in tests to avoid duplicate registration.
func NewMetricsRegistry(reg prometheus.Registerer) *MetricsRegistry {
	factory := promauto.With(reg)

	return &MetricsRegistry{
		// HTTP Metrics
		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "airclock_http_requests_total",
				Help: "Total HTTP requests processed by endpoint, method, and status code",
			},
			[]string{"endpoint", "method", "status_code"},
		),
		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "airclock_http_request_duration_seconds",
				Help:    "HTTP request latency distribution in seconds",
				Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
			[]string{"endpoint", "method"},
		),
		HTTPRequestsInFlight: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "airclock_http_requests_in_flight",
				Help: "Number of HTTP requests currently being processed",
			},
			[]string{"endpoint"},
		),

		// Cache Metrics
		CacheHitsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "airclock_cache_hits_total",
				Help: "Total cache hits by cache name",
			},
			[]string{"cache"},
		),
		CacheMissesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "airclock_cache_misses_total",
				Help: "Total cache misses by cache name",
			},
			[]string{"cache"},
		),
		CacheEntries: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "airclock_cache_entries",
				Help: "Current number of entries held by each cache",
			},
			[]string{"cache"},
		),

		// Temporal Metrics
		ProfilesServedTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "airclock_profiles_total",
				Help: "Airport temporal profile requests by outcome",
			},
			[]string{"outcome"},
		),
		TimezoneFallbacksTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "airclock_timezone_resolutions_total",
				Help: "Timezone resolutions by provenance",
			},
			[]string{"provenance"},
		),
		SolarComputeDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "airclock_solar_compute_duration_seconds",
				Help:    "Solar event computation time in seconds",
				Buckets: []float64{0.00005, 0.0001, 0.00025, 0.0005, 0.001, 0.0025, 0.005, 0.01},
			},
			[]string{"algorithm"},
		),

		AirportSyncDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "airclock_airport_sync_duration_seconds",
				Help:    "Airport dataset import time in seconds",
				Buckets: []float64{0.5, 1, 5, 10, 30, 60, 120, 300, 600},
			},
		),
		AirportsImported: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "airclock_airports_imported",
				Help: "Number of airports written by the last successful import",
			},
		),
	}
}
