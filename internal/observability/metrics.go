package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "farm_records"

// Metrics holds the Prometheus collectors for provider calls and ingestion.
type Metrics struct {
	// labels: endpoint={geocode,current,forecast}, outcome={success,error,unconfigured}
	ProviderRequests *prometheus.CounterVec
	// labels: endpoint
	ProviderDuration *prometheus.HistogramVec

	// labels: result={hit,miss}
	CoordinateCache *prometheus.CounterVec

	// labels: outcome={success,error}
	WeatherUpserts *prometheus.CounterVec

	IngestionsCoalesced prometheus.Counter
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := newMetrics()
	reg.MustRegister(
		m.ProviderRequests,
		m.ProviderDuration,
		m.CoordinateCache,
		m.WeatherUpserts,
		m.IngestionsCoalesced,
	)
	return m
}

// NewMetricsForTesting returns unregistered collectors so tests can build
// as many instances as they like.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		ProviderRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "provider_requests_total",
			Help:      "Weather provider requests by endpoint and outcome.",
		}, []string{"endpoint", "outcome"}),
		ProviderDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "provider_request_duration_seconds",
			Help:      "Weather provider request duration in seconds.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"endpoint"}),
		CoordinateCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "farm_coordinates_total",
			Help:      "Farm coordinate lookups served from the farm row (hit) or geocoded (miss).",
		}, []string{"result"}),
		WeatherUpserts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "weather_upserts_total",
			Help:      "Weather record upserts by outcome.",
		}, []string{"outcome"}),
		IngestionsCoalesced: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ingestions_coalesced_total",
			Help:      "Ingest requests that joined an in-flight ingestion for the same farm.",
		}),
	}
}
