package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "purpleair_aqi"

// Metrics holds the Prometheus counters, histograms, and gauges for the AQI pipeline.
type Metrics struct {
	ReadingsFetched   prometheus.Counter
	ReadingsPublished prometheus.Counter
	EvaluateErrors    *prometheus.CounterVec // labels: reason={invalid_input,undefined_aqi,unclassified_level,other}
	PipelineRunning   prometheus.Gauge
	CurrentAQI        *prometheus.GaugeVec // labels: sensor_id

	// PurpleAir API metrics.
	FetchRequests *prometheus.CounterVec // labels: outcome={success,error}
	FetchCache    *prometheus.CounterVec // labels: result={hit,miss}
	FetchDuration prometheus.Histogram
}

// NewMetrics creates and registers all pipeline metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	return NewMetricsWith(prometheus.DefaultRegisterer)
}

// NewMetricsWith creates all pipeline metrics and registers them with reg.
func NewMetricsWith(reg prometheus.Registerer) *Metrics {
	m := newMetrics()
	reg.MustRegister(
		m.ReadingsFetched,
		m.ReadingsPublished,
		m.EvaluateErrors,
		m.PipelineRunning,
		m.CurrentAQI,
		m.FetchRequests,
		m.FetchCache,
		m.FetchDuration,
	)
	return m
}

// NewMetricsForTesting creates unregistered Metrics to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		ReadingsFetched: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "readings_fetched_total",
			Help:      "Total sensor snapshots fetched from PurpleAir.",
		}),
		ReadingsPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "readings_published_total",
			Help:      "Total evaluated readings handed to the loaders.",
		}),
		EvaluateErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "evaluate_errors_total",
			Help:      "Snapshots that could not be evaluated, by reason.",
		}, []string{"reason"}),
		PipelineRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "pipeline_running",
			Help:      "1 when the pipeline is active, 0 when shut down.",
		}),
		CurrentAQI: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_aqi",
			Help:      "Most recent AQI computed for each sensor.",
		}, []string{"sensor_id"}),
		FetchRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fetch_requests_total",
			Help:      "PurpleAir API requests by outcome.",
		}, []string{"outcome"}),
		FetchCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fetch_cache_total",
			Help:      "PurpleAir response cache lookups by result.",
		}, []string{"result"}),
		FetchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "fetch_duration_seconds",
			Help:      "PurpleAir API request duration in seconds.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
	}
}
