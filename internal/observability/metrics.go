package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "urban_risk"

// Metrics holds the Prometheus counters, histograms, and gauges for the
// scoring API, the weather provider, and the forecast pipeline.
type Metrics struct {
	// Scoring metrics.
	Assessments   *prometheus.CounterVec // labels: operation, category
	ScoringErrors *prometheus.CounterVec // labels: operation, kind={invalid_input,undefined_risk,model_unavailable,internal}
	ModelLoaded   prometheus.Gauge

	// Forecast pipeline metrics.
	MessagesConsumed        prometheus.Counter
	MessagesProduced        prometheus.Counter
	TransformErrors         prometheus.Counter
	PipelineRunning         prometheus.Gauge
	BatchSize               prometheus.Histogram
	BatchProcessingDuration prometheus.Histogram

	// Weather provider metrics.
	ProviderRequests    *prometheus.CounterVec   // labels: endpoint={weather,forecast,air_pollution}, outcome={success,error,retry}
	ProviderCache       *prometheus.CounterVec   // labels: endpoint, result={hit,miss}
	ProviderAPIDuration *prometheus.HistogramVec // labels: endpoint
	ProviderEnabled     prometheus.Gauge
}

// NewMetrics creates and registers all metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.Assessments,
		m.ScoringErrors,
		m.ModelLoaded,
		m.MessagesConsumed,
		m.MessagesProduced,
		m.TransformErrors,
		m.PipelineRunning,
		m.BatchSize,
		m.BatchProcessingDuration,
		m.ProviderRequests,
		m.ProviderCache,
		m.ProviderAPIDuration,
		m.ProviderEnabled,
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
		Assessments: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "assessments_total",
			Help:      "Risk assessments produced by operation and category.",
		}, []string{"operation", "category"}),
		ScoringErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "scoring_errors_total",
			Help:      "Scoring failures by operation and error kind.",
		}, []string{"operation", "kind"}),
		ModelLoaded: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "regression_model_loaded",
			Help:      "1 when a regression artifact is loaded, 0 otherwise.",
		}),
		MessagesConsumed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "messages_consumed_total",
			Help:      "Total forecast messages read from the source topic.",
		}),
		MessagesProduced: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "messages_produced_total",
			Help:      "Total assessments written to the sink topic.",
		}),
		TransformErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "transform_errors_total",
			Help:      "Total forecast messages that could not be assessed.",
		}),
		PipelineRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "pipeline_running",
			Help:      "1 when the forecast pipeline is active, 0 when shut down.",
		}),
		BatchSize: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "batch_size",
			Help:      "Number of messages per batch extracted from Kafka.",
			Buckets:   []float64{1, 5, 10, 20, 30, 40, 50, 75, 100},
		}),
		BatchProcessingDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "batch_processing_duration_seconds",
			Help:      "Duration of a complete batch extract-assess-load cycle.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10},
		}),
		ProviderRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "provider_requests_total",
			Help:      "Weather provider requests by endpoint and outcome.",
		}, []string{"endpoint", "outcome"}),
		ProviderCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "provider_cache_total",
			Help:      "Weather provider cache lookups by endpoint and result.",
		}, []string{"endpoint", "result"}),
		ProviderAPIDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "provider_api_duration_seconds",
			Help:      "Weather provider request duration in seconds.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}, []string{"endpoint"}),
		ProviderEnabled: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "provider_enabled",
			Help:      "1 when the weather provider is enabled, 0 otherwise.",
		}),
	}
}
