package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors for the distance matrix client and
// the lookup pipeline.
type Metrics struct {
	// Distance matrix API metrics.
	APIRequests        *prometheus.CounterVec // labels: outcome={success,invalid,transport_error,service_error,empty,decode_error}
	APIDuration        prometheus.Histogram
	Elements           *prometheus.CounterVec // labels: status={OK,NOT_FOUND,ZERO_RESULTS,...}
	DroppedCoordinates *prometheus.CounterVec // labels: field={origins,destinations}

	// Lookup pipeline metrics.
	MessagesConsumed prometheus.Counter
	MessagesProduced prometheus.Counter
	ParseErrors      prometheus.Counter
	LookupOutcomes   *prometheus.CounterVec // labels: status={ok,invalid,failed}
	PipelineRunning  prometheus.Gauge

	BatchSize               prometheus.Histogram
	BatchProcessingDuration prometheus.Histogram
}

const namespace = "distance_matrix"

func newMetrics() *Metrics {
	return &Metrics{
		APIRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "api_requests_total",
			Help:      "Distance matrix lookups by outcome.",
		}, []string{"outcome"}),
		APIDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "api_duration_seconds",
			Help:      "Distance matrix API round-trip duration in seconds.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		Elements: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "elements_total",
			Help:      "Origin/destination elements returned by the service, by element status.",
		}, []string{"status"}),
		DroppedCoordinates: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "dropped_coordinates_total",
			Help:      "Malformed coordinates dropped from list inputs.",
		}, []string{"field"}),
		MessagesConsumed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "messages_consumed_total",
			Help:      "Total lookup requests read from the source topic.",
		}),
		MessagesProduced: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "messages_produced_total",
			Help:      "Total lookup responses written to the sink topic.",
		}),
		ParseErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "parse_errors_total",
			Help:      "Source messages skipped because they were not valid lookup requests.",
		}),
		LookupOutcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "lookups_total",
			Help:      "Lookup responses by status.",
		}, []string{"status"}),
		PipelineRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "pipeline_running",
			Help:      "1 when the pipeline is active, 0 when shut down.",
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
			Help:      "Duration of a complete batch extract-resolve-load cycle.",
			Buckets:   []float64{0.05, 0.1, 0.5, 1, 2.5, 5, 10, 30},
		}),
	}
}

// NewMetrics creates and registers all metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.APIRequests,
		m.APIDuration,
		m.Elements,
		m.DroppedCoordinates,
		m.MessagesConsumed,
		m.MessagesProduced,
		m.ParseErrors,
		m.LookupOutcomes,
		m.PipelineRunning,
		m.BatchSize,
		m.BatchProcessingDuration,
	)
	return m
}

// NewMetricsForTesting creates unregistered Metrics to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}
