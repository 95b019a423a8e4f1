package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the ET0 pipeline.
type Metrics struct {
	ObservationsConsumed prometheus.Counter
	ResultsProduced      prometheus.Counter
	RecordsRejected      *prometheus.CounterVec // labels: stage={parse,validation,computation}, field
	PipelineRunning      prometheus.Gauge

	// Batch processing metrics.
	BatchSize               prometheus.Histogram
	BatchProcessingDuration prometheus.Histogram

	// Distribution of computed reference evapotranspiration values.
	ET0Computed prometheus.Histogram
}

// NewMetrics creates and registers all pipeline metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		ObservationsConsumed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "et0",
			Name:      "observations_consumed_total",
			Help:      "Total observation records read from the source topic.",
		}),
		ResultsProduced: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "et0",
			Name:      "results_produced_total",
			Help:      "Total ET0 results written to the sink topic.",
		}),
		RecordsRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "et0",
			Name:      "records_rejected_total",
			Help:      "Rejected records by pipeline stage and offending field.",
		}, []string{"stage", "field"}),
		PipelineRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "et0",
			Name:      "pipeline_running",
			Help:      "1 when the pipeline is active, 0 when shut down.",
		}),
		BatchSize: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "et0",
			Name:      "batch_size",
			Help:      "Number of observations per batch extracted from Kafka.",
			Buckets:   []float64{1, 5, 10, 20, 30, 40, 50, 75, 100},
		}),
		BatchProcessingDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "et0",
			Name:      "batch_processing_duration_seconds",
			Help:      "Duration of a complete batch extract-transform-load cycle.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10},
		}),
		ET0Computed: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "et0",
			Name:      "reference_evapotranspiration_mm_per_day",
			Help:      "Distribution of computed daily ET0 values.",
			Buckets:   []float64{0, 1, 2, 3, 4, 5, 6, 8, 10, 12, 15},
		}),
	}

	prometheus.MustRegister(
		m.ObservationsConsumed,
		m.ResultsProduced,
		m.RecordsRejected,
		m.PipelineRunning,
		m.BatchSize,
		m.BatchProcessingDuration,
		m.ET0Computed,
	)

	return m
}

// NewMetricsForTesting creates Metrics with a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		ObservationsConsumed:    prometheus.NewCounter(prometheus.CounterOpts{Namespace: "et0", Name: "observations_consumed_total"}),
		ResultsProduced:         prometheus.NewCounter(prometheus.CounterOpts{Namespace: "et0", Name: "results_produced_total"}),
		RecordsRejected:         prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "et0", Name: "records_rejected_total"}, []string{"stage", "field"}),
		PipelineRunning:         prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "et0", Name: "pipeline_running"}),
		BatchSize:               prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "et0", Name: "batch_size"}),
		BatchProcessingDuration: prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "et0", Name: "batch_processing_duration_seconds"}),
		ET0Computed:             prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "et0", Name: "reference_evapotranspiration_mm_per_day"}),
	}
}
