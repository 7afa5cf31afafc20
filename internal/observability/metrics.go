package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// station feature pipeline.
type Metrics struct {
	RecordsConsumed  prometheus.Counter
	FeaturesProduced prometheus.Counter
	TransformErrors  prometheus.Counter
	PipelineRunning  prometheus.Gauge

	// Batch processing metrics.
	BatchSize               prometheus.Histogram
	BatchProcessingDuration prometheus.Histogram

	// Zone enrichment metrics.
	ZoneLookups       *prometheus.CounterVec // labels: result={hit,miss}
	ZoneFetchDuration prometheus.Histogram
	ZonesIndexed      prometheus.Gauge
	ZonesEnabled      prometheus.Gauge
}

// NewMetrics creates and registers all pipeline metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		RecordsConsumed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "station_etl",
			Name:      "records_consumed_total",
			Help:      "Total station records read from the source topic.",
		}),
		FeaturesProduced: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "station_etl",
			Name:      "features_produced_total",
			Help:      "Total point features written to the sink topic.",
		}),
		TransformErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "station_etl",
			Name:      "transform_errors_total",
			Help:      "Total parse, geometry, and assembly failures.",
		}),
		PipelineRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "station_etl",
			Name:      "pipeline_running",
			Help:      "1 when the pipeline is active, 0 when shut down.",
		}),
		BatchSize: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "station_etl",
			Name:      "batch_size",
			Help:      "Number of records per batch extracted from Kafka.",
			Buckets:   []float64{1, 5, 10, 20, 30, 40, 50, 75, 100},
		}),
		BatchProcessingDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "station_etl",
			Name:      "batch_processing_duration_seconds",
			Help:      "Duration of a complete batch extract-transform-load cycle.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10},
		}),
		ZoneLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "station_etl",
			Name:      "zone_lookups_total",
			Help:      "Point-in-zone lookups by result.",
		}, []string{"result"}),
		ZoneFetchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "station_etl",
			Name:      "zone_fetch_duration_seconds",
			Help:      "Zone polygon endpoint request duration in seconds.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}),
		ZonesIndexed: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "station_etl",
			Name:      "zones_indexed",
			Help:      "Number of zone polygons in the spatial index.",
		}),
		ZonesEnabled: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "station_etl",
			Name:      "zones_enabled",
			Help:      "1 when zone enrichment is enabled, 0 otherwise.",
		}),
	}

	prometheus.MustRegister(
		m.RecordsConsumed,
		m.FeaturesProduced,
		m.TransformErrors,
		m.PipelineRunning,
		m.BatchSize,
		m.BatchProcessingDuration,
		m.ZoneLookups,
		m.ZoneFetchDuration,
		m.ZonesIndexed,
		m.ZonesEnabled,
	)

	return m
}

// NewMetricsForTesting creates Metrics with a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		RecordsConsumed:         prometheus.NewCounter(prometheus.CounterOpts{Namespace: "station_etl", Name: "records_consumed_total"}),
		FeaturesProduced:        prometheus.NewCounter(prometheus.CounterOpts{Namespace: "station_etl", Name: "features_produced_total"}),
		TransformErrors:         prometheus.NewCounter(prometheus.CounterOpts{Namespace: "station_etl", Name: "transform_errors_total"}),
		PipelineRunning:         prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "station_etl", Name: "pipeline_running"}),
		BatchSize:               prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "station_etl", Name: "batch_size"}),
		BatchProcessingDuration: prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "station_etl", Name: "batch_processing_duration_seconds"}),
		ZoneLookups:             prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "station_etl", Name: "zone_lookups_total"}, []string{"result"}),
		ZoneFetchDuration:       prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "station_etl", Name: "zone_fetch_duration_seconds"}),
		ZonesIndexed:            prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "station_etl", Name: "zones_indexed"}),
		ZonesEnabled:            prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "station_etl", Name: "zones_enabled"}),
	}
}
