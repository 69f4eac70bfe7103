// Package metrics counts what a processing batch did and writes the result
// in the Prometheus text format, for node_exporter's textfile collector or
// a pushgateway sidecar.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns the report pipeline metrics.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	constLabels      map[string]string
	registry         *prometheus.Registry

	reportsProcessed   prometheus.Counter
	reportsSkipped     prometheus.Counter
	reportsFailed      *prometheus.CounterVec
	damagesMerged      prometheus.Counter
	processingDuration prometheus.Histogram
	reportPlayers      prometheus.Histogram
}

// NewManager creates a metrics manager. Without WithPrometheusRegistry the
// metrics go to a fresh registry, so Go runtime metrics are not exported.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "mcreports",
		subsystem:        "pipeline",
		histogramBuckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.registry == nil {
		m.registry = prometheus.NewRegistry()
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() {
	f := promauto.With(m.registry)

	m.reportsProcessed = f.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "reports_processed_total",
		Help:        "Raw reports successfully turned into processed reports.",
		ConstLabels: m.constLabels,
	})
	m.reportsSkipped = f.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "reports_skipped_total",
		Help:        "Raw reports skipped because an identical one was already stored.",
		ConstLabels: m.constLabels,
	})
	m.reportsFailed = f.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "reports_failed_total",
		Help:        "Raw reports that could not be processed, by error code.",
		ConstLabels: m.constLabels,
	}, []string{"code"})
	m.damagesMerged = f.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "damages_merged_total",
		Help:        "Raw damage entries folded into a previous damage.",
		ConstLabels: m.constLabels,
	})
	m.processingDuration = f.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "processing_duration_seconds",
		Help:        "Time spent aggregating a single report.",
		Buckets:     m.histogramBuckets,
		ConstLabels: m.constLabels,
	})
	m.reportPlayers = f.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "report_players",
		Help:        "Players per processed report.",
		Buckets:     prometheus.LinearBuckets(10, 10, 10),
		ConstLabels: m.constLabels,
	})
}

// RecordProcessed records one successful report.
func (m *Manager) RecordProcessed(d time.Duration, players int) {
	m.reportsProcessed.Inc()
	m.processingDuration.Observe(d.Seconds())
	m.reportPlayers.Observe(float64(players))
}

// RecordSkipped records a report skipped as a duplicate.
func (m *Manager) RecordSkipped() { m.reportsSkipped.Inc() }

// RecordFailure records a failed report under its error code.
func (m *Manager) RecordFailure(code string) {
	m.reportsFailed.WithLabelValues(code).Inc()
}

// RecordDamagesMerged adds the number of raw damages absorbed by merging.
// Negative values are ignored.
func (m *Manager) RecordDamagesMerged(n int) {
	if n > 0 {
		m.damagesMerged.Add(float64(n))
	}
}

// Registry exposes the underlying registry.
func (m *Manager) Registry() *prometheus.Registry { return m.registry }

// WriteTextfile atomically writes every metric to path.
func (m *Manager) WriteTextfile(path string) error {
	if path == "" {
		return ErrNoTextfile
	}
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
