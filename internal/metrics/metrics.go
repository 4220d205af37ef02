// Package metrics exports budget results as Prometheus metrics.
//
// Metrics live in a private registry and are written to a node_exporter
// textfile; nothing is served over HTTP.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"sizebudget/internal/budget"
	"sizebudget/internal/diag"
)

// Metrics holds the collectors for one run.
type Metrics struct {
	registry *prometheus.Registry

	sizeBytes          *prometheus.GaugeVec
	violationsTotal    *prometheus.CounterVec
	manifestsTotal     *prometheus.CounterVec
	evaluationDuration *prometheus.HistogramVec
	lastRun            prometheus.Gauge
}

// New creates and registers all collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)
	return &Metrics{
		registry: reg,
		sizeBytes: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "sizebudget_size_bytes",
				Help: "Measured size per manifest, budget type and label",
			},
			[]string{"manifest", "type", "label"},
		),
		violationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sizebudget_violations_total",
				Help: "Budget violations by manifest, severity and code",
			},
			[]string{"manifest", "severity", "code"},
		),
		manifestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sizebudget_manifests_total",
				Help: "Manifests processed by outcome",
			},
			[]string{"status"},
		),
		evaluationDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "sizebudget_stage_duration_seconds",
				Help:    "Per-manifest stage latency in seconds",
				Buckets: []float64{.0005, .001, .005, .01, .05, .1, .5, 1, 5},
			},
			[]string{"stage"},
		),
		lastRun: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "sizebudget_last_run_timestamp_seconds",
				Help: "Unix time of the last completed run",
			},
		),
	}
}

// Registry exposes the underlying registry, mainly for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// RecordSizes stores the sizes a rule measured in a manifest.
func (m *Metrics) RecordSizes(manifest string, typ budget.Type, sizes []budget.Size) {
	if m == nil {
		return
	}
	for _, s := range sizes {
		m.sizeBytes.WithLabelValues(manifest, string(typ), s.Label).Set(float64(s.Bytes))
	}
}

// RecordViolation counts one diagnostic.
func (m *Metrics) RecordViolation(manifest string, d diag.Diagnostic) {
	if m == nil {
		return
	}
	m.violationsTotal.WithLabelValues(manifest, d.Severity.Label(), d.Code.ID()).Inc()
}

// RecordManifest counts a processed manifest; failed marks a fatal error.
func (m *Metrics) RecordManifest(failed bool) {
	if m == nil {
		return
	}
	status := "ok"
	if failed {
		status = "failed"
	}
	m.manifestsTotal.WithLabelValues(status).Inc()
}

// ObserveStage records how long a stage took for one manifest.
func (m *Metrics) ObserveStage(stage string, d time.Duration) {
	if m == nil {
		return
	}
	m.evaluationDuration.WithLabelValues(stage).Observe(d.Seconds())
}

// Reporter returns a diag.Reporter that counts violations for manifest.
func (m *Metrics) Reporter(manifest string) diag.Reporter {
	return diag.FuncReporter(func(d diag.Diagnostic) {
		m.RecordViolation(manifest, d)
	})
}

// WriteFile stamps the run time and writes every metric to path in the text
// exposition format. The file is replaced atomically.
func (m *Metrics) WriteFile(path string, now time.Time) error {
	if m == nil {
		return nil
	}
	m.lastRun.Set(float64(now.Unix()))
	return prometheus.WriteToTextfile(path, m.registry)
}
