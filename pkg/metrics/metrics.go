// Package metrics exposes Prometheus instrumentation for statement imports.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Import outcomes.
const (
	OutcomeImported = "imported"
	OutcomeEmpty    = "empty"
	OutcomeError    = "error"
)

// ImportMetrics records the result of each import.
type ImportMetrics struct {
	registry *prometheus.Registry
	imports  *prometheus.CounterVec
	rows     *prometheus.CounterVec
	duration prometheus.Histogram
}

// New registers the import collectors, plus Go runtime and process collectors,
// on a fresh registry.
func New() *ImportMetrics {
	reg := prometheus.NewRegistry()
	m := &ImportMetrics{
		registry: reg,
		imports: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "statement_imports_total",
			Help: "Statement imports by the strategy that recognized transactions and the outcome.",
		}, []string{"strategy", "outcome"}),
		rows: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "statement_import_rows_total",
			Help: "Statement rows by result: imported, failed or skipped.",
		}, []string{"result"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "statement_import_duration_seconds",
			Help:    "Time spent extracting and persisting one statement.",
			Buckets: prometheus.ExponentialBuckets(0.01, 2, 12),
		}),
	}
	reg.MustRegister(
		m.imports,
		m.rows,
		m.duration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// ObserveImport records one finished import. strategy is empty when no strategy
// recognized anything.
func (m *ImportMetrics) ObserveImport(strategy, outcome string, imported, failed, skipped int, elapsed time.Duration) {
	if strategy == "" {
		strategy = "none"
	}
	m.imports.WithLabelValues(strategy, outcome).Inc()
	m.rows.WithLabelValues("imported").Add(float64(imported))
	m.rows.WithLabelValues("failed").Add(float64(failed))
	m.rows.WithLabelValues("skipped").Add(float64(skipped))
	m.duration.Observe(elapsed.Seconds())
}

// Handler serves the registry in the Prometheus exposition format.
func (m *ImportMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
