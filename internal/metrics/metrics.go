// Package metrics records parse outcomes in a Prometheus registry.
package metrics

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/shapestone/shape-csvtable/pkg/csv"
)

const namespace = "csvtable"

// Parse result label values.
const (
	ResultOK    = "ok"
	ResultError = "error"
)

// Metrics holds the parse collectors.
type Metrics struct {
	ParseTotal    *prometheus.CounterVec
	ParseErrors   *prometheus.CounterVec
	ParseDuration *prometheus.HistogramVec
	ParseRows     prometheus.Histogram
}

// NewMetrics creates the parse collectors without registering them.
func NewMetrics() *Metrics {
	return &Metrics{
		ParseTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "parse_total",
				Help:      "Total number of parse calls",
			},
			[]string{"source", "result"},
		),

		ParseErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "parse_errors_total",
				Help:      "Total number of parse errors by kind",
			},
			[]string{"kind"},
		),

		ParseDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "parse_duration_seconds",
				Help:      "Parse duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"source"},
		),

		ParseRows: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "parse_rows",
				Help:      "Rows per successfully parsed table",
				Buckets:   prometheus.ExponentialBuckets(1, 4, 10),
			},
		),
	}
}

// Registry owns a Prometheus registry with the parse metrics and the Go
// runtime collectors registered.
type Registry struct {
	prometheusRegistry *prometheus.Registry
	Metrics            *Metrics
}

// NewRegistry creates a registry with all collectors registered.
func NewRegistry() *Registry {
	r := &Registry{
		prometheusRegistry: prometheus.NewRegistry(),
		Metrics:            NewMetrics(),
	}

	r.prometheusRegistry.MustRegister(
		r.Metrics.ParseTotal,
		r.Metrics.ParseErrors,
		r.Metrics.ParseDuration,
		r.Metrics.ParseRows,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return r
}

// PrometheusRegistry returns the underlying Prometheus registry.
func (r *Registry) PrometheusRegistry() *prometheus.Registry {
	return r.prometheusRegistry
}

// Observe records one parse call from source that took elapsed.
// table is ignored when err is non-nil.
func (m *Metrics) Observe(source string, elapsed time.Duration, table *csv.Table, err error) {
	m.ParseDuration.WithLabelValues(source).Observe(elapsed.Seconds())

	if err != nil {
		m.ParseTotal.WithLabelValues(source, ResultError).Inc()
		m.ParseErrors.WithLabelValues(ErrorKindLabel(err)).Inc()
		return
	}
	m.ParseTotal.WithLabelValues(source, ResultOK).Inc()
	m.ParseRows.Observe(float64(table.Len()))
}

// Parse parses data with csv.Parse and records the outcome under source.
func (m *Metrics) Parse(source string, data []byte) (*csv.Table, error) {
	start := time.Now()
	table, err := csv.Parse(data)
	m.Observe(source, time.Since(start), table, err)
	return table, err
}

// ErrorKindLabel returns the label for err: the ParseError kind name, or
// "io" for anything else.
func ErrorKindLabel(err error) string {
	var pe *csv.ParseError
	if errors.As(err, &pe) {
		return pe.Kind.String()
	}
	return "io"
}
