// Package metrics records converter activity as Prometheus metrics.
package metrics

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/sweble/parser-toolkit/xmlconv"
)

// Metrics is an xmlconv.Observer backed by its own Prometheus registry.
type Metrics struct {
	conversions *prometheus.CounterVec
	nodes       *prometheus.CounterVec
	duration    *prometheus.HistogramVec

	registry *prometheus.Registry
}

func New() *Metrics {
	m := &Metrics{
		conversions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ptk_conversions_total",
				Help: "Total number of conversions by operation and result",
			},
			[]string{"op", "result"},
		),
		nodes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ptk_nodes_total",
				Help: "Total number of nodes written or read",
			},
			[]string{"op"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "ptk_conversion_duration_seconds",
				Help:    "Conversion latency in seconds",
				Buckets: prometheus.ExponentialBuckets(0.0001, 4, 8),
			},
			[]string{"op"},
		),
		registry: prometheus.NewRegistry(),
	}
	m.registry.MustRegister(m.conversions, m.nodes, m.duration)
	return m
}

// Observe implements xmlconv.Observer.
func (m *Metrics) Observe(op string, nodes int, d time.Duration, err error) {
	m.conversions.WithLabelValues(op, Result(err)).Inc()
	m.nodes.WithLabelValues(op).Add(float64(nodes))
	m.duration.WithLabelValues(op).Observe(d.Seconds())
}

// Registry returns the registry holding the converter metrics.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// WriteToTextfile writes the metrics in the text exposition format, for
// the node exporter's textfile collector.
func (m *Metrics) WriteToTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}

// Result classifies a conversion error for the result label.
func Result(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, xmlconv.ErrUnknownType):
		return "unknown_type"
	case errors.Is(err, xmlconv.ErrAmbiguousType):
		return "ambiguous_type"
	case errors.Is(err, xmlconv.ErrDepth):
		return "depth"
	case errors.Is(err, xmlconv.ErrFormat):
		return "format"
	case errors.Is(err, xmlconv.ErrNoFactory), errors.Is(err, xmlconv.ErrConfig):
		return "config"
	default:
		return "error"
	}
}

var _ xmlconv.Observer = (*Metrics)(nil)
