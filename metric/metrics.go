// Package metric exposes pipeline counters for one or more log loads as
// Prometheus collectors.
package metric

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "spraylog"

// Metrics contains the pipeline collectors.
type Metrics struct {
	LinesTotal      *prometheus.CounterVec
	RecordsTotal    *prometheus.CounterVec
	AlignmentTotal  *prometheus.CounterVec
	AlignmentOffset prometheus.Histogram
	LoadDuration    prometheus.Gauge
}

// NewMetrics creates the collectors and registers them with reg. A nil
// reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		LinesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "lines_total",
				Help:      "Input lines by outcome (record, blank, malformed)",
			},
			[]string{"outcome"},
		),

		RecordsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "records_total",
				Help:      "Classified records by kind and outcome (decoded, header, malformed, excluded)",
			},
			[]string{"kind", "outcome"},
		),

		AlignmentTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "alignment",
				Name:      "samples_total",
				Help:      "Spray samples by alignment outcome (matched, gap)",
			},
			[]string{"outcome"},
		),

		AlignmentOffset: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "alignment",
				Name:      "offset_seconds",
				Help:      "Absolute time between a spray sample and its matched mission sample",
				Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 0.75, 1},
			},
		),

		LoadDuration: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "load_duration_seconds",
				Help:      "Wall time of the most recent log load",
			},
		),
	}

	if reg != nil {
		reg.MustRegister(m.LinesTotal, m.RecordsTotal, m.AlignmentTotal, m.AlignmentOffset, m.LoadDuration)
	}
	return m
}

// RecordLines adds n lines with the given outcome.
func (m *Metrics) RecordLines(outcome string, n int) {
	m.LinesTotal.WithLabelValues(outcome).Add(float64(n))
}

// RecordRecords adds n records of kind with the given outcome.
func (m *Metrics) RecordRecords(kind, outcome string, n int) {
	m.RecordsTotal.WithLabelValues(kind, outcome).Add(float64(n))
}

// RecordAlignment adds n spray samples with the given outcome.
func (m *Metrics) RecordAlignment(outcome string, n int) {
	m.AlignmentTotal.WithLabelValues(outcome).Add(float64(n))
}

// ObserveOffset records one match offset; the sign is discarded.
func (m *Metrics) ObserveOffset(d time.Duration) {
	if d < 0 {
		d = -d
	}
	m.AlignmentOffset.Observe(d.Seconds())
}

// SetLoadDuration records how long the last load took.
func (m *Metrics) SetLoadDuration(d time.Duration) {
	m.LoadDuration.Set(d.Seconds())
}

// WriteTextfile dumps everything g gathers in the node-exporter textfile
// format.
func WriteTextfile(path string, g prometheus.Gatherer) error {
	return prometheus.WriteToTextfile(path, g)
}
