package app

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"tableflip.dev/eduhub/pkg/material"
	"tableflip.dev/eduhub/pkg/store"
)

// Metrics are the Service's prometheus collectors. A nil *Metrics records
// nothing.
type Metrics struct {
	MaterialsInserted *prometheus.CounterVec
	MaterialsRemoved  prometheus.Counter
	EventsTotal       prometheus.Gauge
	PersistFailures   *prometheus.CounterVec
	UploadDuration    prometheus.Histogram
}

// NewMetrics creates the collectors and registers them with reg when reg is
// not nil.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		MaterialsInserted: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "eduhub_materials_inserted_total",
				Help: "Total number of materials added to the catalog",
			},
			[]string{"kind"},
		),
		MaterialsRemoved: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "eduhub_materials_removed_total",
				Help: "Total number of materials removed from the catalog",
			},
		),
		EventsTotal: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "eduhub_events",
				Help: "Number of calendar events",
			},
		),
		PersistFailures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "eduhub_persist_failures_total",
				Help: "Total number of failed write-through attempts",
			},
			[]string{"slot"},
		),
		UploadDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "eduhub_upload_duration_seconds",
				Help:    "Simulated upload latency in seconds",
				Buckets: []float64{0.25, 0.5, 0.75, 1, 1.25, 1.5, 2},
			},
		),
	}
	if reg != nil {
		reg.MustRegister(
			m.MaterialsInserted,
			m.MaterialsRemoved,
			m.EventsTotal,
			m.PersistFailures,
			m.UploadDuration,
		)
	}
	return m
}

func (m *Metrics) inserted(r *material.Record) {
	if m == nil {
		return
	}
	m.MaterialsInserted.WithLabelValues(string(r.Kind())).Inc()
}

func (m *Metrics) removed() {
	if m == nil {
		return
	}
	m.MaterialsRemoved.Inc()
}

func (m *Metrics) eventsChanged(n int) {
	if m == nil {
		return
	}
	m.EventsTotal.Set(float64(n))
}

func (m *Metrics) persistFailed(slot store.Slot) {
	if m == nil {
		return
	}
	m.PersistFailures.WithLabelValues(string(slot)).Inc()
}

func (m *Metrics) uploadTook(d time.Duration) {
	if m == nil {
		return
	}
	m.UploadDuration.Observe(d.Seconds())
}
