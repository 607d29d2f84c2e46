// SPDX-FileCopyrightText: 2026 Mikołaj Kuranowski
// SPDX-License-Identifier: MIT

package metrics

import (
	"net/http"
	"time"

	"github.com/kmtabor/KMTimetable/extract"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "km_timetable"

// Metrics of periodic extraction runs.
type Metrics struct {
	registry *prometheus.Registry

	Rows        *prometheus.CounterVec
	Runs        *prometheus.CounterVec
	Duration    prometheus.Histogram
	LastSuccess prometheus.Gauge
	StoredRows  prometheus.Gauge
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)

	return &Metrics{
		registry: reg,
		Rows: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rows_total",
			Help:      "Rows recovered from PDF pages, by outcome.",
		}, []string{"outcome"}),
		Runs: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "runs_total",
			Help:      "Extraction runs, by result.",
		}, []string{"result"}),
		Duration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Duration of extraction runs.",
			Buckets:   prometheus.ExponentialBuckets(0.1, 2, 10),
		}),
		LastSuccess: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_success_timestamp_seconds",
			Help:      "Unix time of the last successful run.",
		}),
		StoredRows: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "stored_rows",
			Help:      "Rows written by the last successful run.",
		}),
	}
}

// ObserveRun records the outcome of a single run.
func (m *Metrics) ObserveRun(stats extract.Stats, stored int, took time.Duration, err error) {
	m.Duration.Observe(took.Seconds())
	if err != nil {
		m.Runs.WithLabelValues("failure").Inc()
		return
	}

	m.Runs.WithLabelValues("success").Inc()
	m.Rows.WithLabelValues("emitted").Add(float64(stats.Emitted))
	m.Rows.WithLabelValues("discarded").Add(float64(stats.Discarded))
	m.Rows.WithLabelValues("short").Add(float64(stats.Short))
	m.StoredRows.Set(float64(stored))
	m.LastSuccess.SetToCurrentTime()
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
