// Package metrics exposes Prometheus collectors for the gate device: sync
// outcomes, lookups and connectivity.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "gateguard"

// Label values.
const (
	ResultSuccess = "success"
	ResultFailure = "failure"

	LookupPlate = "plate"
	LookupID    = "id"
	LookupQR    = "qr"

	OutcomeFound    = "found"
	OutcomeNotFound = "not_found"
	OutcomeError    = "error"
)

// Metrics groups the collectors. A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	syncsTotal      *prometheus.CounterVec
	syncDuration    prometheus.Histogram
	skippedRecords  prometheus.Counter
	cachedPasses    prometheus.Gauge
	lastSyncSuccess prometheus.Gauge
	lookupsTotal    *prometheus.CounterVec
	online          prometheus.Gauge
}

// New registers the collectors on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)

	return &Metrics{
		registry: reg,
		syncsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "syncs_total",
			Help:      "Sync runs by result.",
		}, []string{"result"}),
		syncDuration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "sync_duration_seconds",
			Help:      "Duration of sync runs.",
			Buckets:   []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 30},
		}),
		skippedRecords: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sync_skipped_records_total",
			Help:      "Remote records dropped during normalization.",
		}),
		cachedPasses: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "cached_passes",
			Help:      "Passes held by the local store after the last successful sync.",
		}),
		lastSyncSuccess: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_sync_success_timestamp_seconds",
			Help:      "Unix time of the last successful sync.",
		}),
		lookupsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "lookups_total",
			Help:      "Verification lookups by kind and outcome.",
		}, []string{"kind", "outcome"}),
		online: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "online",
			Help:      "1 when the directory is reachable.",
		}),
	}
}

// ObserveSync records one sync run.
func (m *Metrics) ObserveSync(success bool, passCount, skipped int, took time.Duration, at time.Time) {
	if m == nil {
		return
	}
	m.syncDuration.Observe(took.Seconds())
	m.skippedRecords.Add(float64(skipped))
	if !success {
		m.syncsTotal.WithLabelValues(ResultFailure).Inc()
		return
	}
	m.syncsTotal.WithLabelValues(ResultSuccess).Inc()
	m.cachedPasses.Set(float64(passCount))
	m.lastSyncSuccess.Set(float64(at.Unix()))
}

// ObserveLookup records one verification lookup.
func (m *Metrics) ObserveLookup(kind, outcome string) {
	if m == nil {
		return
	}
	m.lookupsTotal.WithLabelValues(kind, outcome).Inc()
}

// SetOnline records the connectivity state.
func (m *Metrics) SetOnline(online bool) {
	if m == nil {
		return
	}
	if online {
		m.online.Set(1)
	} else {
		m.online.Set(0)
	}
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
