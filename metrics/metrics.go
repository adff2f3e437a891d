// Package metrics holds the Prometheus collectors for upstream calls, cache
// lookups and background refreshes.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	registry *prometheus.Registry

	UpstreamRequests *prometheus.CounterVec
	UpstreamDuration *prometheus.HistogramVec
	CacheLookups     *prometheus.CounterVec
	RefreshRuns      *prometheus.CounterVec
}

func New() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,

		UpstreamRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rankings_upstream_requests_total",
				Help: "Requests made to upstream data providers",
			},
			[]string{"provider", "outcome"},
		),
		UpstreamDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "rankings_upstream_request_duration_seconds",
				Help:    "Latency of upstream provider requests",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"provider"},
		),
		CacheLookups: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rankings_cache_lookups_total",
				Help: "Cache lookups by result",
			},
			[]string{"result"},
		),
		RefreshRuns: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rankings_refresh_runs_total",
				Help: "Background cache refresh runs by status",
			},
			[]string{"status"},
		),
	}

	registry.MustRegister(
		m.UpstreamRequests,
		m.UpstreamDuration,
		m.CacheLookups,
		m.RefreshRuns,
	)

	return m
}

// Handler serves the metrics in this registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// The helpers below accept a nil receiver so components can run without metrics.

func (m *Metrics) ObserveUpstream(provider, outcome string, d time.Duration) {
	if m == nil {
		return
	}
	m.UpstreamRequests.WithLabelValues(provider, outcome).Inc()
	m.UpstreamDuration.WithLabelValues(provider).Observe(d.Seconds())
}

func (m *Metrics) CacheHit() {
	if m == nil {
		return
	}
	m.CacheLookups.WithLabelValues("hit").Inc()
}

func (m *Metrics) CacheMiss() {
	if m == nil {
		return
	}
	m.CacheLookups.WithLabelValues("miss").Inc()
}

func (m *Metrics) RefreshRun(status string) {
	if m == nil {
		return
	}
	m.RefreshRuns.WithLabelValues(status).Inc()
}
