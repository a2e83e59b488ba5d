package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the server's Prometheus instruments.
type Metrics struct {
	activeSessions prometheus.Gauge
	sessionsTotal  prometheus.Counter
	eventsTotal    *prometheus.CounterVec
	eventDuration  *prometheus.HistogramVec
	commitsTotal   prometheus.Counter
	patchesSent    prometheus.Counter
	patchBytes     prometheus.Counter
	wsErrors       *prometheus.CounterVec
	renderErrors   prometheus.Counter
}

// NewMetrics registers the server's instruments with the given
// registry. Pass prometheus.DefaultRegisterer in production; tests
// pass their own registry to avoid duplicate registration.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		activeSessions: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "atomico",
			Name:      "active_sessions",
			Help:      "Number of connected live sessions",
		}),
		sessionsTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "atomico",
			Name:      "sessions_total",
			Help:      "Total number of sessions created",
		}),
		eventsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "atomico",
			Name:      "events_total",
			Help:      "Total number of client events processed",
		}, []string{"type", "status"}),
		eventDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "atomico",
			Name:      "event_duration_seconds",
			Help:      "Event dispatch and re-render duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"type"}),
		commitsTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "atomico",
			Name:      "commits_total",
			Help:      "Total number of commits streamed to clients",
		}),
		patchesSent: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "atomico",
			Name:      "patches_sent_total",
			Help:      "Total number of patch operations sent to clients",
		}),
		patchBytes: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "atomico",
			Name:      "patch_bytes_total",
			Help:      "Total patch frame payload bytes sent",
		}),
		wsErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "atomico",
			Name:      "websocket_errors_total",
			Help:      "Total WebSocket errors by type",
		}, []string{"type"}),
		renderErrors: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "atomico",
			Name:      "render_errors_total",
			Help:      "Total render and effect failures",
		}),
	}
}
