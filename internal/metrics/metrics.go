package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the notice engine.
type Metrics struct {
	NoticesShownTotal        *prometheus.CounterVec
	NoticesClosedTotal       *prometheus.CounterVec
	CandidateFetchFailures   prometheus.Counter
	EngagementRecordFailures *prometheus.CounterVec

	APIRequestsTotal          *prometheus.CounterVec
	APIRequestDurationSeconds *prometheus.HistogramVec

	registry *prometheus.Registry
}

// New creates a Metrics instance with all collectors registered on a
// fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		NoticesShownTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "notices_shown_total",
				Help: "Total number of notices that transitioned to visible",
			},
			[]string{"mode"},
		),
		NoticesClosedTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "notices_closed_total",
				Help: "Total number of display sessions closed",
			},
			[]string{"reason"},
		),
		CandidateFetchFailures: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "notice_candidate_fetch_failures_total",
				Help: "Total number of failed candidate pool fetches",
			},
		),
		EngagementRecordFailures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "engagement_record_failures_total",
				Help: "Total number of failed view/click recordings",
			},
			[]string{"op"},
		),
		APIRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "api_requests_total",
				Help: "Total number of API requests",
			},
			[]string{"method", "path", "status"},
		),
		APIRequestDurationSeconds: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "api_request_duration_seconds",
				Help:    "API request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
		registry: reg,
	}

	reg.MustRegister(
		m.NoticesShownTotal,
		m.NoticesClosedTotal,
		m.CandidateFetchFailures,
		m.EngagementRecordFailures,
		m.APIRequestsTotal,
		m.APIRequestDurationSeconds,
	)
	return m
}

// Handler returns the exposition endpoint for this registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// NoticeShown implements the engine's metrics sink.
func (m *Metrics) NoticeShown(mode string) {
	m.NoticesShownTotal.WithLabelValues(mode).Inc()
}

// NoticeClosed counts a closed display session by trigger.
func (m *Metrics) NoticeClosed(reason string) {
	m.NoticesClosedTotal.WithLabelValues(reason).Inc()
}

// FetchFailure counts a degraded candidate fetch.
func (m *Metrics) FetchFailure() {
	m.CandidateFetchFailures.Inc()
}

// RecordFailure counts a dropped engagement recording.
func (m *Metrics) RecordFailure(op string) {
	m.EngagementRecordFailures.WithLabelValues(op).Inc()
}
