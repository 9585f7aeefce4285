// Package metrics holds the prometheus collectors for the vouch service.
// All methods are safe on a nil *Metrics so services can run without them.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Mint outcomes.
const (
	OutcomeMinted     = "minted"
	OutcomeFailed     = "failed"
	OutcomeTimeout    = "timeout"
	OutcomeUnrecorded = "unrecorded"
	OutcomeUnknown    = "unknown"
)

type Metrics struct {
	RequestsSubmitted  prometheus.Counter
	RequestTransitions *prometheus.CounterVec
	MintAttempts       *prometheus.CounterVec
	MintDuration       prometheus.Histogram
	MintAnomalies      *prometheus.CounterVec
	UnsettledIntents   prometheus.Gauge
	HTTPRequests       *prometheus.CounterVec
	HTTPDuration       *prometheus.HistogramVec

	gatherer prometheus.Gatherer
}

// New registers the collectors with reg. Pass prometheus.NewRegistry() in
// tests to avoid duplicate registration.
func New(reg *prometheus.Registry) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		RequestsSubmitted: f.NewCounter(prometheus.CounterOpts{
			Name: "vouch_requests_submitted_total",
			Help: "Credential requests submitted",
		}),
		RequestTransitions: f.NewCounterVec(prometheus.CounterOpts{
			Name: "vouch_request_transitions_total",
			Help: "Credential requests leaving pending, by new status",
		}, []string{"status"}),
		MintAttempts: f.NewCounterVec(prometheus.CounterOpts{
			Name: "vouch_mint_attempts_total",
			Help: "Issuer calls by outcome",
		}, []string{"outcome"}),
		MintDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "vouch_mint_duration_seconds",
			Help:    "Duration of issuer mintAndTransfer calls",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}),
		MintAnomalies: f.NewCounterVec(prometheus.CounterOpts{
			Name: "vouch_mint_anomalies_total",
			Help: "Mints whose outcome is unknown or could not be recorded, by kind",
		}, []string{"kind"}),
		UnsettledIntents: f.NewGauge(prometheus.GaugeOpts{
			Name: "vouch_mint_unsettled_intents",
			Help: "Mint intents in unrecorded or stale state awaiting manual reconciliation",
		}),
		HTTPRequests: f.NewCounterVec(prometheus.CounterOpts{
			Name: "vouch_http_requests_total",
			Help: "HTTP requests by route and status code",
		}, []string{"route", "code"}),
		HTTPDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "vouch_http_request_duration_seconds",
			Help:    "HTTP request latency by route",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),
		gatherer: reg,
	}
}

func (m *Metrics) IncSubmitted() {
	if m != nil {
		m.RequestsSubmitted.Inc()
	}
}

func (m *Metrics) IncTransition(status string) {
	if m != nil {
		m.RequestTransitions.WithLabelValues(status).Inc()
	}
}

// ObserveMint records one issuer call.
func (m *Metrics) ObserveMint(outcome string, d time.Duration) {
	if m != nil {
		m.MintAttempts.WithLabelValues(outcome).Inc()
		m.MintDuration.Observe(d.Seconds())
	}
}

func (m *Metrics) IncAnomaly(kind string) {
	if m != nil {
		m.MintAnomalies.WithLabelValues(kind).Inc()
	}
}

func (m *Metrics) SetUnsettled(n int64) {
	if m != nil {
		m.UnsettledIntents.Set(float64(n))
	}
}

// Handler serves the registry in the prometheus text format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

// Instrument wraps h so that every response is counted under route.
func (m *Metrics) Instrument(route string, h http.Handler) http.Handler {
	if m == nil {
		return h
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		h.ServeHTTP(sw, r)
		m.HTTPRequests.WithLabelValues(route, strconv.Itoa(sw.status)).Inc()
		m.HTTPDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}
