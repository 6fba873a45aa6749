package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsRecorder covers the request lifecycle and the session store.
// It satisfies httpclient.IHttpStatusHandler and session.MetricsRecorder.
type MetricsRecorder interface {
	OnStage(stage string)
	OnRequest(status string)
	ObserveRequestDuration(outcome string, d time.Duration)
	RecordStoreError(backend, kind string)
	UpdateStoreKeys(backend string, count int64)
}

type NoopMetrics struct{}

func NewNoopMetrics() MetricsRecorder {
	return &NoopMetrics{}
}

func (n *NoopMetrics) OnStage(stage string) {}

func (n *NoopMetrics) OnRequest(status string) {}

func (n *NoopMetrics) ObserveRequestDuration(outcome string, d time.Duration) {}

func (n *NoopMetrics) RecordStoreError(backend, kind string) {}

func (n *NoopMetrics) UpdateStoreKeys(backend string, count int64) {}

type PrometheusMetrics struct {
	stages          *prometheus.CounterVec
	requests        *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	storeErrors     *prometheus.CounterVec
	storeKeys       *prometheus.GaugeVec
}

func NewPrometheusMetrics() MetricsRecorder {
	return &PrometheusMetrics{
		stages:          RequestStages,
		requests:        Requests,
		requestDuration: RequestDuration,
		storeErrors:     StoreErrors,
		storeKeys:       StoreKeys,
	}
}

func (p *PrometheusMetrics) OnStage(stage string) {
	p.stages.WithLabelValues(stage).Inc()
}

func (p *PrometheusMetrics) OnRequest(status string) {
	p.requests.WithLabelValues(status).Inc()
}

func (p *PrometheusMetrics) ObserveRequestDuration(outcome string, d time.Duration) {
	p.requestDuration.WithLabelValues(outcome).Observe(d.Seconds())
}

func (p *PrometheusMetrics) RecordStoreError(backend, kind string) {
	p.storeErrors.WithLabelValues(backend, kind).Inc()
}

func (p *PrometheusMetrics) UpdateStoreKeys(backend string, count int64) {
	p.storeKeys.WithLabelValues(backend).Set(float64(count))
}

var (
	// RequestStages counts lifecycle stages reached by outgoing requests
	RequestStages = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "dashboard_client_request_stages_total",
		Help: "The total number of lifecycle stages reached by outgoing requests",
	}, []string{"stage"}) // stage: "opened", "headers_received", "loading", "done"

	// Requests counts completed requests by outcome
	Requests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "dashboard_client_requests_total",
		Help: "The total number of completed requests",
	}, []string{"outcome"}) // outcome: "succeeded", "failed"

	RequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "dashboard_client_request_duration_seconds",
		Help:    "Time from opening a request to its completion",
		Buckets: prometheus.DefBuckets,
	}, []string{"outcome"})

	StoreErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "dashboard_client_session_store_errors_total",
		Help: "Session store errors by backend and kind",
	}, []string{"backend", "kind"})

	StoreKeys = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "dashboard_client_session_store_keys",
		Help: "Number of keys held by the session store",
	}, []string{"backend"})
)
