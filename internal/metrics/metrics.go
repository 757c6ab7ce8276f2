package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Counter, timing and gauge names understood by PrometheusMetrics
const (
	ClientRequest         = "client.request"
	ClientBreakerRejected = "client.breaker.rejected"
	UploadCompleted       = "upload.completed"
	BatchFileProcessed    = "batch.file.processed"
	APIError              = "api.error"
	ReceiptScanned        = "receipt.scanned"
	ExtractionDuration    = "extraction"
	CircuitBreakerState   = "circuit_breaker.state"
)

// Recorder receives counters, timings and gauges from clients and handlers
type Recorder interface {
	IncrementCounter(name string, tags map[string]string)
	RecordProcessingTime(name string, duration time.Duration)
	RecordGauge(name string, value float64, tags map[string]string)
}

type PrometheusMetrics struct {
	clientRequests        *prometheus.CounterVec
	clientRequestDuration prometheus.Histogram
	breakerRejected       *prometheus.CounterVec
	circuitBreakerState   *prometheus.GaugeVec
	uploadsCompleted      *prometheus.CounterVec
	batchFiles            *prometheus.CounterVec
	apiErrors             *prometheus.CounterVec
	receiptsScanned       *prometheus.CounterVec
	extractionDuration    prometheus.Histogram
}

// NewPrometheusMetrics registers the collectors on reg. Pass
// prometheus.DefaultRegisterer to expose them on the default /metrics handler.
func NewPrometheusMetrics(reg prometheus.Registerer) *PrometheusMetrics {
	factory := promauto.With(reg)
	return &PrometheusMetrics{
		clientRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "receipts_client_requests_total",
				Help: "Total number of API calls issued by the client",
			},
			[]string{"operation", "status"},
		),
		clientRequestDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "receipts_client_request_duration_seconds",
				Help:    "API call duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
		),
		breakerRejected: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "receipts_client_breaker_rejected_total",
				Help: "Calls rejected locally because the circuit breaker was open",
			},
			[]string{"operation"},
		),
		circuitBreakerState: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "circuit_breaker_state",
				Help: "Circuit breaker state (0=closed, 1=open, 2=half-open)",
			},
			[]string{"service"},
		),
		uploadsCompleted: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "receipts_uploads_completed_total",
				Help: "Upload lifecycles that reached a terminal state",
			},
			[]string{"kind", "outcome"},
		),
		batchFiles: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "receipts_batch_files_total",
				Help: "Files processed by batch scans",
			},
			[]string{"outcome"},
		),
		apiErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "api_errors_total",
				Help: "Total number of API errors by code and status",
			},
			[]string{"code", "status"},
		),
		receiptsScanned: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "receipts_scanned_total",
				Help: "Receipts scanned by the API",
			},
			[]string{"status"},
		),
		extractionDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "receipts_extraction_duration_milliseconds",
				Help:    "Receipt extraction duration in milliseconds",
				Buckets: prometheus.ExponentialBuckets(1, 2, 14),
			},
		),
	}
}

func (m *PrometheusMetrics) IncrementCounter(name string, tags map[string]string) {
	switch name {
	case ClientRequest:
		m.clientRequests.WithLabelValues(tags["operation"], tags["status"]).Inc()
	case ClientBreakerRejected:
		m.breakerRejected.WithLabelValues(tags["operation"]).Inc()
	case UploadCompleted:
		m.uploadsCompleted.WithLabelValues(tags["kind"], tags["outcome"]).Inc()
	case BatchFileProcessed:
		m.batchFiles.WithLabelValues(tags["outcome"]).Inc()
	case APIError:
		m.apiErrors.WithLabelValues(tags["code"], tags["status"]).Inc()
	case ReceiptScanned:
		m.receiptsScanned.WithLabelValues(tags["status"]).Inc()
	}
}

func (m *PrometheusMetrics) RecordProcessingTime(name string, duration time.Duration) {
	switch name {
	case ClientRequest:
		m.clientRequestDuration.Observe(duration.Seconds())
	case ExtractionDuration:
		m.extractionDuration.Observe(float64(duration.Milliseconds()))
	}
}

func (m *PrometheusMetrics) RecordGauge(name string, value float64, tags map[string]string) {
	switch name {
	case CircuitBreakerState:
		m.circuitBreakerState.WithLabelValues(tags["service"]).Set(value)
	}
}

// Noop discards everything
type Noop struct{}

func (Noop) IncrementCounter(string, map[string]string) {}
func (Noop) RecordProcessingTime(string, time.Duration) {}
func (Noop) RecordGauge(string, float64, map[string]string) {}
