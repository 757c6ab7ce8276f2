package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/suite"
)

type MetricsTestSuite struct {
	suite.Suite
	registry *prometheus.Registry
	metrics  *PrometheusMetrics
}

func TestMetricsTestSuite(t *testing.T) {
	suite.Run(t, new(MetricsTestSuite))
}

func (s *MetricsTestSuite) SetupTest() {
	s.registry = prometheus.NewRegistry()
	s.metrics = NewPrometheusMetrics(s.registry)
}

// Test labeled counters
func (s *MetricsTestSuite) TestIncrementCounter() {
	s.metrics.IncrementCounter(ClientRequest, map[string]string{"operation": "scan", "status": "201"})
	s.metrics.IncrementCounter(ClientRequest, map[string]string{"operation": "scan", "status": "201"})
	s.metrics.IncrementCounter(APIError, map[string]string{"code": "RECEIPT_001", "status": "404"})
	s.metrics.IncrementCounter("unknown.metric", nil)

	s.Equal(2.0, testutil.ToFloat64(s.metrics.clientRequests.WithLabelValues("scan", "201")))
	s.Equal(1.0, testutil.ToFloat64(s.metrics.apiErrors.WithLabelValues("RECEIPT_001", "404")))
}

// Test histograms receive observations
func (s *MetricsTestSuite) TestRecordProcessingTime() {
	s.metrics.RecordProcessingTime(ClientRequest, 150*time.Millisecond)
	s.metrics.RecordProcessingTime(ExtractionDuration, 20*time.Millisecond)

	count, err := testutil.GatherAndCount(s.registry,
		"receipts_client_request_duration_seconds",
		"receipts_extraction_duration_milliseconds")
	s.Require().NoError(err)
	s.Equal(2, count)
}

// Test gauges
func (s *MetricsTestSuite) TestRecordGauge() {
	s.metrics.RecordGauge(CircuitBreakerState, 1, map[string]string{"service": "receipts-api"})

	s.Equal(1.0, testutil.ToFloat64(s.metrics.circuitBreakerState.WithLabelValues("receipts-api")))
}

// Test that separate registries do not collide
func (s *MetricsTestSuite) TestIndependentRegistries() {
	s.NotPanics(func() {
		NewPrometheusMetrics(prometheus.NewRegistry())
	})
}

func (s *MetricsTestSuite) TestNoop() {
	var r Recorder = Noop{}
	s.NotPanics(func() {
		r.IncrementCounter(ClientRequest, nil)
		r.RecordProcessingTime(ClientRequest, time.Second)
		r.RecordGauge(CircuitBreakerState, 2, nil)
	})
}
