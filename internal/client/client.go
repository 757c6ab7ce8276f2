// Package client is the gateway to the receipts REST API. Every failure it
// returns is an *APIError carrying a single user-facing message.
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"receipt-scanner/internal/config"
	apperrors "receipt-scanner/internal/errors"
	"receipt-scanner/internal/metrics"
)

const (
	// TraceHeader carries the per-request id shared with the API's logs
	TraceHeader = "X-Trace-ID"

	breakerService  = "receipts-api"
	maxErrorBodyLen = 64 << 10
)

// Client issues calls against one API base URL
type Client struct {
	baseURL    string
	httpClient *http.Client
	normalize  apperrors.Normalizer
	limiter    *rate.Limiter
	breaker    *CircuitBreaker
	metrics    metrics.Recorder
	logger     *slog.Logger
}

// Option customizes a Client
type Option func(*Client)

func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithNormalizer replaces the function turning failures into messages
func WithNormalizer(normalize apperrors.Normalizer) Option {
	return func(c *Client) {
		c.normalize = normalize
	}
}

// WithRateLimit throttles outgoing calls to rps with the given burst
func WithRateLimit(rps float64, burst int) Option {
	return func(c *Client) {
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

func WithCircuitBreaker(breaker *CircuitBreaker) Option {
	return func(c *Client) {
		c.breaker = breaker
	}
}

func WithMetrics(recorder metrics.Recorder) Option {
	return func(c *Client) {
		c.metrics = recorder
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// New creates a client for baseURL, e.g. "http://localhost:8000/api".
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 60 * time.Second},
		normalize:  apperrors.NormalizeMessage,
		metrics:    metrics.Noop{},
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.breaker != nil {
		recorder := c.metrics
		c.breaker.OnStateChange(func(state BreakerState) {
			recorder.RecordGauge(metrics.CircuitBreakerState, float64(state), map[string]string{"service": breakerService})
		})
	}
	return c
}

// NewFromConfig creates a client from the CLI configuration. Explicit
// options win over configured values.
func NewFromConfig(cfg config.ClientConfig, opts ...Option) *Client {
	base := []Option{WithHTTPClient(&http.Client{Timeout: cfg.Timeout})}
	if cfg.RateLimitPerSecond > 0 {
		base = append(base, WithRateLimit(cfg.RateLimitPerSecond, cfg.RateLimitBurst))
	}
	if cfg.CircuitBreakerThreshold > 0 {
		base = append(base, WithCircuitBreaker(NewCircuitBreaker(CircuitBreakerConfig{
			MaxFailures:     cfg.CircuitBreakerThreshold,
			ResetTimeout:    cfg.CircuitBreakerTimeout,
			HalfOpenMaxSucc: 1,
		})))
	}
	return New(cfg.BaseURL, append(base, opts...)...)
}

// BaseURL returns the API root the client talks to
func (c *Client) BaseURL() string {
	return c.baseURL
}

type request struct {
	operation   string
	method      string
	path        string
	query       url.Values
	body        io.Reader
	contentType string
}

// do sends req and returns the response only for 2xx statuses. The caller
// closes the body.
func (c *Client) do(ctx context.Context, req request) (*http.Response, string, error) {
	traceID := uuid.New().String()

	if c.breaker != nil && c.breaker.IsOpen() {
		c.metrics.IncrementCounter(metrics.ClientBreakerRejected, map[string]string{"operation": req.operation})
		c.logger.Warn("client.http.breaker_open", "req_id", traceID, "operation", req.operation)
		return nil, traceID, c.fail(req.operation, traceID, apperrors.RawError{Cause: ErrCircuitBreakerOpen})
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, traceID, c.fail(req.operation, traceID, apperrors.RawError{Cause: err})
		}
	}

	target := c.baseURL + req.path
	if len(req.query) > 0 {
		target += "?" + req.query.Encode()
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method, target, req.body)
	if err != nil {
		c.logger.Error("client.http.build_request_error", "req_id", traceID, "error", err)
		return nil, traceID, c.fail(req.operation, traceID, apperrors.RawError{Cause: err})
	}
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set(TraceHeader, traceID)
	if req.contentType != "" {
		httpReq.Header.Set("Content-Type", req.contentType)
	}

	c.logger.Info("client.http.request",
		"req_id", traceID,
		"operation", req.operation,
		"method", req.method,
		"path", req.path,
	)

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	elapsed := time.Since(start)
	c.metrics.RecordProcessingTime(metrics.ClientRequest, elapsed)

	if err != nil {
		c.recordFailure()
		c.metrics.IncrementCounter(metrics.ClientRequest, map[string]string{"operation": req.operation, "status": "network_error"})
		c.logger.Error("client.http.send_error", "req_id", traceID, "operation", req.operation, "error", err, "elapsed_ms", elapsed.Milliseconds())
		return nil, traceID, c.fail(req.operation, traceID, apperrors.RawError{Cause: err})
	}

	c.metrics.IncrementCounter(metrics.ClientRequest, map[string]string{"operation": req.operation, "status": strconv.Itoa(resp.StatusCode)})
	c.logger.Info("client.http.response",
		"req_id", traceID,
		"operation", req.operation,
		"status", resp.StatusCode,
		"elapsed_ms", elapsed.Milliseconds(),
	)

	if resp.StatusCode >= http.StatusBadRequest {
		defer resp.Body.Close()
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyLen))
		if resp.StatusCode >= http.StatusInternalServerError {
			c.recordFailure()
		} else {
			c.recordSuccess()
		}
		return nil, traceID, c.fail(req.operation, traceID, apperrors.RawError{
			StatusCode: resp.StatusCode,
			Detail:     apperrors.ParseDetail(raw),
		})
	}

	c.recordSuccess()
	return resp, traceID, nil
}

// doJSON sends req and decodes a JSON body into out when out is non-nil.
func (c *Client) doJSON(ctx context.Context, req request, out any) error {
	resp, traceID, err := c.do(ctx, req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if out == nil || resp.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		c.logger.Error("client.http.decode_error", "req_id", traceID, "operation", req.operation, "error", err)
		return &APIError{
			Operation:  req.operation,
			StatusCode: resp.StatusCode,
			TraceID:    traceID,
			Message:    apperrors.GetErrorMessage(apperrors.ResponseInvalid),
			Cause:      fmt.Errorf("decode %s response: %w", req.operation, err),
		}
	}
	return nil
}

func (c *Client) fail(operation, traceID string, raw apperrors.RawError) *APIError {
	return &APIError{
		Operation:  operation,
		StatusCode: raw.StatusCode,
		Detail:     raw.Detail,
		TraceID:    traceID,
		Message:    c.normalize(raw),
		Cause:      raw.Cause,
	}
}

func (c *Client) recordFailure() {
	if c.breaker != nil {
		c.breaker.RecordFailure()
	}
}

func (c *Client) recordSuccess() {
	if c.breaker != nil {
		c.breaker.RecordSuccess()
	}
}

// APIError is the only error type returned by Client methods
type APIError struct {
	Operation  string
	StatusCode int
	Detail     *string
	TraceID    string
	Message    string
	Cause      error
}

func (e *APIError) Error() string {
	return e.Message
}

func (e *APIError) Unwrap() error {
	return e.Cause
}

// HasResponse reports whether the server answered
func (e *APIError) HasResponse() bool {
	return e.StatusCode != 0
}

// IsNotFound reports whether err is an API 404
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}
