package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/suite"

	apperrors "receipt-scanner/internal/errors"
	"receipt-scanner/internal/logging"
	"receipt-scanner/internal/validation"
)

// ErrorHandlerTestSuite defines the test suite for error handler middleware
type ErrorHandlerTestSuite struct {
	suite.Suite
	echo     *echo.Echo
	recorder *apiErrorRecorder
	handler  echo.HTTPErrorHandler
}

type apiErrorRecorder struct {
	tags []map[string]string
}

func (r *apiErrorRecorder) IncrementCounter(name string, tags map[string]string) {
	r.tags = append(r.tags, tags)
}
func (r *apiErrorRecorder) RecordProcessingTime(string, time.Duration) {}
func (r *apiErrorRecorder) RecordGauge(string, float64, map[string]string) {}

// SetupTest runs before each test
func (s *ErrorHandlerTestSuite) SetupTest() {
	s.echo = echo.New()
	s.recorder = &apiErrorRecorder{}
	s.handler = NewHTTPErrorHandler(s.recorder, logging.Discard())
	s.echo.HTTPErrorHandler = s.handler
}

// TestErrorHandlerTestSuite runs the test suite
func TestErrorHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(ErrorHandlerTestSuite))
}

func (s *ErrorHandlerTestSuite) serve(err error) (*httptest.ResponseRecorder, apperrors.ErrorResponse) {
	req := httptest.NewRequest(http.MethodGet, "/api/receipts", nil)
	rec := httptest.NewRecorder()
	c := s.echo.NewContext(req, rec)
	c.Set(TraceIDContextKey, "test-trace-id")

	s.handler(err, c)

	var body apperrors.ErrorResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &body))
	return rec, body
}

func (s *ErrorHandlerTestSuite) TestEchoHTTPError_UsesCodeMessage() {
	rec, body := s.serve(echo.NewHTTPError(http.StatusNotFound, "Not Found"))

	s.Equal(http.StatusNotFound, rec.Code)
	s.Equal(string(apperrors.RequestNotFound), body.Code)
	s.Equal("データが見つかりません", body.Detail)
	s.Equal("test-trace-id", body.TraceID)
}

func (s *ErrorHandlerTestSuite) TestBodyLimit_PayloadTooLarge() {
	rec, body := s.serve(echo.ErrStatusRequestEntityTooLarge)

	s.Equal(http.StatusRequestEntityTooLarge, rec.Code)
	s.Equal(string(apperrors.RequestPayloadTooLarge), body.Code)
	s.Equal("ファイルサイズが大きすぎます", body.Detail)
}

func (s *ErrorHandlerTestSuite) TestValidationErrors_Unprocessable() {
	type query struct {
		Month int `json:"month" validate:"min=1,max=12"`
	}
	err := validation.GetValidator().Struct(query{Month: 13})
	var fieldErrs validator.ValidationErrors
	s.Require().True(errors.As(err, &fieldErrs))

	rec, body := s.serve(err)

	s.Equal(http.StatusUnprocessableEntity, rec.Code)
	s.Equal(string(apperrors.ValidationGeneral), body.Code)
	s.Contains(body.Detail, "month")
}

func (s *ErrorHandlerTestSuite) TestGenericError_HidesInternals() {
	rec, body := s.serve(errors.New("pq: relation receipts does not exist"))

	s.Equal(http.StatusInternalServerError, rec.Code)
	s.Equal(string(apperrors.SystemInternalError), body.Code)
	s.NotContains(body.Detail, "relation")
}

func (s *ErrorHandlerTestSuite) TestCountsErrors() {
	s.serve(echo.NewHTTPError(http.StatusTooManyRequests))

	s.Require().Len(s.recorder.tags, 1)
	s.Equal(map[string]string{"code": string(apperrors.RequestRateLimited), "status": "429"}, s.recorder.tags[0])
}

func (s *ErrorHandlerTestSuite) TestNoTraceID() {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := s.echo.NewContext(req, rec)

	s.handler(errors.New("test error"), c)

	s.Equal(http.StatusInternalServerError, rec.Code)
	s.Contains(rec.Body.String(), "unknown")
}

func (s *ErrorHandlerTestSuite) TestCommittedResponse() {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := s.echo.NewContext(req, rec)
	_ = c.JSON(http.StatusOK, map[string]string{"status": "ok"})

	s.handler(errors.New("late error"), c)

	s.Equal(http.StatusOK, rec.Code)
	s.NotContains(rec.Body.String(), "SYSTEM_001")
	s.Empty(s.recorder.tags)
}
