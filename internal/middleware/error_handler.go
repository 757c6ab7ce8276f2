package middleware

import (
	stderrors "errors"
	"log/slog"
	"net/http"
	"strconv"

	"receipt-scanner/internal/errors"
	"receipt-scanner/internal/metrics"
	"receipt-scanner/internal/validation"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// NewHTTPErrorHandler returns an Echo error handler that writes every error
// as a standardized {detail, code, trace_id} body and counts it
func NewHTTPErrorHandler(recorder metrics.Recorder, logger *slog.Logger) echo.HTTPErrorHandler {
	if recorder == nil {
		recorder = metrics.Noop{}
	}
	if logger == nil {
		logger = slog.Default()
	}

	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		traceID := GetTraceID(c)
		if traceID == "" {
			traceID = "unknown"
		}

		errorResponse, httpStatus := toErrorResponse(err, traceID)

		logLevel := slog.LevelWarn
		if httpStatus >= http.StatusInternalServerError {
			logLevel = slog.LevelError
		}
		logger.Log(c.Request().Context(), logLevel, "http.error",
			"trace_id", traceID,
			"error_code", errorResponse.Code,
			"status", httpStatus,
			"path", c.Request().URL.Path,
			"method", c.Request().Method,
			"error", err.Error(),
		)

		recorder.IncrementCounter(metrics.APIError, map[string]string{
			"code":   errorResponse.Code,
			"status": strconv.Itoa(httpStatus),
		})

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(httpStatus)
		} else {
			err = c.JSON(httpStatus, errorResponse)
		}
		if err != nil {
			logger.Error("http.error_response_failed", "trace_id", traceID, "error", err)
		}
	}
}

func toErrorResponse(err error, traceID string) (*errors.ErrorResponse, int) {
	var echoErr *echo.HTTPError
	if stderrors.As(err, &echoErr) {
		// Echo's own messages are English; the code's message is what clients show
		return errors.NewErrorResponse(mapHTTPStatusToErrorCode(echoErr.Code), traceID), echoErr.Code
	}

	var validationErrs validator.ValidationErrors
	if stderrors.As(err, &validationErrs) {
		return errors.NewValidationErrorFromList(validation.FormatErrors(validationErrs), traceID), http.StatusUnprocessableEntity
	}

	errorResponse, _ := errors.WrapSystemError(err, traceID)
	return errorResponse, errorResponse.GetHTTPStatus()
}

// mapHTTPStatusToErrorCode maps HTTP status codes to error codes
func mapHTTPStatusToErrorCode(status int) errors.ErrorCode {
	switch status {
	case http.StatusBadRequest, http.StatusMethodNotAllowed:
		return errors.RequestInvalid
	case http.StatusNotFound:
		return errors.RequestNotFound
	case http.StatusRequestEntityTooLarge:
		return errors.RequestPayloadTooLarge
	case http.StatusUnprocessableEntity:
		return errors.RequestUnprocessable
	case http.StatusTooManyRequests:
		return errors.RequestRateLimited
	case http.StatusInternalServerError:
		return errors.SystemInternalError
	case http.StatusServiceUnavailable:
		return errors.SystemServiceUnavailable
	default:
		return errors.SystemUnexpectedError
	}
}
