package handlers

import (
	"net/http"

	"receipt-scanner/internal/errors"

	"github.com/labstack/echo/v4"
)

// Handlers report failures through the helpers below so every error body
// carries detail, code and trace_id:
//
//  1. SendError for client and lookup errors (4xx)
//     SendError(c, errors.ReceiptNotFound)
//     SendError(c, errors.ValidationGeneral, errors.WithMessage("..."))
//  2. SendValidationError for validator failures, listing the fields
//  3. SendSystemError for repository or extraction failures (5xx); the
//     internal error is logged, never sent

const (
	// TraceIDContextKey is the context key for storing the trace ID
	TraceIDContextKey = "trace_id"
)

// ErrorResponse is an alias for the standardized error response type
type ErrorResponse = errors.ErrorResponse

// getTraceID extracts the trace ID from the Echo context
func getTraceID(c echo.Context) string {
	traceID, ok := c.Get(TraceIDContextKey).(string)
	if !ok {
		return ""
	}
	return traceID
}

// SendError sends a standardized error response with trace ID from context
func SendError(c echo.Context, code errors.ErrorCode, opts ...errors.ErrorOption) error {
	traceID := getTraceID(c)
	errorResponse := errors.NewErrorResponse(code, traceID, opts...)
	return c.JSON(errorResponse.GetHTTPStatus(), errorResponse)
}

// SendValidationError sends a 422 listing the offending fields
func SendValidationError(c echo.Context, details []string) error {
	errorResponse := errors.NewValidationErrorFromList(details, getTraceID(c))
	return c.JSON(http.StatusUnprocessableEntity, errorResponse)
}

// SendSystemError wraps a system error with generic message
func SendSystemError(c echo.Context, err error) error {
	traceID := getTraceID(c)
	errorResponse, _ := errors.WrapSystemError(err, traceID)
	return c.JSON(http.StatusInternalServerError, errorResponse)
}
