package errors

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// ErrorResponse is the error body written by the API. Detail carries the
// user-facing message that clients surface verbatim.
type ErrorResponse struct {
	Detail  string `json:"detail"`
	Code    string `json:"code,omitempty"`
	TraceID string `json:"trace_id,omitempty"`
}

// ErrorOption is a functional option for configuring error responses
type ErrorOption func(*ErrorResponse)

// WithMessage overrides the default message for the error code
func WithMessage(message string) ErrorOption {
	return func(er *ErrorResponse) {
		er.Detail = message
	}
}

// WithArgs formats the default message of the code with args
func WithArgs(args ...any) ErrorOption {
	return func(er *ErrorResponse) {
		er.Detail = fmt.Sprintf(GetErrorMessage(ErrorCode(er.Code)), args...)
	}
}

// NewErrorResponse creates a standardized error response with the given error code and trace ID
func NewErrorResponse(code ErrorCode, traceID string, opts ...ErrorOption) *ErrorResponse {
	response := &ErrorResponse{
		Detail:  GetErrorMessage(code),
		Code:    string(code),
		TraceID: traceID,
	}

	for _, opt := range opts {
		opt(response)
	}

	return response
}

// NewValidationError creates a validation error response listing the offending fields
func NewValidationError(fieldErrors map[string]string, traceID string) *ErrorResponse {
	details := make([]string, 0, len(fieldErrors))
	for field, message := range fieldErrors {
		details = append(details, fmt.Sprintf("%s: %s", field, message))
	}
	return NewValidationErrorFromList(details, traceID)
}

// NewValidationErrorFromList creates a validation error from a list of detail messages
func NewValidationErrorFromList(details []string, traceID string) *ErrorResponse {
	response := NewErrorResponse(ValidationGeneral, traceID)
	if len(details) > 0 {
		response.Detail = fmt.Sprintf("%s（%s）", response.Detail, strings.Join(details, ", "))
	}
	return response
}

// WrapSystemError wraps an internal error with a generic system error message
// The internal error is returned separately for server-side logging
func WrapSystemError(err error, traceID string) (*ErrorResponse, error) {
	return NewErrorResponse(SystemInternalError, traceID), err
}

// WrapDatabaseError wraps a database error with a generic system error message
func WrapDatabaseError(err error, traceID string) (*ErrorResponse, error) {
	return NewErrorResponse(SystemDatabaseError, traceID), err
}

// ToJSON serializes the error response to JSON bytes
func (er *ErrorResponse) ToJSON() ([]byte, error) {
	return json.Marshal(er)
}

// GetHTTPStatus returns the appropriate HTTP status code for the error code
func GetHTTPStatus(code ErrorCode) int {
	switch code {
	// 400 Bad Request - malformed requests and unusable uploads
	case RequestInvalid, UploadUnsupportedFormat, UploadInvalidImage,
		UploadMissingFile, BatchNoValidFiles, ReceiptInvalidID:
		return http.StatusBadRequest

	// 404 Not Found - Resource not found
	case RequestNotFound, ReceiptNotFound:
		return http.StatusNotFound

	// 413 Payload Too Large - upload size limits
	case RequestPayloadTooLarge, UploadFileTooLarge:
		return http.StatusRequestEntityTooLarge

	// 422 Unprocessable Entity - field validation failures
	case RequestUnprocessable, ValidationGeneral, ValidationInvalidDate,
		ValidationOutOfRange, ValidationInvalidFormat:
		return http.StatusUnprocessableEntity

	// 429 Too Many Requests - Rate limiting
	case RequestRateLimited:
		return http.StatusTooManyRequests

	// 503 Service Unavailable - Service temporarily unavailable
	case SystemServiceUnavailable, NetworkUnreachable:
		return http.StatusServiceUnavailable

	// 500 Internal Server Error - System errors (default)
	case SystemInternalError, SystemDatabaseError, SystemUnexpectedError,
		ReceiptExtractionFailed, UploadFailed, BatchUploadFailed,
		UploadReadFailed, ResponseInvalid:
		return http.StatusInternalServerError

	default:
		return http.StatusInternalServerError
	}
}

// GetHTTPStatus returns the HTTP status code for the error response
func (er *ErrorResponse) GetHTTPStatus() int {
	return GetHTTPStatus(ErrorCode(er.Code))
}

// IsClientError returns true if the error is a 4xx client error
func (er *ErrorResponse) IsClientError() bool {
	status := er.GetHTTPStatus()
	return status >= 400 && status < 500
}

// IsServerError returns true if the error is a 5xx server error
func (er *ErrorResponse) IsServerError() bool {
	return er.GetHTTPStatus() >= 500
}

// String returns a string representation of the error response
func (er *ErrorResponse) String() string {
	return fmt.Sprintf("[%s] %s (trace: %s)", er.Code, er.Detail, er.TraceID)
}
