package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	"receipt-scanner/internal/errors"

	"github.com/labstack/echo/v4"
)

// PanicRecovery recovers from panics in later handlers and answers with a
// standardized 500
func PanicRecovery(logger *slog.Logger) echo.MiddlewareFunc {
	if logger == nil {
		logger = slog.Default()
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) (err error) {
			defer func() {
				r := recover()
				if r == nil {
					return
				}
				if r == http.ErrAbortHandler {
					panic(r)
				}

				traceID := GetTraceID(c)
				if traceID == "" {
					traceID = "unknown"
				}

				logger.Error("http.panic_recovered",
					"trace_id", traceID,
					"panic", fmt.Sprintf("%v", r),
					"stack_trace", string(debug.Stack()),
					"path", c.Request().URL.Path,
					"method", c.Request().Method,
				)

				errorResponse := errors.NewErrorResponse(errors.SystemInternalError, traceID)
				if sendErr := c.JSON(http.StatusInternalServerError, errorResponse); sendErr != nil {
					logger.Error("http.panic_response_failed", "trace_id", traceID, "error", sendErr)
				}
				err = nil
			}()

			return next(c)
		}
	}
}
