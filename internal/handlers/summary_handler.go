package handlers

import (
	"log/slog"
	"net/http"

	"receipt-scanner/internal/errors"
	"receipt-scanner/internal/models"
	"receipt-scanner/internal/repositories"

	"github.com/labstack/echo/v4"
)

// SummaryHandler serves the monthly spending summaries
type SummaryHandler struct {
	summaries repositories.SummaryRepositoryInterface
	logger    *slog.Logger
}

// NewSummaryHandler creates a new summary handler
func NewSummaryHandler(summaries repositories.SummaryRepositoryInterface, logger *slog.Logger) *SummaryHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &SummaryHandler{summaries: summaries, logger: logger}
}

type monthlyQuery struct {
	Year  int `query:"year" validate:"required,min=2000,max=2100"`
	Month int `query:"month" validate:"required,min=1,max=12"`
}

// Monthly returns the per-category totals of one month.
//
//	GET /summary/monthly?year=&month= -> 200 MonthlySummary | 422 VALIDATION_001
func (h *SummaryHandler) Monthly(c echo.Context) error {
	var query monthlyQuery
	if err := (&echo.DefaultBinder{}).BindQueryParams(c, &query); err != nil {
		return SendError(c, errors.ValidationGeneral)
	}
	if err := c.Validate(&query); err != nil {
		return SendError(c, errors.ValidationGeneral)
	}

	summary, err := h.summaries.GetMonthlySummary(query.Year, query.Month)
	if err != nil {
		h.logger.Error("summary.monthly_failed",
			"trace_id", getTraceID(c),
			"year", query.Year,
			"month", query.Month,
			"error", err,
		)
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, summary)
}

// MonthlyList returns the months that have dated receipts, newest first.
//
//	GET /summary/monthly-list -> 200 {months}
func (h *SummaryHandler) MonthlyList(c echo.Context) error {
	months, err := h.summaries.GetAvailableMonths()
	if err != nil {
		h.logger.Error("summary.monthly_list_failed", "trace_id", getTraceID(c), "error", err)
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, models.MonthlyList{Months: months})
}
