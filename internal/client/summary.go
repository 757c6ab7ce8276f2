package client

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"receipt-scanner/internal/models"
)

// GetMonthlySummary fetches the per-category breakdown of one month
func (c *Client) GetMonthlySummary(ctx context.Context, year, month int) (*models.MonthlySummary, error) {
	query := url.Values{}
	query.Set("year", strconv.Itoa(year))
	query.Set("month", strconv.Itoa(month))

	var summary models.MonthlySummary
	err := c.doJSON(ctx, request{
		operation: "monthly_summary",
		method:    http.MethodGet,
		path:      "/summary/monthly",
		query:     query,
	}, &summary)
	if err != nil {
		return nil, err
	}
	return &summary, nil
}

// GetMonthlyList returns the months that have receipts, most recent first
func (c *Client) GetMonthlyList(ctx context.Context) ([]models.MonthOption, error) {
	var list models.MonthlyList
	err := c.doJSON(ctx, request{
		operation: "monthly_list",
		method:    http.MethodGet,
		path:      "/summary/monthly-list",
	}, &list)
	if err != nil {
		return nil, err
	}
	if list.Months == nil {
		return []models.MonthOption{}, nil
	}
	return list.Months, nil
}
