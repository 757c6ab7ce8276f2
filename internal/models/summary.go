package models

import "github.com/shopspring/decimal"

// CategorySummary is the spending total of one category within a month
type CategorySummary struct {
	Category    string          `json:"category"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	Count       int64           `json:"count"`
}

// MonthlySummary is the per-category breakdown of one month
type MonthlySummary struct {
	Year        int               `json:"year"`
	Month       int               `json:"month"`
	TotalAmount decimal.Decimal   `json:"total_amount"`
	TotalCount  int64             `json:"total_count"`
	Categories  []CategorySummary `json:"categories"`
}

// MonthOption is a month that has at least one dated receipt
type MonthOption struct {
	Year  int   `json:"year"`
	Month int   `json:"month"`
	Count int64 `json:"count"`
}

// MonthlyList wraps the available months, most recent first
type MonthlyList struct {
	Months []MonthOption `json:"months"`
}
