package repositories

import (
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"receipt-scanner/internal/models"
)

// SummaryRepository aggregates receipts by month and category. Dates are
// stored as YYYY-MM-DD text, so months are read with substr.
type SummaryRepository struct {
	db *gorm.DB
}

// NewSummaryRepository creates a new summary repository
func NewSummaryRepository(db *gorm.DB) *SummaryRepository {
	return &SummaryRepository{db: db}
}

type categoryRow struct {
	Category    string
	TotalAmount decimal.NullDecimal
	Count       int64
}

// GetMonthlySummary totals the receipts dated in the given month by
// category. Receipts without a category are grouped as 未分類.
func (r *SummaryRepository) GetMonthlySummary(year, month int) (*models.MonthlySummary, error) {
	var rows []categoryRow

	categoryExpr := fmt.Sprintf("COALESCE(category, '%s')", models.CategoryUncategorized)
	err := r.db.Model(&models.Receipt{}).
		Select(categoryExpr+" AS category, SUM(total_amount) AS total_amount, COUNT(id) AS count").
		Where("substr(date, 1, 7) = ?", fmt.Sprintf("%04d-%02d", year, month)).
		Group(categoryExpr).
		Order("total_amount DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to summarize month: %w", err)
	}

	summary := &models.MonthlySummary{
		Year:        year,
		Month:       month,
		TotalAmount: decimal.Zero,
		Categories:  make([]models.CategorySummary, 0, len(rows)),
	}
	for _, row := range rows {
		amount := decimal.Zero
		if row.TotalAmount.Valid {
			amount = row.TotalAmount.Decimal
		}
		summary.Categories = append(summary.Categories, models.CategorySummary{
			Category:    row.Category,
			TotalAmount: amount,
			Count:       row.Count,
		})
		summary.TotalAmount = summary.TotalAmount.Add(amount)
		summary.TotalCount += row.Count
	}

	return summary, nil
}

// GetAvailableMonths lists the months that have dated receipts, newest first
func (r *SummaryRepository) GetAvailableMonths() ([]models.MonthOption, error) {
	months := []models.MonthOption{}

	err := r.db.Model(&models.Receipt{}).
		Select("CAST(substr(date, 1, 4) AS INTEGER) AS year, CAST(substr(date, 6, 2) AS INTEGER) AS month, COUNT(id) AS count").
		Where("date IS NOT NULL AND date <> ''").
		Group("substr(date, 1, 4), substr(date, 6, 2)").
		Order("substr(date, 1, 4) DESC, substr(date, 6, 2) DESC").
		Scan(&months).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list months: %w", err)
	}

	return months, nil
}
