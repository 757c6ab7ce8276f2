// Package export renders receipts as spreadsheets.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"receipt-scanner/internal/models"
)

// BOM makes spreadsheet applications read the CSV as UTF-8
const BOM = "\ufeff"

// Filename is the attachment name of the CSV export
const Filename = "receipts.csv"

// Headers is the CSV header row
var Headers = []string{"ID", "日付", "店名", "合計金額", "税額", "支払方法", "カテゴリ", "品目"}

// GenerateCSV writes receipts as BOM-prefixed UTF-8 CSV
func GenerateCSV(w io.Writer, receipts []models.Receipt) error {
	if _, err := io.WriteString(w, BOM); err != nil {
		return fmt.Errorf("failed to write BOM: %w", err)
	}

	writer := csv.NewWriter(w)
	if err := writer.Write(Headers); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i := range receipts {
		if err := writer.Write(row(&receipts[i])); err != nil {
			return fmt.Errorf("failed to write receipt %d: %w", receipts[i].ID, err)
		}
	}

	writer.Flush()
	return writer.Error()
}

func row(r *models.Receipt) []string {
	return []string{
		strconv.FormatInt(r.ID, 10),
		text(r.Date),
		text(r.StoreName),
		amount(r.TotalAmount),
		amount(r.Tax),
		text(r.PaymentMethod),
		text(r.Category),
		itemsSummary(r.Items),
	}
}

// itemsSummary joins items as "name×quantity" separated by " / "
func itemsSummary(items []models.ReceiptItem) string {
	parts := make([]string, 0, len(items))
	for _, item := range items {
		name := "不明"
		if item.Name != nil && *item.Name != "" {
			name = *item.Name
		}
		quantity := decimal.NewFromInt(1)
		if item.Quantity.Valid && !item.Quantity.Decimal.IsZero() {
			quantity = item.Quantity.Decimal
		}
		parts = append(parts, name+"×"+quantity.String())
	}
	return strings.Join(parts, " / ")
}

func text(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func amount(d decimal.NullDecimal) string {
	if !d.Valid {
		return ""
	}
	return d.Decimal.String()
}
