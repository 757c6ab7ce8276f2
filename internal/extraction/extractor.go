// Package extraction turns a stored receipt image into structured fields.
package extraction

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"

	"receipt-scanner/internal/config"
	"receipt-scanner/internal/models"
)

// Result is the structured content read from one receipt image together
// with the raw response it was parsed from.
type Result struct {
	Fields models.ReceiptUpdate
	Raw    string
}

// Extractor reads one receipt image
type Extractor interface {
	Extract(ctx context.Context, imagePath string) (*Result, error)
}

// New returns the extractor selected by cfg
func New(cfg config.ExtractionConfig) (Extractor, error) {
	switch cfg.Mode {
	case config.ExtractionModeMock:
		return NewMockExtractor(), nil
	default:
		return nil, fmt.Errorf("unsupported extraction mode %q", cfg.Mode)
	}
}

// MockExtractor returns the same convenience-store receipt for every image
type MockExtractor struct {
	fields models.ReceiptUpdate
}

func NewMockExtractor() *MockExtractor {
	return &MockExtractor{fields: mockFields()}
}

func (m *MockExtractor) Extract(ctx context.Context, imagePath string) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	fields := m.fields.Clone()
	raw, err := json.Marshal(fields)
	if err != nil {
		return nil, fmt.Errorf("failed to encode mock response: %w", err)
	}
	return &Result{Fields: fields, Raw: string(raw)}, nil
}

func mockFields() models.ReceiptUpdate {
	item := func(name string, quantity, price int64) models.ReceiptItemCreate {
		return models.ReceiptItemCreate{
			Name:     models.StringPtr(name),
			Quantity: decimal.NewNullDecimal(decimal.NewFromInt(quantity)),
			Price:    decimal.NewNullDecimal(decimal.NewFromInt(price)),
		}
	}
	return models.ReceiptUpdate{
		StoreName:     models.StringPtr("テストマート 渋谷店"),
		Date:          models.StringPtr("2026-02-10"),
		TotalAmount:   decimal.NewNullDecimal(decimal.NewFromInt(1580)),
		Tax:           decimal.NewNullDecimal(decimal.NewFromInt(143)),
		PaymentMethod: models.StringPtr("クレジットカード"),
		Category:      models.StringPtr(models.CategoryFood),
		Items: []models.ReceiptItemCreate{
			item("おにぎり 鮭", 2, 150),
			item("緑茶 500ml", 1, 130),
			item("サンドイッチ", 1, 380),
			item("ヨーグルト", 3, 120),
		},
	}
}

// ToReceipt builds an unsaved receipt from r stored at imagePath
func (r *Result) ToReceipt(imagePath string) *models.Receipt {
	raw := r.Raw
	receipt := &models.Receipt{
		StoreName:     r.Fields.StoreName,
		Date:          r.Fields.Date,
		TotalAmount:   r.Fields.TotalAmount,
		Tax:           r.Fields.Tax,
		PaymentMethod: r.Fields.PaymentMethod,
		Category:      r.Fields.Category,
		ImagePath:     imagePath,
		RawResponse:   &raw,
	}
	receipt.Items = r.Fields.ToItems(0)
	return receipt
}
