package models

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/shopspring/decimal"
)

// SortKey is a column a receipt list may be ordered by
type SortKey string

const (
	SortByCreatedAt   SortKey = "created_at"
	SortByDate        SortKey = "date"
	SortByTotalAmount SortKey = "total_amount"
	SortByStoreName   SortKey = "store_name"
)

// SortOrder is the direction of a receipt list ordering
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// ReceiptFilterParams contains filter criteria for receipt queries.
// Zero values mean "not set".
type ReceiptFilterParams struct {
	SortBy    SortKey          `json:"sort_by,omitempty" query:"sort_by" validate:"omitempty,sort_key"`
	SortOrder SortOrder        `json:"sort_order,omitempty" query:"sort_order" validate:"omitempty,sort_order"`
	DateFrom  string           `json:"date_from,omitempty" query:"date_from" validate:"omitempty,iso_date"`
	DateTo    string           `json:"date_to,omitempty" query:"date_to" validate:"omitempty,iso_date"`
	Category  string           `json:"category,omitempty" query:"category" validate:"omitempty,max=50"`
	AmountMin *decimal.Decimal `json:"amount_min,omitempty" query:"-"`
	AmountMax *decimal.Decimal `json:"amount_max,omitempty" query:"-"`
	Search    string           `json:"search,omitempty" query:"search" validate:"omitempty,max=255"`
}

// Values encodes the set filters as query parameters, omitting empty ones.
func (f *ReceiptFilterParams) Values() url.Values {
	values := url.Values{}
	if f == nil {
		return values
	}
	setIfPresent(values, "sort_by", string(f.SortBy))
	setIfPresent(values, "sort_order", string(f.SortOrder))
	setIfPresent(values, "date_from", f.DateFrom)
	setIfPresent(values, "date_to", f.DateTo)
	setIfPresent(values, "category", f.Category)
	if f.AmountMin != nil {
		values.Set("amount_min", f.AmountMin.String())
	}
	if f.AmountMax != nil {
		values.Set("amount_max", f.AmountMax.String())
	}
	setIfPresent(values, "search", f.Search)
	return values
}

// ParseReceiptFilterParams reads filter criteria back out of query parameters.
func ParseReceiptFilterParams(values url.Values) (ReceiptFilterParams, error) {
	filters := ReceiptFilterParams{
		SortBy:    SortKey(values.Get("sort_by")),
		SortOrder: SortOrder(values.Get("sort_order")),
		DateFrom:  values.Get("date_from"),
		DateTo:    values.Get("date_to"),
		Category:  values.Get("category"),
		Search:    values.Get("search"),
	}
	var err error
	if filters.AmountMin, err = parseOptionalDecimal(values.Get("amount_min")); err != nil {
		return filters, err
	}
	if filters.AmountMax, err = parseOptionalDecimal(values.Get("amount_max")); err != nil {
		return filters, err
	}
	return filters, nil
}

// SortColumn returns the validated sort column, defaulting to created_at.
func (f *ReceiptFilterParams) SortColumn() SortKey {
	switch f.SortBy {
	case SortByDate, SortByTotalAmount, SortByStoreName, SortByCreatedAt:
		return f.SortBy
	default:
		return SortByCreatedAt
	}
}

// SortDirection returns the validated direction, defaulting to desc.
// Matching is case-insensitive.
func (f *ReceiptFilterParams) SortDirection() SortOrder {
	if SortOrder(strings.ToLower(string(f.SortOrder))) == SortAsc {
		return SortAsc
	}
	return SortDesc
}

func setIfPresent(values url.Values, key, value string) {
	if value != "" {
		values.Set(key, value)
	}
}

func parseOptionalDecimal(raw string) (*decimal.Decimal, error) {
	if raw == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid amount %q: %w", raw, err)
	}
	return &d, nil
}
