package models

import (
	"net/url"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReceiptFilterParams_Values(t *testing.T) {
	min := decimal.NewFromInt(100)

	tests := []struct {
		name    string
		filters *ReceiptFilterParams
		want    url.Values
	}{
		{
			name:    "nil filters",
			filters: nil,
			want:    url.Values{},
		},
		{
			name:    "empty filters are omitted",
			filters: &ReceiptFilterParams{Category: "", Search: ""},
			want:    url.Values{},
		},
		{
			name: "set filters are encoded",
			filters: &ReceiptFilterParams{
				SortBy:    SortByDate,
				SortOrder: SortAsc,
				Category:  CategoryFood,
				AmountMin: &min,
				Search:    "マート",
			},
			want: url.Values{
				"sort_by":    {"date"},
				"sort_order": {"asc"},
				"category":   {CategoryFood},
				"amount_min": {"100"},
				"search":     {"マート"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.filters.Values())
		})
	}
}

func TestParseReceiptFilterParams(t *testing.T) {
	values := url.Values{
		"date_from":  {"2026-01-01"},
		"amount_max": {"2500.50"},
	}

	filters, err := ParseReceiptFilterParams(values)
	require.NoError(t, err)

	assert.Equal(t, "2026-01-01", filters.DateFrom)
	assert.Nil(t, filters.AmountMin)
	require.NotNil(t, filters.AmountMax)
	assert.Equal(t, "2500.5", filters.AmountMax.String())
	assert.Equal(t, url.Values{"date_from": {"2026-01-01"}, "amount_max": {"2500.5"}}, filters.Values())
}

func TestParseReceiptFilterParams_InvalidAmount(t *testing.T) {
	_, err := ParseReceiptFilterParams(url.Values{"amount_min": {"abc"}})
	assert.Error(t, err)
}

func TestReceiptFilterParams_SortDefaults(t *testing.T) {
	filters := &ReceiptFilterParams{SortBy: "DROP TABLE", SortOrder: "sideways"}
	assert.Equal(t, SortByCreatedAt, filters.SortColumn())
	assert.Equal(t, SortDesc, filters.SortDirection())

	filters = &ReceiptFilterParams{SortBy: SortByTotalAmount, SortOrder: SortAsc}
	assert.Equal(t, SortByTotalAmount, filters.SortColumn())
	assert.Equal(t, SortAsc, filters.SortDirection())

	filters = &ReceiptFilterParams{SortOrder: "ASC"}
	assert.Equal(t, SortAsc, filters.SortDirection())
	filters = &ReceiptFilterParams{SortOrder: "Desc"}
	assert.Equal(t, SortDesc, filters.SortDirection())
}

func TestBatchScanResult_Recount(t *testing.T) {
	result := &BatchScanResult{
		Results: []BatchScanResultItem{
			{Filename: "a.jpg", Success: true},
			{Filename: "b.txt", Success: false, Error: StringPtr("bad")},
			{Filename: "c.png", Success: true},
		},
		SuccessCount: 3,
		ErrorCount:   0,
	}

	assert.True(t, result.Recount())
	assert.Equal(t, 2, result.SuccessCount)
	assert.Equal(t, 1, result.ErrorCount)
	assert.False(t, result.Recount())
}

func TestSuggestedCategories(t *testing.T) {
	categories := SuggestedCategories()
	assert.Len(t, categories, 15)
	assert.Equal(t, CategoryFood, categories[0])
	assert.True(t, IsSuggestedCategory(CategoryOther))
	assert.False(t, IsSuggestedCategory(CategoryUncategorized))
}
