package models

import "github.com/shopspring/decimal"

// ReceiptItemCreate is a line item as submitted by a client; it carries no id.
type ReceiptItemCreate struct {
	Name     *string             `json:"name" validate:"omitempty,max=255"`
	Quantity decimal.NullDecimal `json:"quantity"`
	Price    decimal.NullDecimal `json:"price"`
}

// ReceiptUpdate is the full editable representation of a receipt. Items
// replace the stored items wholesale.
type ReceiptUpdate struct {
	StoreName     *string             `json:"store_name" validate:"omitempty,max=255"`
	Date          *string             `json:"date" validate:"omitempty,iso_date"`
	TotalAmount   decimal.NullDecimal `json:"total_amount"`
	Tax           decimal.NullDecimal `json:"tax"`
	PaymentMethod *string             `json:"payment_method" validate:"omitempty,max=50"`
	Category      *string             `json:"category" validate:"omitempty,max=50"`
	Items         []ReceiptItemCreate `json:"items" validate:"dive"`
}

// Clone returns a deep copy of the update.
func (u ReceiptUpdate) Clone() ReceiptUpdate {
	out := u
	out.StoreName = cloneString(u.StoreName)
	out.Date = cloneString(u.Date)
	out.PaymentMethod = cloneString(u.PaymentMethod)
	out.Category = cloneString(u.Category)
	out.Items = make([]ReceiptItemCreate, len(u.Items))
	for i, item := range u.Items {
		out.Items[i] = ReceiptItemCreate{
			Name:     cloneString(item.Name),
			Quantity: item.Quantity,
			Price:    item.Price,
		}
	}
	return out
}

// ToItems converts the submitted items into owned receipt items.
func (u ReceiptUpdate) ToItems(receiptID int64) []ReceiptItem {
	items := make([]ReceiptItem, 0, len(u.Items))
	for _, item := range u.Items {
		items = append(items, ReceiptItem{
			ReceiptID: receiptID,
			Name:      cloneString(item.Name),
			Quantity:  item.Quantity,
			Price:     item.Price,
		})
	}
	return items
}
