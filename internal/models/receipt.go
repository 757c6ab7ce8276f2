package models

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func init() {
	// The API exchanges amounts and quantities as JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true
}

// Receipt is one scanned paper receipt together with its line items.
type Receipt struct {
	ID            int64               `gorm:"primaryKey;autoIncrement" json:"id"`
	StoreName     *string             `gorm:"type:varchar(255)" json:"store_name"`
	Date          *string             `gorm:"type:varchar(10);index" json:"date"`
	TotalAmount   decimal.NullDecimal `gorm:"type:decimal(12,2)" json:"total_amount"`
	Tax           decimal.NullDecimal `gorm:"type:decimal(12,2)" json:"tax"`
	PaymentMethod *string             `gorm:"type:varchar(50)" json:"payment_method"`
	Category      *string             `gorm:"type:varchar(50);index" json:"category"`
	ImagePath     string              `gorm:"type:varchar(500);not null" json:"image_path"`
	ThumbnailPath *string             `gorm:"type:varchar(500)" json:"thumbnail_path"`
	RawResponse   *string             `gorm:"type:text" json:"-"`
	Items         []ReceiptItem       `gorm:"foreignKey:ReceiptID;constraint:OnDelete:CASCADE" json:"items"`
	CreatedAt     time.Time           `gorm:"not null;index" json:"created_at"`
	UpdatedAt     time.Time           `gorm:"not null" json:"updated_at"`
}

// ReceiptItem is a single purchased line owned by a Receipt.
type ReceiptItem struct {
	ID        int64               `gorm:"primaryKey;autoIncrement" json:"id"`
	ReceiptID int64               `gorm:"not null;index" json:"-"`
	Name      *string             `gorm:"type:varchar(255)" json:"name"`
	Quantity  decimal.NullDecimal `gorm:"type:decimal(10,3)" json:"quantity"`
	Price     decimal.NullDecimal `gorm:"type:decimal(12,2)" json:"price"`
}

// TableName specifies the table name for GORM
func (Receipt) TableName() string {
	return "receipts"
}

// TableName specifies the table name for GORM
func (ReceiptItem) TableName() string {
	return "receipt_items"
}

// BeforeCreate sets the timestamps when they were not provided
func (r *Receipt) BeforeCreate(tx *gorm.DB) error {
	now := time.Now().UTC()
	if r.CreatedAt.IsZero() {
		r.CreatedAt = now
	}
	if r.UpdatedAt.IsZero() {
		r.UpdatedAt = now
	}
	return nil
}

// BeforeCreate fills the default quantity of one
func (i *ReceiptItem) BeforeCreate(tx *gorm.DB) error {
	if !i.Quantity.Valid {
		i.Quantity = decimal.NewNullDecimal(decimal.NewFromInt(1))
	}
	return nil
}

// UnmarshalJSON accepts timestamps with or without a zone offset, since the
// backend may emit naive ISO-8601 values such as "2026-02-10T09:30:00".
func (r *Receipt) UnmarshalJSON(data []byte) error {
	type alias Receipt
	aux := struct {
		*alias
		CreatedAt flexTime `json:"created_at"`
		UpdatedAt flexTime `json:"updated_at"`
	}{alias: (*alias)(r)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	r.CreatedAt = time.Time(aux.CreatedAt)
	r.UpdatedAt = time.Time(aux.UpdatedAt)
	return nil
}

// ToUpdate flattens the receipt into an editable draft.
func (r *Receipt) ToUpdate() ReceiptUpdate {
	update := ReceiptUpdate{
		StoreName:     cloneString(r.StoreName),
		Date:          cloneString(r.Date),
		TotalAmount:   r.TotalAmount,
		Tax:           r.Tax,
		PaymentMethod: cloneString(r.PaymentMethod),
		Category:      cloneString(r.Category),
		Items:         make([]ReceiptItemCreate, 0, len(r.Items)),
	}
	for _, item := range r.Items {
		update.Items = append(update.Items, ReceiptItemCreate{
			Name:     cloneString(item.Name),
			Quantity: item.Quantity,
			Price:    item.Price,
		})
	}
	return update
}

// DisplayStoreName returns the store name or a placeholder for unreadable receipts.
func (r *Receipt) DisplayStoreName() string {
	if r.StoreName == nil || *r.StoreName == "" {
		return "店名不明"
	}
	return *r.StoreName
}

var flexTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02",
}

type flexTime time.Time

func (t *flexTime) UnmarshalJSON(data []byte) error {
	var raw *string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == nil || *raw == "" {
		*t = flexTime{}
		return nil
	}
	for _, layout := range flexTimeLayouts {
		if parsed, err := time.Parse(layout, *raw); err == nil {
			*t = flexTime(parsed)
			return nil
		}
	}
	return fmt.Errorf("invalid timestamp %q", *raw)
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

// StringPtr returns a pointer to s.
func StringPtr(s string) *string {
	return &s
}
