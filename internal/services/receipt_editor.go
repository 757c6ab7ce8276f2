package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/shopspring/decimal"

	"receipt-scanner/internal/models"
)

var (
	ErrInvalidNumber       = errors.New("invalid number")
	ErrItemIndexOutOfRange = errors.New("item index out of range")
	ErrUnknownField        = errors.New("unknown field")
	ErrSaveInProgress      = errors.New("save already in progress")
)

// EditField names an editable scalar of a receipt
type EditField string

const (
	FieldStoreName     EditField = "store_name"
	FieldDate          EditField = "date"
	FieldTotalAmount   EditField = "total_amount"
	FieldTax           EditField = "tax"
	FieldPaymentMethod EditField = "payment_method"
	FieldCategory      EditField = "category"
)

// FieldUpdate is one typed change to a draft scalar. Build it with the
// constructors below.
type FieldUpdate struct {
	field  EditField
	text   *string
	amount decimal.NullDecimal
}

func StoreName(v *string) FieldUpdate     { return FieldUpdate{field: FieldStoreName, text: v} }
func Date(v *string) FieldUpdate          { return FieldUpdate{field: FieldDate, text: v} }
func PaymentMethod(v *string) FieldUpdate { return FieldUpdate{field: FieldPaymentMethod, text: v} }
func Category(v *string) FieldUpdate      { return FieldUpdate{field: FieldCategory, text: v} }

func TotalAmount(v decimal.NullDecimal) FieldUpdate {
	return FieldUpdate{field: FieldTotalAmount, amount: v}
}

func Tax(v decimal.NullDecimal) FieldUpdate {
	return FieldUpdate{field: FieldTax, amount: v}
}

// Field returns the field the update targets
func (u FieldUpdate) Field() EditField {
	return u.field
}

// ParseFieldUpdate builds an update from a field name and raw text, as typed
// on a command line. Empty text clears the field.
func ParseFieldUpdate(field, raw string) (FieldUpdate, error) {
	text := optionalText(raw)
	switch EditField(field) {
	case FieldStoreName:
		return StoreName(text), nil
	case FieldDate:
		return Date(text), nil
	case FieldPaymentMethod:
		return PaymentMethod(text), nil
	case FieldCategory:
		return Category(text), nil
	case FieldTotalAmount, FieldTax:
		amount, err := parseOptionalDecimal(raw)
		if err != nil {
			return FieldUpdate{}, err
		}
		if EditField(field) == FieldTax {
			return Tax(amount), nil
		}
		return TotalAmount(amount), nil
	default:
		return FieldUpdate{}, fmt.Errorf("%w: %s", ErrUnknownField, field)
	}
}

// ItemField names an editable column of a line item
type ItemField string

const (
	ItemName     ItemField = "name"
	ItemQuantity ItemField = "quantity"
	ItemPrice    ItemField = "price"
)

// ReceiptEditor holds the editable draft of one receipt
type ReceiptEditor struct {
	mu        sync.Mutex
	gateway   ReceiptGatewayInterface
	logger    *slog.Logger
	receiptID int64
	draft     models.ReceiptUpdate
	saving    bool
}

// NewReceiptEditor derives a draft from receipt
func NewReceiptEditor(gateway ReceiptGatewayInterface, receipt *models.Receipt, logger *slog.Logger) *ReceiptEditor {
	if logger == nil {
		logger = slog.Default()
	}
	return &ReceiptEditor{
		gateway:   gateway,
		logger:    logger,
		receiptID: receipt.ID,
		draft:     receipt.ToUpdate(),
	}
}

// ReceiptID returns the id of the receipt being edited
func (e *ReceiptEditor) ReceiptID() int64 {
	return e.receiptID
}

// Draft returns a copy of the current draft
func (e *ReceiptEditor) Draft() models.ReceiptUpdate {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.draft.Clone()
}

// Saving reports whether a save is in flight
func (e *ReceiptEditor) Saving() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.saving
}

// SetField applies one scalar change to the draft
func (e *ReceiptEditor) SetField(update FieldUpdate) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	switch update.field {
	case FieldStoreName:
		e.draft.StoreName = update.text
	case FieldDate:
		e.draft.Date = update.text
	case FieldPaymentMethod:
		e.draft.PaymentMethod = update.text
	case FieldCategory:
		e.draft.Category = update.text
	case FieldTotalAmount:
		e.draft.TotalAmount = update.amount
	case FieldTax:
		e.draft.Tax = update.amount
	default:
		return fmt.Errorf("%w: %q", ErrUnknownField, update.field)
	}
	return nil
}

// SetItem changes one column of the item at index from raw text. Empty text
// clears the column; quantity and price must otherwise be decimal numbers.
// A rejected value leaves the draft unchanged.
func (e *ReceiptEditor) SetItem(index int, field ItemField, raw string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if index < 0 || index >= len(e.draft.Items) {
		return fmt.Errorf("%w: %d", ErrItemIndexOutOfRange, index)
	}
	item := &e.draft.Items[index]

	switch field {
	case ItemName:
		item.Name = optionalText(raw)
	case ItemQuantity, ItemPrice:
		value, err := parseOptionalDecimal(raw)
		if err != nil {
			return err
		}
		if field == ItemQuantity {
			item.Quantity = value
		} else {
			item.Price = value
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	return nil
}

// AddItem appends an empty line with quantity 1
func (e *ReceiptEditor) AddItem() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.draft.Items = append(e.draft.Items, models.ReceiptItemCreate{
		Quantity: decimal.NewNullDecimal(decimal.NewFromInt(1)),
	})
}

// RemoveItem deletes the item at index; later items shift down
func (e *ReceiptEditor) RemoveItem(index int) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if index < 0 || index >= len(e.draft.Items) {
		return fmt.Errorf("%w: %d", ErrItemIndexOutOfRange, index)
	}
	e.draft.Items = append(e.draft.Items[:index], e.draft.Items[index+1:]...)
	return nil
}

// Save submits the whole draft and returns the receipt as stored. The
// saving flag is cleared however the call ends.
func (e *ReceiptEditor) Save(ctx context.Context) (*models.Receipt, error) {
	e.mu.Lock()
	if e.saving {
		e.mu.Unlock()
		return nil, ErrSaveInProgress
	}
	e.saving = true
	draft := e.draft.Clone()
	e.mu.Unlock()

	defer func() {
		e.mu.Lock()
		e.saving = false
		e.mu.Unlock()
	}()

	receipt, err := e.gateway.UpdateReceipt(ctx, e.receiptID, draft)
	if err != nil {
		e.logger.Warn("editor.save_failed", "receipt_id", e.receiptID, "error", err)
		return nil, err
	}
	e.logger.Info("editor.saved", "receipt_id", e.receiptID, "items", len(draft.Items))
	return receipt, nil
}

func optionalText(raw string) *string {
	if raw == "" {
		return nil
	}
	return &raw
}

func parseOptionalDecimal(raw string) (decimal.NullDecimal, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return decimal.NullDecimal{}, nil
	}
	value, err := decimal.NewFromString(trimmed)
	if err != nil {
		return decimal.NullDecimal{}, fmt.Errorf("%w: %q", ErrInvalidNumber, raw)
	}
	return decimal.NewNullDecimal(value), nil
}
