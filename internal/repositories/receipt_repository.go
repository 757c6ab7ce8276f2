package repositories

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"receipt-scanner/internal/models"
)

var (
	ErrReceiptNotFound = errors.New("receipt not found")
	ErrNilReceipt      = errors.New("receipt cannot be nil")
)

// ReceiptRepository implements ReceiptRepositoryInterface on GORM
type ReceiptRepository struct {
	db *gorm.DB
}

// NewReceiptRepository creates a new receipt repository
func NewReceiptRepository(db *gorm.DB) *ReceiptRepository {
	return &ReceiptRepository{db: db}
}

// Create stores a receipt together with its items
func (r *ReceiptRepository) Create(receipt *models.Receipt) error {
	if receipt == nil {
		return ErrNilReceipt
	}

	if err := r.db.Create(receipt).Error; err != nil {
		return fmt.Errorf("failed to create receipt: %w", err)
	}

	return nil
}

// GetByID retrieves a receipt and its items
func (r *ReceiptRepository) GetByID(id int64) (*models.Receipt, error) {
	return r.getByID(r.db, id)
}

func (r *ReceiptRepository) getByID(db *gorm.DB, id int64) (*models.Receipt, error) {
	var receipt models.Receipt
	if err := withItems(db).First(&receipt, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReceiptNotFound
		}
		return nil, fmt.Errorf("failed to get receipt: %w", err)
	}
	return &receipt, nil
}

// List returns one page of receipts matching filters plus the matching total
func (r *ReceiptRepository) List(filters models.ReceiptFilterParams, offset, limit int) ([]models.Receipt, int64, error) {
	var total int64
	if err := applyFilters(r.db.Model(&models.Receipt{}), filters).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count receipts: %w", err)
	}

	receipts := []models.Receipt{}
	query := applySort(applyFilters(withItems(r.db), filters), filters)
	if err := query.Offset(offset).Limit(limit).Find(&receipts).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list receipts: %w", err)
	}

	return receipts, total, nil
}

// ListAll returns every receipt matching filters, used by the export
func (r *ReceiptRepository) ListAll(filters models.ReceiptFilterParams) ([]models.Receipt, error) {
	receipts := []models.Receipt{}
	query := applySort(applyFilters(withItems(r.db), filters), filters)
	if err := query.Find(&receipts).Error; err != nil {
		return nil, fmt.Errorf("failed to list receipts: %w", err)
	}
	return receipts, nil
}

// Update overwrites every editable field and replaces the items wholesale
func (r *ReceiptRepository) Update(id int64, update models.ReceiptUpdate) (*models.Receipt, error) {
	var updated *models.Receipt

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if _, err := r.getByID(tx, id); err != nil {
			return err
		}

		fields := map[string]interface{}{
			"store_name":     update.StoreName,
			"date":           update.Date,
			"total_amount":   update.TotalAmount,
			"tax":            update.Tax,
			"payment_method": update.PaymentMethod,
			"category":       update.Category,
			"updated_at":     time.Now().UTC(),
		}
		if err := tx.Model(&models.Receipt{}).Where("id = ?", id).Updates(fields).Error; err != nil {
			return fmt.Errorf("failed to update receipt: %w", err)
		}

		if err := tx.Where("receipt_id = ?", id).Delete(&models.ReceiptItem{}).Error; err != nil {
			return fmt.Errorf("failed to delete receipt items: %w", err)
		}

		if items := update.ToItems(id); len(items) > 0 {
			if err := tx.Create(&items).Error; err != nil {
				return fmt.Errorf("failed to create receipt items: %w", err)
			}
		}

		receipt, err := r.getByID(tx, id)
		if err != nil {
			return err
		}
		updated = receipt
		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

// Delete removes a receipt and its items and returns what was removed
func (r *ReceiptRepository) Delete(id int64) (*models.Receipt, error) {
	var deleted *models.Receipt

	err := r.db.Transaction(func(tx *gorm.DB) error {
		receipt, err := r.getByID(tx, id)
		if err != nil {
			return err
		}

		if err := tx.Where("receipt_id = ?", id).Delete(&models.ReceiptItem{}).Error; err != nil {
			return fmt.Errorf("failed to delete receipt items: %w", err)
		}
		if err := tx.Delete(&models.Receipt{}, id).Error; err != nil {
			return fmt.Errorf("failed to delete receipt: %w", err)
		}

		deleted = receipt
		return nil
	})
	if err != nil {
		return nil, err
	}

	return deleted, nil
}

func withItems(db *gorm.DB) *gorm.DB {
	return db.Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("id ASC")
	})
}

func applyFilters(query *gorm.DB, filters models.ReceiptFilterParams) *gorm.DB {
	if filters.DateFrom != "" {
		query = query.Where("date >= ?", filters.DateFrom)
	}
	if filters.DateTo != "" {
		query = query.Where("date <= ?", filters.DateTo)
	}
	if filters.Category != "" {
		query = query.Where("category = ?", filters.Category)
	}
	if filters.AmountMin != nil {
		query = query.Where("total_amount >= ?", *filters.AmountMin)
	}
	if filters.AmountMax != nil {
		query = query.Where("total_amount <= ?", *filters.AmountMax)
	}
	if filters.Search != "" {
		query = query.Where("LOWER(store_name) LIKE LOWER(?)", "%"+filters.Search+"%")
	}
	return query
}

// Sort columns come from a whitelist, never from raw input
func applySort(query *gorm.DB, filters models.ReceiptFilterParams) *gorm.DB {
	direction := "DESC"
	if filters.SortDirection() == models.SortAsc {
		direction = "ASC"
	}
	return query.
		Order(fmt.Sprintf("%s %s", filters.SortColumn(), direction)).
		Order(fmt.Sprintf("id %s", direction))
}
