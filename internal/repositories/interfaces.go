package repositories

import (
	"receipt-scanner/internal/models"
)

// ReceiptRepositoryInterface defines the contract for receipt persistence
type ReceiptRepositoryInterface interface {
	Create(receipt *models.Receipt) error
	GetByID(id int64) (*models.Receipt, error)
	List(filters models.ReceiptFilterParams, offset, limit int) ([]models.Receipt, int64, error)
	ListAll(filters models.ReceiptFilterParams) ([]models.Receipt, error)
	Update(id int64, update models.ReceiptUpdate) (*models.Receipt, error)
	Delete(id int64) (*models.Receipt, error)
}

// SummaryRepositoryInterface defines the contract for monthly aggregations
type SummaryRepositoryInterface interface {
	GetMonthlySummary(year, month int) (*models.MonthlySummary, error)
	GetAvailableMonths() ([]models.MonthOption, error)
}
