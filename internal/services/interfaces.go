package services

import (
	"context"
	"io"

	"receipt-scanner/internal/files"
	"receipt-scanner/internal/models"
)

// ReceiptGatewayInterface is the receipt half of the API client
type ReceiptGatewayInterface interface {
	ScanReceipt(ctx context.Context, file files.File) (*models.Receipt, error)
	BatchScanReceipts(ctx context.Context, uploads []files.File) (*models.BatchScanResult, error)
	ListReceipts(ctx context.Context, skip, limit int, filters *models.ReceiptFilterParams) (*models.ReceiptList, error)
	GetReceipt(ctx context.Context, id int64) (*models.Receipt, error)
	UpdateReceipt(ctx context.Context, id int64, update models.ReceiptUpdate) (*models.Receipt, error)
	DeleteReceipt(ctx context.Context, id int64) error
	ExportCSV(ctx context.Context, filters *models.ReceiptFilterParams, w io.Writer) (int64, error)
}

// SummaryGatewayInterface is the summary half of the API client
type SummaryGatewayInterface interface {
	GetMonthlySummary(ctx context.Context, year, month int) (*models.MonthlySummary, error)
	GetMonthlyList(ctx context.Context) ([]models.MonthOption, error)
}

// PreviewStoreInterface hands out displayable previews of selected files
type PreviewStoreInterface interface {
	Acquire(file files.File) (*files.Preview, error)
	Release(preview *files.Preview) error
}
