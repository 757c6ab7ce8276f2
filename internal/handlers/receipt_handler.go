package handlers

import (
	"context"
	stderrors "errors"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"time"

	"receipt-scanner/internal/errors"
	"receipt-scanner/internal/export"
	"receipt-scanner/internal/extraction"
	"receipt-scanner/internal/metrics"
	"receipt-scanner/internal/models"
	"receipt-scanner/internal/repositories"
	"receipt-scanner/internal/storage"
	"receipt-scanner/internal/validation"

	"github.com/labstack/echo/v4"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

// ImageStorer keeps uploaded receipt images
type ImageStorer interface {
	Save(declaredType string, r io.Reader) (string, error)
	Path(imagePath string) string
	Delete(imagePath string) error
}

// ReceiptHandler handles receipt-related HTTP requests
type ReceiptHandler struct {
	receipts  repositories.ReceiptRepositoryInterface
	images    ImageStorer
	extractor extraction.Extractor
	metrics   metrics.Recorder
	logger    *slog.Logger
}

// NewReceiptHandler creates a new receipt handler
func NewReceiptHandler(
	receipts repositories.ReceiptRepositoryInterface,
	images ImageStorer,
	extractor extraction.Extractor,
	recorder metrics.Recorder,
	logger *slog.Logger,
) *ReceiptHandler {
	if recorder == nil {
		recorder = metrics.Noop{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ReceiptHandler{
		receipts:  receipts,
		images:    images,
		extractor: extractor,
		metrics:   recorder,
		logger:    logger,
	}
}

// scanError carries the error code a failed scan is reported with
type scanError struct {
	code errors.ErrorCode
	err  error
}

func (e *scanError) Error() string { return e.err.Error() }
func (e *scanError) Unwrap() error { return e.err }

// Scan stores one receipt image, extracts its fields and saves the receipt.
//
//	POST /receipts/scan (multipart, field "file")
//	201 Receipt | 400 UPLOAD_001/UPLOAD_004/UPLOAD_005 | 413 UPLOAD_002 | 500 RECEIPT_003
func (h *ReceiptHandler) Scan(c echo.Context) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return SendError(c, errors.UploadMissingFile)
	}

	receipt, err := h.scanOne(c.Request().Context(), fh)
	if err != nil {
		return h.sendScanError(c, fh.Filename, err)
	}

	return c.JSON(http.StatusCreated, receipt)
}

// BatchScan scans every file of the "files" field. Files fail independently;
// the per-file outcome is reported in the body.
//
//	POST /receipts/scan/batch (multipart, field "files")
//	201 BatchScanResult | 400 UPLOAD_005
func (h *ReceiptHandler) BatchScan(c echo.Context) error {
	form, err := c.MultipartForm()
	if err != nil || len(form.File["files"]) == 0 {
		return SendError(c, errors.UploadMissingFile)
	}

	ctx := c.Request().Context()
	uploads := form.File["files"]
	result := models.BatchScanResult{Results: make([]models.BatchScanResultItem, 0, len(uploads))}

	for _, fh := range uploads {
		item := models.BatchScanResultItem{Filename: fh.Filename}

		receipt, err := h.scanOne(ctx, fh)
		if err != nil {
			message := errors.GetErrorMessage(scanErrorCode(err))
			item.Error = &message
			result.ErrorCount++
			h.logger.Warn("receipt.batch.file_failed", "trace_id", getTraceID(c), "filename", fh.Filename, "error", err)
			h.metrics.IncrementCounter(metrics.BatchFileProcessed, map[string]string{"outcome": "error"})
		} else {
			item.Success = true
			item.Receipt = receipt
			result.SuccessCount++
			h.metrics.IncrementCounter(metrics.BatchFileProcessed, map[string]string{"outcome": "success"})
		}

		result.Results = append(result.Results, item)
	}

	h.logger.Info("receipt.batch.done",
		"trace_id", getTraceID(c),
		"success_count", result.SuccessCount,
		"error_count", result.ErrorCount,
	)

	return c.JSON(http.StatusCreated, result)
}

// List returns one page of receipts matching the filters.
//
//	GET /receipts?skip=&limit=&sort_by=&sort_order=&date_from=&date_to=&category=&amount_min=&amount_max=&search=
//	200 {items, total} | 422 VALIDATION_001
func (h *ReceiptHandler) List(c echo.Context) error {
	skip, err := getIntParam(c, "skip", 0)
	if err != nil || skip < 0 {
		return SendError(c, errors.ValidationGeneral)
	}
	limit, err := getIntParam(c, "limit", defaultPageLimit)
	if err != nil || limit < 1 || limit > maxPageLimit {
		return SendError(c, errors.ValidationGeneral)
	}

	filters, ok, err := h.bindFilters(c)
	if !ok {
		return err
	}

	items, total, err := h.receipts.List(filters, skip, limit)
	if err != nil {
		h.logger.Error("receipt.list_failed", "trace_id", getTraceID(c), "error", err)
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, models.ReceiptList{Items: items, Total: total})
}

// Get returns one receipt with its items.
//
//	GET /receipts/{id} -> 200 Receipt | 400 RECEIPT_004 | 404 RECEIPT_001
func (h *ReceiptHandler) Get(c echo.Context) error {
	id, err := getIDParam(c)
	if err != nil {
		return SendError(c, errors.ReceiptInvalidID)
	}

	receipt, err := h.receipts.GetByID(id)
	if err != nil {
		if stderrors.Is(err, repositories.ErrReceiptNotFound) {
			return SendError(c, errors.ReceiptNotFound)
		}
		h.logger.Error("receipt.get_failed", "trace_id", getTraceID(c), "receipt_id", id, "error", err)
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, receipt)
}

// Update replaces the editable fields and the items of a receipt.
//
//	PUT /receipts/{id} (ReceiptUpdate) -> 200 Receipt | 400 | 404 RECEIPT_001 | 422
func (h *ReceiptHandler) Update(c echo.Context) error {
	id, err := getIDParam(c)
	if err != nil {
		return SendError(c, errors.ReceiptInvalidID)
	}

	var update models.ReceiptUpdate
	if err := c.Bind(&update); err != nil {
		return SendError(c, errors.RequestInvalid)
	}
	if err := c.Validate(&update); err != nil {
		return SendValidationError(c, validation.FormatErrors(err))
	}

	receipt, err := h.receipts.Update(id, update)
	if err != nil {
		if stderrors.Is(err, repositories.ErrReceiptNotFound) {
			return SendError(c, errors.ReceiptNotFound)
		}
		h.logger.Error("receipt.update_failed", "trace_id", getTraceID(c), "receipt_id", id, "error", err)
		return SendSystemError(c, err)
	}

	h.logger.Info("receipt.updated", "trace_id", getTraceID(c), "receipt_id", id, "items", len(receipt.Items))
	return c.JSON(http.StatusOK, receipt)
}

// Delete removes a receipt, its items and its stored images.
//
//	DELETE /receipts/{id} -> 204 | 400 RECEIPT_004 | 404 RECEIPT_001
func (h *ReceiptHandler) Delete(c echo.Context) error {
	id, err := getIDParam(c)
	if err != nil {
		return SendError(c, errors.ReceiptInvalidID)
	}

	receipt, err := h.receipts.Delete(id)
	if err != nil {
		if stderrors.Is(err, repositories.ErrReceiptNotFound) {
			return SendError(c, errors.ReceiptNotFound)
		}
		h.logger.Error("receipt.delete_failed", "trace_id", getTraceID(c), "receipt_id", id, "error", err)
		return SendSystemError(c, err)
	}

	// The row is gone either way; a leftover file only costs disk space
	h.discardImage(receipt.ImagePath)
	if receipt.ThumbnailPath != nil {
		h.discardImage(*receipt.ThumbnailPath)
	}

	return c.NoContent(http.StatusNoContent)
}

// ExportCSV streams every receipt matching the filters as a CSV attachment.
//
//	GET /receipts/export/csv -> 200 text/csv | 422 VALIDATION_001
func (h *ReceiptHandler) ExportCSV(c echo.Context) error {
	filters, ok, err := h.bindFilters(c)
	if !ok {
		return err
	}

	receipts, err := h.receipts.ListAll(filters)
	if err != nil {
		h.logger.Error("receipt.export_failed", "trace_id", getTraceID(c), "error", err)
		return SendSystemError(c, err)
	}

	res := c.Response()
	res.Header().Set(echo.HeaderContentType, "text/csv; charset=utf-8")
	res.Header().Set(echo.HeaderContentDisposition, "attachment; filename="+export.Filename)
	res.WriteHeader(http.StatusOK)

	if err := export.GenerateCSV(res, receipts); err != nil {
		// Headers are already sent; the client sees a truncated body
		h.logger.Error("receipt.export_stream_failed", "trace_id", getTraceID(c), "error", err)
		return nil
	}
	return nil
}

// Categories returns the suggested receipt categories in display order.
//
//	GET /receipts/categories -> 200 {categories}
func (h *ReceiptHandler) Categories(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string][]string{"categories": models.SuggestedCategories()})
}

// bindFilters parses and validates the list filters. When ok is false the
// error response has already been written and err is its send result.
func (h *ReceiptHandler) bindFilters(c echo.Context) (models.ReceiptFilterParams, bool, error) {
	filters, err := models.ParseReceiptFilterParams(c.QueryParams())
	if err != nil {
		return filters, false, SendError(c, errors.ValidationInvalidFormat)
	}
	if err := c.Validate(&filters); err != nil {
		return filters, false, SendValidationError(c, validation.FormatErrors(err))
	}
	return filters, true, nil
}

// scanOne runs the store, extract and create steps for one upload. Anything
// stored before a later step fails is removed again.
func (h *ReceiptHandler) scanOne(ctx context.Context, fh *multipart.FileHeader) (*models.Receipt, error) {
	src, err := fh.Open()
	if err != nil {
		return nil, &scanError{code: errors.UploadReadFailed, err: err}
	}
	defer src.Close()

	imagePath, err := h.images.Save(fh.Header.Get(echo.HeaderContentType), src)
	if err != nil {
		return nil, &scanError{code: storageErrorCode(err), err: err}
	}

	start := time.Now()
	result, err := h.extractor.Extract(ctx, h.images.Path(imagePath))
	h.metrics.RecordProcessingTime(metrics.ExtractionDuration, time.Since(start))
	if err != nil {
		h.discardImage(imagePath)
		h.metrics.IncrementCounter(metrics.ReceiptScanned, map[string]string{"status": "extraction_failed"})
		return nil, &scanError{code: errors.ReceiptExtractionFailed, err: err}
	}

	receipt := result.ToReceipt(imagePath)
	if err := h.receipts.Create(receipt); err != nil {
		h.discardImage(imagePath)
		h.metrics.IncrementCounter(metrics.ReceiptScanned, map[string]string{"status": "store_failed"})
		return nil, &scanError{code: errors.SystemDatabaseError, err: err}
	}

	h.metrics.IncrementCounter(metrics.ReceiptScanned, map[string]string{"status": "success"})
	h.logger.Info("receipt.scanned", "receipt_id", receipt.ID, "image_path", imagePath, "items", len(receipt.Items))
	return receipt, nil
}

func (h *ReceiptHandler) sendScanError(c echo.Context, filename string, err error) error {
	code := scanErrorCode(err)
	level := slog.LevelWarn
	if errors.GetHTTPStatus(code) >= http.StatusInternalServerError {
		level = slog.LevelError
	}
	h.logger.Log(c.Request().Context(), level, "receipt.scan_failed",
		"trace_id", getTraceID(c),
		"filename", filename,
		"code", code,
		"error", err,
	)
	return SendError(c, code)
}

func (h *ReceiptHandler) discardImage(imagePath string) {
	if err := h.images.Delete(imagePath); err != nil {
		h.logger.Warn("receipt.image_cleanup_failed", "image_path", imagePath, "error", err)
	}
}

func scanErrorCode(err error) errors.ErrorCode {
	var se *scanError
	if stderrors.As(err, &se) {
		return se.code
	}
	return errors.UploadFailed
}

func storageErrorCode(err error) errors.ErrorCode {
	switch {
	case stderrors.Is(err, storage.ErrUnsupportedFormat):
		return errors.UploadUnsupportedFormat
	case stderrors.Is(err, storage.ErrFileTooLarge):
		return errors.UploadFileTooLarge
	case stderrors.Is(err, storage.ErrInvalidImage):
		return errors.UploadInvalidImage
	default:
		return errors.UploadFailed
	}
}
