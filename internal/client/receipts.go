package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	apperrors "receipt-scanner/internal/errors"
	"receipt-scanner/internal/files"
	"receipt-scanner/internal/models"
)

const (
	// DefaultPageSize is the list limit used when none is given
	DefaultPageSize = 20

	// ExportFilename is the name DownloadCSV saves the export under
	ExportFilename = "receipts.csv"
)

// ScanReceipt uploads one image under the form field "file" and returns the
// stored, analyzed receipt.
func (c *Client) ScanReceipt(ctx context.Context, file files.File) (*models.Receipt, error) {
	body, contentType, err := encodeMultipart("file", []files.File{file})
	if err != nil {
		return nil, c.localFailure("scan", apperrors.UploadReadFailed, err)
	}

	var receipt models.Receipt
	err = c.doJSON(ctx, request{
		operation:   "scan",
		method:      http.MethodPost,
		path:        "/receipts/scan",
		body:        body,
		contentType: contentType,
	}, &receipt)
	if err != nil {
		return nil, err
	}
	return &receipt, nil
}

// BatchScanReceipts uploads all files in one request, each under the form
// field "files". Per-file failures are reported inside the result.
func (c *Client) BatchScanReceipts(ctx context.Context, uploads []files.File) (*models.BatchScanResult, error) {
	body, contentType, err := encodeMultipart("files", uploads)
	if err != nil {
		return nil, c.localFailure("batch_scan", apperrors.UploadReadFailed, err)
	}

	var result models.BatchScanResult
	err = c.doJSON(ctx, request{
		operation:   "batch_scan",
		method:      http.MethodPost,
		path:        "/receipts/scan/batch",
		body:        body,
		contentType: contentType,
	}, &result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// ListReceipts fetches one page. A non-positive limit means DefaultPageSize.
func (c *Client) ListReceipts(ctx context.Context, skip, limit int, filters *models.ReceiptFilterParams) (*models.ReceiptList, error) {
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 {
		limit = DefaultPageSize
	}

	query := filters.Values()
	query.Set("skip", strconv.Itoa(skip))
	query.Set("limit", strconv.Itoa(limit))

	var list models.ReceiptList
	err := c.doJSON(ctx, request{
		operation: "list",
		method:    http.MethodGet,
		path:      "/receipts",
		query:     query,
	}, &list)
	if err != nil {
		return nil, err
	}
	if list.Items == nil {
		list.Items = []models.Receipt{}
	}
	return &list, nil
}

func (c *Client) GetReceipt(ctx context.Context, id int64) (*models.Receipt, error) {
	var receipt models.Receipt
	err := c.doJSON(ctx, request{
		operation: "get",
		method:    http.MethodGet,
		path:      receiptPath(id),
	}, &receipt)
	if err != nil {
		return nil, err
	}
	return &receipt, nil
}

// UpdateReceipt sends the full editable representation; items are replaced.
func (c *Client) UpdateReceipt(ctx context.Context, id int64, update models.ReceiptUpdate) (*models.Receipt, error) {
	if update.Items == nil {
		update.Items = []models.ReceiptItemCreate{}
	}
	payload, err := json.Marshal(update)
	if err != nil {
		return nil, c.localFailure("update", apperrors.ValidationInvalidFormat, err)
	}

	var receipt models.Receipt
	err = c.doJSON(ctx, request{
		operation:   "update",
		method:      http.MethodPut,
		path:        receiptPath(id),
		body:        bytes.NewReader(payload),
		contentType: "application/json",
	}, &receipt)
	if err != nil {
		return nil, err
	}
	return &receipt, nil
}

func (c *Client) DeleteReceipt(ctx context.Context, id int64) error {
	return c.doJSON(ctx, request{
		operation: "delete",
		method:    http.MethodDelete,
		path:      receiptPath(id),
	}, nil)
}

// ExportCSV streams the CSV export for filters into w and returns the number
// of bytes written.
func (c *Client) ExportCSV(ctx context.Context, filters *models.ReceiptFilterParams, w io.Writer) (int64, error) {
	resp, traceID, err := c.do(ctx, request{
		operation: "export_csv",
		method:    http.MethodGet,
		path:      "/receipts/export/csv",
		query:     filters.Values(),
	})
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	n, err := io.Copy(w, resp.Body)
	if err != nil {
		c.logger.Error("client.http.stream_error", "req_id", traceID, "operation", "export_csv", "error", err)
		return n, c.fail("export_csv", traceID, apperrors.RawError{Cause: err})
	}
	return n, nil
}

// DownloadCSV saves the export as receipts.csv in dir and returns its path.
// Nothing is left behind when the download fails.
func (c *Client) DownloadCSV(ctx context.Context, filters *models.ReceiptFilterParams, dir string) (string, error) {
	tmp, err := os.CreateTemp(dir, ".receipts-*.csv")
	if err != nil {
		return "", c.localFailure("export_csv", apperrors.SystemUnexpectedError, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := c.ExportCSV(ctx, filters, tmp); err != nil {
		tmp.Close()
		return "", err
	}
	if err := tmp.Close(); err != nil {
		return "", c.localFailure("export_csv", apperrors.SystemUnexpectedError, err)
	}

	target := filepath.Join(dir, ExportFilename)
	if err := os.Rename(tmp.Name(), target); err != nil {
		return "", c.localFailure("export_csv", apperrors.SystemUnexpectedError, err)
	}
	return target, nil
}

// localFailure reports an error that happened before any request was sent
func (c *Client) localFailure(operation string, code apperrors.ErrorCode, err error) *APIError {
	c.logger.Error("client.local_error", "operation", operation, "error", err)
	return &APIError{
		Operation: operation,
		Message:   apperrors.GetErrorMessage(code),
		Cause:     err,
	}
}

func receiptPath(id int64) string {
	return fmt.Sprintf("/receipts/%d", id)
}
