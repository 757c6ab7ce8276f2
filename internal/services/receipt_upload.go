package services

import (
	"context"
	"log/slog"
	"sync"

	apperrors "receipt-scanner/internal/errors"
	"receipt-scanner/internal/files"
	"receipt-scanner/internal/metrics"
	"receipt-scanner/internal/models"
	"receipt-scanner/internal/validation"
)

// UploadStatus is the position of an upload lifecycle
type UploadStatus string

const (
	UploadStatusIdle      UploadStatus = "idle"
	UploadStatusUploading UploadStatus = "uploading"
	UploadStatusAnalyzing UploadStatus = "analyzing"
	UploadStatusDone      UploadStatus = "done"
	UploadStatusError     UploadStatus = "error"
)

// UploadState is a snapshot of a single-receipt upload
type UploadState struct {
	Status  UploadStatus
	File    files.File
	Preview *files.Preview
	Receipt *models.Receipt
	Error   string
}

// InFlight reports whether a scan request is outstanding
func (s UploadState) InFlight() bool {
	return s.Status == UploadStatusUploading || s.Status == UploadStatusAnalyzing
}

// ReceiptUpload drives selecting, previewing and scanning one receipt image.
// It is safe for concurrent use.
type ReceiptUpload struct {
	mu         sync.Mutex
	gateway    ReceiptGatewayInterface
	previews   PreviewStoreInterface
	metrics    metrics.Recorder
	logger     *slog.Logger
	listener   Listener[UploadState]
	state      UploadState
	generation uint64
	closed     bool
}

// NewReceiptUpload creates an idle upload lifecycle. previews may be nil
// when no preview is needed.
func NewReceiptUpload(gateway ReceiptGatewayInterface, previews PreviewStoreInterface, recorder metrics.Recorder, logger *slog.Logger) *ReceiptUpload {
	if recorder == nil {
		recorder = metrics.Noop{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ReceiptUpload{
		gateway:  gateway,
		previews: previews,
		metrics:  recorder,
		logger:   logger,
		state:    UploadState{Status: UploadStatusIdle},
	}
}

// OnChange registers a listener for state transitions
func (u *ReceiptUpload) OnChange(listener Listener[UploadState]) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.listener = listener
}

// State returns a snapshot of the current state
func (u *ReceiptUpload) State() UploadState {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.state
}

// SelectFile validates and adopts file. A rejected file only sets the error
// message; the rejection is also returned.
func (u *ReceiptUpload) SelectFile(file files.File) error {
	if err := validation.ValidateUploadFile(file); err != nil {
		u.mu.Lock()
		if u.closed {
			u.mu.Unlock()
			return err
		}
		u.state.Error = failureMessage(err, apperrors.UploadUnsupportedFormat)
		snapshot, listener := u.state, u.listener
		u.mu.Unlock()

		u.logger.Info("upload.file_rejected", "file", nameOf(file), "reason", err.Error())
		notify(listener, snapshot)
		return err
	}

	u.mu.Lock()
	if u.closed {
		u.mu.Unlock()
		return nil
	}
	u.releasePreviewLocked()

	var preview *files.Preview
	if u.previews != nil {
		p, err := u.previews.Acquire(file)
		if err != nil {
			u.logger.Warn("upload.preview_failed", "file", file.Name(), "error", err)
		} else {
			preview = p
		}
	}

	u.generation++
	u.state = UploadState{Status: UploadStatusIdle, File: file, Preview: preview}
	snapshot, listener := u.state, u.listener
	u.mu.Unlock()

	notify(listener, snapshot)
	return nil
}

// Upload scans the selected file. It only runs from idle with a file
// selected; after done or error a new SelectFile or Reset is required.
func (u *ReceiptUpload) Upload(ctx context.Context) {
	u.mu.Lock()
	file := u.state.File
	if file == nil || u.closed || u.state.Status != UploadStatusIdle {
		u.mu.Unlock()
		return
	}
	u.state.Status = UploadStatusUploading
	u.state.Error = ""
	u.state.Receipt = nil
	uploading := u.state
	// Storing and analyzing happen in the same request, so analysis starts
	// as soon as the request is issued.
	u.state.Status = UploadStatusAnalyzing
	analyzing := u.state
	gen := u.generation
	listener := u.listener
	u.mu.Unlock()

	notify(listener, uploading, analyzing)

	receipt, err := u.gateway.ScanReceipt(ctx, file)

	u.mu.Lock()
	if gen != u.generation || u.closed {
		u.mu.Unlock()
		u.logger.Debug("upload.result_superseded", "file", file.Name())
		return
	}
	if err != nil {
		u.state.Status = UploadStatusError
		u.state.Error = failureMessage(err, apperrors.UploadFailed)
	} else {
		u.state.Status = UploadStatusDone
		u.state.Receipt = receipt
	}
	snapshot := u.state
	listener = u.listener
	u.mu.Unlock()

	if err != nil {
		u.logger.Warn("upload.failed", "file", file.Name(), "error", err)
		u.metrics.IncrementCounter(metrics.UploadCompleted, map[string]string{"kind": "single", "outcome": "error"})
	} else {
		u.logger.Info("upload.done", "file", file.Name(), "receipt_id", receipt.ID)
		u.metrics.IncrementCounter(metrics.UploadCompleted, map[string]string{"kind": "single", "outcome": "done"})
	}
	notify(listener, snapshot)
}

// Reset releases the preview and returns to the initial idle state
func (u *ReceiptUpload) Reset() {
	u.mu.Lock()
	u.releasePreviewLocked()
	u.generation++
	u.state = UploadState{Status: UploadStatusIdle}
	snapshot, listener := u.state, u.listener
	u.mu.Unlock()

	notify(listener, snapshot)
}

// Close releases the preview. Results of calls still in flight are dropped
// and later calls have no effect.
func (u *ReceiptUpload) Close() {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.closed {
		return
	}
	u.closed = true
	u.generation++
	u.releasePreviewLocked()
}

func (u *ReceiptUpload) releasePreviewLocked() {
	if u.state.Preview == nil || u.previews == nil {
		u.state.Preview = nil
		return
	}
	if err := u.previews.Release(u.state.Preview); err != nil {
		u.logger.Warn("upload.preview_release_failed", "preview", u.state.Preview.ID, "error", err)
	}
	u.state.Preview = nil
}

func nameOf(file files.File) string {
	if file == nil {
		return ""
	}
	return file.Name()
}
