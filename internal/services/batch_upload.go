package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	apperrors "receipt-scanner/internal/errors"
	"receipt-scanner/internal/files"
	"receipt-scanner/internal/metrics"
	"receipt-scanner/internal/models"
	"receipt-scanner/internal/validation"
)

// Progress milestones reported by BatchUpload
const (
	BatchProgressStarted = 10
	BatchProgressDone    = 100
)

// BatchState is a snapshot of a multi-receipt upload
type BatchState struct {
	Status   UploadStatus
	Files    []files.File
	Result   *models.BatchScanResult
	Error    string
	Progress int
}

// BatchUpload drives selecting and scanning many receipt images in one request.
// It is safe for concurrent use.
type BatchUpload struct {
	mu         sync.Mutex
	gateway    ReceiptGatewayInterface
	metrics    metrics.Recorder
	logger     *slog.Logger
	listener   Listener[BatchState]
	state      BatchState
	generation uint64
}

// NewBatchUpload creates an idle batch lifecycle with no files accepted
func NewBatchUpload(gateway ReceiptGatewayInterface, recorder metrics.Recorder, logger *slog.Logger) *BatchUpload {
	if recorder == nil {
		recorder = metrics.Noop{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &BatchUpload{
		gateway: gateway,
		metrics: recorder,
		logger:  logger,
		state:   BatchState{Status: UploadStatusIdle, Files: []files.File{}},
	}
}

// OnChange registers a listener for state transitions
func (b *BatchUpload) OnChange(listener Listener[BatchState]) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.listener = listener
}

// State returns a snapshot of the current state
func (b *BatchUpload) State() BatchState {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.snapshotLocked()
}

// SelectFiles keeps the files that pass validation and reports how many were
// skipped. Any previous result and progress are cleared.
func (b *BatchUpload) SelectFiles(candidates []files.File) {
	accepted := make([]files.File, 0, len(candidates))
	for _, file := range candidates {
		if err := validation.ValidateUploadFile(file); err != nil {
			b.logger.Info("batch.file_rejected", "file", nameOf(file), "reason", err.Error())
			continue
		}
		accepted = append(accepted, file)
	}

	message := ""
	switch skipped := len(candidates) - len(accepted); {
	case len(accepted) == 0:
		message = apperrors.GetErrorMessage(apperrors.BatchNoValidFiles)
	case skipped > 0:
		message = fmt.Sprintf(apperrors.GetErrorMessage(apperrors.BatchFilesSkipped), skipped)
	}

	b.mu.Lock()
	b.generation++
	b.state = BatchState{
		Status: UploadStatusIdle,
		Files:  accepted,
		Error:  message,
	}
	snapshot, listener := b.snapshotLocked(), b.listener
	b.mu.Unlock()

	notify(listener, snapshot)
}

// Upload sends all accepted files in one batch call. It only runs from idle
// with files accepted; after done or error a new SelectFiles or Reset is
// required.
func (b *BatchUpload) Upload(ctx context.Context) {
	b.mu.Lock()
	if len(b.state.Files) == 0 || b.state.Status != UploadStatusIdle {
		b.mu.Unlock()
		return
	}
	uploads := append([]files.File(nil), b.state.Files...)
	b.state.Status = UploadStatusUploading
	b.state.Error = ""
	b.state.Result = nil
	b.state.Progress = BatchProgressStarted
	gen := b.generation
	started, listener := b.snapshotLocked(), b.listener
	b.mu.Unlock()

	notify(listener, started)

	result, err := b.gateway.BatchScanReceipts(ctx, uploads)

	if err == nil && result == nil {
		result = &models.BatchScanResult{Results: []models.BatchScanResultItem{}}
	}
	if err == nil && result.Recount() {
		b.logger.Warn("batch.counts_mismatch", "success_count", result.SuccessCount, "error_count", result.ErrorCount)
	}

	b.mu.Lock()
	if gen != b.generation {
		b.mu.Unlock()
		b.logger.Debug("batch.result_superseded", "files", len(uploads))
		return
	}
	if err != nil {
		b.state.Status = UploadStatusError
		b.state.Error = failureMessage(err, apperrors.BatchUploadFailed)
	} else {
		b.state.Status = UploadStatusDone
		b.state.Result = result
		b.state.Progress = BatchProgressDone
	}
	snapshot := b.snapshotLocked()
	listener = b.listener
	b.mu.Unlock()

	if err != nil {
		b.logger.Warn("batch.failed", "files", len(uploads), "error", err)
		b.metrics.IncrementCounter(metrics.UploadCompleted, map[string]string{"kind": "batch", "outcome": "error"})
	} else {
		b.logger.Info("batch.done", "files", len(uploads), "success_count", result.SuccessCount, "error_count", result.ErrorCount)
		b.metrics.IncrementCounter(metrics.UploadCompleted, map[string]string{"kind": "batch", "outcome": "done"})
		for _, item := range result.Results {
			outcome := "success"
			if !item.Success {
				outcome = "error"
			}
			b.metrics.IncrementCounter(metrics.BatchFileProcessed, map[string]string{"outcome": outcome})
		}
	}
	notify(listener, snapshot)
}

// Reset returns every field to its initial value
func (b *BatchUpload) Reset() {
	b.mu.Lock()
	b.generation++
	b.state = BatchState{Status: UploadStatusIdle, Files: []files.File{}}
	snapshot, listener := b.snapshotLocked(), b.listener
	b.mu.Unlock()

	notify(listener, snapshot)
}

func (b *BatchUpload) snapshotLocked() BatchState {
	snapshot := b.state
	snapshot.Files = append([]files.File(nil), b.state.Files...)
	if snapshot.Files == nil {
		snapshot.Files = []files.File{}
	}
	return snapshot
}
