package services

import (
	"context"
	"log/slog"
	"sync"

	apperrors "receipt-scanner/internal/errors"
	"receipt-scanner/internal/models"
)

// ReceiptPageSize is the number of receipts per history page
const ReceiptPageSize = 20

// ReceiptListState is a snapshot of the paginated receipt history
type ReceiptListState struct {
	Page    int
	Filters models.ReceiptFilterParams
	Items   []models.Receipt
	Total   int64
	Loading bool
	Error   string
}

// TotalPages returns the page count for the current total, at least one
func (s ReceiptListState) TotalPages() int {
	pages := int((s.Total + ReceiptPageSize - 1) / ReceiptPageSize)
	if pages < 1 {
		return 1
	}
	return pages
}

// ReceiptList keeps one page of receipts in sync with the page and filters.
// Only the most recently issued fetch may apply its result.
type ReceiptList struct {
	mu         sync.Mutex
	gateway    ReceiptGatewayInterface
	logger     *slog.Logger
	listener   Listener[ReceiptListState]
	state      ReceiptListState
	generation uint64
}

// NewReceiptList creates a history list on page one with no filters
func NewReceiptList(gateway ReceiptGatewayInterface, logger *slog.Logger) *ReceiptList {
	if logger == nil {
		logger = slog.Default()
	}
	return &ReceiptList{
		gateway: gateway,
		logger:  logger,
		state:   ReceiptListState{Page: 1, Items: []models.Receipt{}},
	}
}

// OnChange registers a listener for state transitions
func (l *ReceiptList) OnChange(listener Listener[ReceiptListState]) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.listener = listener
}

// State returns a snapshot of the current state
func (l *ReceiptList) State() ReceiptListState {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.snapshotLocked()
}

// Load fetches the current page with the current filters
func (l *ReceiptList) Load(ctx context.Context) {
	l.fetch(ctx, nil)
}

// Refresh re-fetches the current page, e.g. after a delete
func (l *ReceiptList) Refresh(ctx context.Context) {
	l.fetch(ctx, nil)
}

// SetPage moves to page (clamped to 1) and fetches it
func (l *ReceiptList) SetPage(ctx context.Context, page int) {
	if page < 1 {
		page = 1
	}
	l.fetch(ctx, func(state *ReceiptListState) {
		state.Page = page
	})
}

// SetFilters replaces the filters, goes back to page 1 and fetches
func (l *ReceiptList) SetFilters(ctx context.Context, filters models.ReceiptFilterParams) {
	l.fetch(ctx, func(state *ReceiptListState) {
		state.Filters = filters
		state.Page = 1
	})
}

func (l *ReceiptList) fetch(ctx context.Context, mutate func(*ReceiptListState)) {
	l.mu.Lock()
	if mutate != nil {
		mutate(&l.state)
	}
	l.generation++
	gen := l.generation
	page := l.state.Page
	filters := l.state.Filters
	l.state.Loading = true
	l.state.Error = ""
	started, listener := l.snapshotLocked(), l.listener
	l.mu.Unlock()

	notify(listener, started)

	skip := (page - 1) * ReceiptPageSize
	list, err := l.gateway.ListReceipts(ctx, skip, ReceiptPageSize, &filters)

	l.mu.Lock()
	if gen != l.generation {
		l.mu.Unlock()
		l.logger.Debug("receipt_list.result_superseded", "page", page)
		return
	}
	l.state.Loading = false
	if err != nil {
		l.state.Error = failureMessage(err, apperrors.ReceiptListFailed)
	} else if list != nil {
		l.state.Items = list.Items
		l.state.Total = list.Total
	}
	snapshot := l.snapshotLocked()
	listener = l.listener
	l.mu.Unlock()

	if err != nil {
		l.logger.Warn("receipt_list.fetch_failed", "page", page, "error", err)
	}
	notify(listener, snapshot)
}

func (l *ReceiptList) snapshotLocked() ReceiptListState {
	snapshot := l.state
	snapshot.Items = append([]models.Receipt(nil), l.state.Items...)
	if snapshot.Items == nil {
		snapshot.Items = []models.Receipt{}
	}
	return snapshot
}
