package services

import (
	"context"
	"log/slog"
	"sync"

	apperrors "receipt-scanner/internal/errors"
	"receipt-scanner/internal/models"
)

// MonthlySummaryState is a snapshot of the summary page
type MonthlySummaryState struct {
	Months        []models.MonthOption
	SelectedYear  int
	SelectedMonth int
	Summary       *models.MonthlySummary
	Loading       bool
	Error         string
}

// HasSelection reports whether a month is selected
func (s MonthlySummaryState) HasSelection() bool {
	return s.SelectedYear != 0 && s.SelectedMonth != 0
}

// MonthlySummarySelector loads the available months, picks the newest one
// and keeps the summary in sync with the selection.
type MonthlySummarySelector struct {
	mu         sync.Mutex
	gateway    SummaryGatewayInterface
	logger     *slog.Logger
	listener   Listener[MonthlySummaryState]
	state      MonthlySummaryState
	monthsGen  uint64
	summaryGen uint64
	closed     bool
}

// NewMonthlySummarySelector creates a selector with no months loaded
func NewMonthlySummarySelector(gateway SummaryGatewayInterface, logger *slog.Logger) *MonthlySummarySelector {
	if logger == nil {
		logger = slog.Default()
	}
	return &MonthlySummarySelector{
		gateway: gateway,
		logger:  logger,
		state:   MonthlySummaryState{Months: []models.MonthOption{}},
	}
}

// OnChange registers a listener for state transitions
func (m *MonthlySummarySelector) OnChange(listener Listener[MonthlySummaryState]) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listener = listener
}

// State returns a snapshot of the current state
func (m *MonthlySummarySelector) State() MonthlySummaryState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshotLocked()
}

// Init fetches the month list and selects the most recent month, which in
// turn fetches its summary. An empty list leaves nothing selected.
func (m *MonthlySummarySelector) Init(ctx context.Context) {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return
	}
	m.monthsGen++
	gen := m.monthsGen
	m.mu.Unlock()

	months, err := m.gateway.GetMonthlyList(ctx)

	m.mu.Lock()
	if m.closed || gen != m.monthsGen {
		m.mu.Unlock()
		m.logger.Debug("summary.months_superseded")
		return
	}
	if err != nil {
		m.state.Error = failureMessage(err, apperrors.SummaryMonthListFailed)
		snapshot, listener := m.snapshotLocked(), m.listener
		m.mu.Unlock()

		m.logger.Warn("summary.months_failed", "error", err)
		notify(listener, snapshot)
		return
	}

	if months == nil {
		months = []models.MonthOption{}
	}
	m.state.Months = months
	autoSelect := len(months) > 0 && !m.state.HasSelection()
	if autoSelect {
		m.state.SelectedYear = months[0].Year
		m.state.SelectedMonth = months[0].Month
	}
	snapshot, listener := m.snapshotLocked(), m.listener
	m.mu.Unlock()

	notify(listener, snapshot)
	if autoSelect {
		m.fetchSummary(ctx)
	}
}

// SelectMonth overrides the selection and fetches that month's summary.
// Selecting the month already selected does nothing while its summary is
// loading or loaded; after a failed fetch it fetches again.
func (m *MonthlySummarySelector) SelectMonth(ctx context.Context, year, month int) {
	m.mu.Lock()
	if m.closed || m.currentLocked(year, month) {
		m.mu.Unlock()
		return
	}
	m.state.SelectedYear = year
	m.state.SelectedMonth = month
	m.mu.Unlock()

	m.fetchSummary(ctx)
}

// Close drops every pending result; later calls have no effect
func (m *MonthlySummarySelector) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
}

func (m *MonthlySummarySelector) fetchSummary(ctx context.Context) {
	m.mu.Lock()
	if m.closed || !m.state.HasSelection() {
		m.mu.Unlock()
		return
	}
	m.summaryGen++
	gen := m.summaryGen
	year, month := m.state.SelectedYear, m.state.SelectedMonth
	m.state.Loading = true
	m.state.Error = ""
	started, listener := m.snapshotLocked(), m.listener
	m.mu.Unlock()

	notify(listener, started)

	summary, err := m.gateway.GetMonthlySummary(ctx, year, month)

	m.mu.Lock()
	if m.closed || gen != m.summaryGen {
		m.mu.Unlock()
		m.logger.Debug("summary.result_superseded", "year", year, "month", month)
		return
	}
	m.state.Loading = false
	if err != nil {
		m.state.Error = failureMessage(err, apperrors.SummaryFetchFailed)
	} else {
		m.state.Summary = summary
	}
	snapshot := m.snapshotLocked()
	listener = m.listener
	m.mu.Unlock()

	if err != nil {
		m.logger.Warn("summary.fetch_failed", "year", year, "month", month, "error", err)
	}
	notify(listener, snapshot)
}

func (m *MonthlySummarySelector) currentLocked(year, month int) bool {
	if m.state.SelectedYear != year || m.state.SelectedMonth != month {
		return false
	}
	if m.state.Loading {
		return true
	}
	loaded := m.state.Summary
	return m.state.Error == "" && loaded != nil && loaded.Year == year && loaded.Month == month
}

func (m *MonthlySummarySelector) snapshotLocked() MonthlySummaryState {
	snapshot := m.state
	snapshot.Months = append([]models.MonthOption(nil), m.state.Months...)
	if snapshot.Months == nil {
		snapshot.Months = []models.MonthOption{}
	}
	return snapshot
}
