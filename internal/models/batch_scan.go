package models

// BatchScanResultItem is the outcome for one file in a batch scan.
type BatchScanResultItem struct {
	Filename string   `json:"filename"`
	Success  bool     `json:"success"`
	Receipt  *Receipt `json:"receipt,omitempty"`
	Error    *string  `json:"error,omitempty"`
}

// BatchScanResult aggregates per-file outcomes of a batch scan.
type BatchScanResult struct {
	Results      []BatchScanResultItem `json:"results"`
	SuccessCount int                   `json:"success_count"`
	ErrorCount   int                   `json:"error_count"`
}

// Recount recomputes the counters from Results and reports whether the
// reported counters disagreed with them.
func (r *BatchScanResult) Recount() bool {
	success, failed := 0, 0
	for _, result := range r.Results {
		if result.Success {
			success++
		} else {
			failed++
		}
	}
	mismatch := success != r.SuccessCount || failed != r.ErrorCount
	r.SuccessCount = success
	r.ErrorCount = failed
	return mismatch
}
