package services

import (
	apperrors "receipt-scanner/internal/errors"
)

// Listener receives a state snapshot after every transition. It is called
// without any lifecycle lock held.
type Listener[S any] func(S)

// failureMessage returns the message stored in state for a failed call.
// Gateway errors already carry the normalized text.
func failureMessage(err error, fallback apperrors.ErrorCode) string {
	if err == nil {
		return ""
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return apperrors.GetErrorMessage(fallback)
}

func notify[S any](listener Listener[S], snapshots ...S) {
	if listener == nil {
		return
	}
	for _, snapshot := range snapshots {
		listener(snapshot)
	}
}
