package errors

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// RawError is the transport-level view of a failed API call.
// StatusCode is zero when no response was received.
type RawError struct {
	StatusCode int
	Detail     *string
	Cause      error
}

// HasResponse reports whether the server answered at all
func (r RawError) HasResponse() bool {
	return r.StatusCode != 0
}

// Normalizer turns a raw failure into the single message shown to users
type Normalizer func(raw RawError) string

// NormalizeMessage is the default Normalizer.
func NormalizeMessage(raw RawError) string {
	if !raw.HasResponse() {
		return GetErrorMessage(NetworkUnreachable)
	}

	switch {
	case raw.StatusCode == http.StatusBadRequest:
		return detailOr(raw.Detail, GetErrorMessage(RequestInvalid))
	case raw.StatusCode == http.StatusNotFound:
		return detailOr(raw.Detail, GetErrorMessage(RequestNotFound))
	case raw.StatusCode == http.StatusRequestEntityTooLarge:
		// The size message is fixed regardless of what the server said
		return GetErrorMessage(RequestPayloadTooLarge)
	case raw.StatusCode == http.StatusUnprocessableEntity:
		return detailOr(raw.Detail, GetErrorMessage(RequestUnprocessable))
	case raw.StatusCode >= http.StatusInternalServerError:
		return detailOr(raw.Detail, GetErrorMessage(SystemInternalError))
	default:
		return detailOr(raw.Detail, fmt.Sprintf("エラーが発生しました（%d）", raw.StatusCode))
	}
}

// ParseDetail extracts the detail field from an error body. A string detail
// is returned as is; a list of validation entries is reduced to their msg
// fields. Anything else yields nil.
func ParseDetail(body []byte) *string {
	var envelope struct {
		Detail json.RawMessage `json:"detail"`
	}
	if len(body) == 0 || json.Unmarshal(body, &envelope) != nil || len(envelope.Detail) == 0 || string(envelope.Detail) == "null" {
		return nil
	}

	var text string
	if json.Unmarshal(envelope.Detail, &text) == nil {
		return &text
	}

	var entries []struct {
		Msg string `json:"msg"`
	}
	if json.Unmarshal(envelope.Detail, &entries) == nil {
		msgs := make([]string, 0, len(entries))
		for _, entry := range entries {
			if entry.Msg != "" {
				msgs = append(msgs, entry.Msg)
			}
		}
		if len(msgs) > 0 {
			joined := strings.Join(msgs, "; ")
			return &joined
		}
	}
	return nil
}

func detailOr(detail *string, fallback string) string {
	if detail != nil {
		return *detail
	}
	return fallback
}
