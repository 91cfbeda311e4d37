// Package report renders sitecheck results for humans and machines.
//
// The human form is one console line per result. The machine form is a JSON
// array written to disk, one object per checked URL with fields url, status,
// response_time, and timestamp. The status field is polymorphic on purpose:
// a JSON number for a completed check (the HTTP status code) or a JSON
// string carrying the transport error text for a failed one.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/kwren/sitecheck"
)

// StatusValue is the polymorphic status field of a report entry.
//
// A StatusValue marshals to a JSON number (the HTTP status code) when the
// check completed, or to a JSON string (the error text) when it failed.
// Unmarshalling accepts either form, so written reports round-trip.
type StatusValue struct {
	// Code is the HTTP status code. Meaningful only when Failed is false.
	Code int

	// Message is the error text. Meaningful only when Failed is true.
	Message string

	// Failed marks the value as an error rather than a status code.
	Failed bool
}

// MarshalJSON implements json.Marshaler.
func (s StatusValue) MarshalJSON() ([]byte, error) {
	if s.Failed {
		return json.Marshal(s.Message)
	}
	return json.Marshal(s.Code)
}

// UnmarshalJSON implements json.Unmarshaler, accepting either a number
// (status code) or a string (error text).
func (s *StatusValue) UnmarshalJSON(data []byte) error {
	var code int
	if err := json.Unmarshal(data, &code); err == nil {
		*s = StatusValue{Code: code}
		return nil
	}

	var msg string
	if err := json.Unmarshal(data, &msg); err == nil {
		*s = StatusValue{Message: msg, Failed: true}
		return nil
	}

	return fmt.Errorf("status must be a number or a string, got %s", data)
}

// Entry is the JSON representation of a single check result.
type Entry struct {
	// URL is the probed address.
	URL string `json:"url"`

	// Status is the HTTP status code (number) or the error text (string).
	Status StatusValue `json:"status"`

	// ResponseTime is the cumulative check duration in Go duration syntax
	// (e.g. "312.4ms"), covering all attempts and retry delays.
	ResponseTime string `json:"response_time"`

	// Timestamp is the completion instant of the final attempt, RFC 3339
	// with nanoseconds.
	Timestamp string `json:"timestamp"`
}

// NewEntry converts a check result into its JSON representation.
func NewEntry(r sitecheck.Result) Entry {
	status := StatusValue{Code: r.StatusCode}
	if !r.OK() {
		status = StatusValue{Message: r.Err.Error(), Failed: true}
	}

	return Entry{
		URL:          r.URL,
		Status:       status,
		ResponseTime: r.Elapsed.String(),
		Timestamp:    r.CheckedAt.Format(time.RFC3339Nano),
	}
}

// Line renders one result as a human-readable console line:
//
//	[https://example.com] 200 (312.4ms)
//	[https://bad.example] ERROR: request failed: dial tcp: ... (3.1s)
func Line(r sitecheck.Result) string {
	if r.OK() {
		return fmt.Sprintf("[%s] %d (%s)", r.URL, r.StatusCode, r.Elapsed)
	}
	return fmt.Sprintf("[%s] ERROR: %v (%s)", r.URL, r.Err, r.Elapsed)
}

// Marshal serializes the full result set as a JSON array.
//
// An empty result set serializes to "[]", never "null". Element order
// follows the input slice; callers should not attach meaning to it.
func Marshal(results []sitecheck.Result) ([]byte, error) {
	entries := make([]Entry, 0, len(results))
	for _, r := range results {
		entries = append(entries, NewEntry(r))
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to serialize report: %w", err)
	}
	return data, nil
}

// Write serializes the result set and writes it to path, overwriting any
// existing file.
func Write(path string, results []sitecheck.Result) error {
	data, err := Marshal(results)
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write report to %s: %w", path, err)
	}
	return nil
}
