// Package reporting keeps an in-memory log of payment attempts and
// aggregates it into summary reports. Nothing here survives a process
// restart.
package reporting

import (
	"sync"
	"time"
)

// Entry statuses.
const (
	StatusSuccess = "SUCCESS"
	StatusFailure = "FAILURE"
)

// Entry records a single payment attempt as observed at the gateway
// boundary.
type Entry struct {
	Timestamp        time.Time
	PaymentID        string // empty for failed attempts, which never get an ID
	Status           string // StatusSuccess or StatusFailure
	Amount           float64
	ErrorMessage     string // set for failures only
	FlaggedForReview bool
}

// Recorder is an append-only, in-memory log of entries. Safe for concurrent
// use.
type Recorder struct {
	mu      sync.Mutex
	entries []Entry
}

// NewRecorder creates an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Record appends one entry.
func (r *Recorder) Record(e Entry) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, e)
}

// Entries returns a copy of everything recorded so far, in insertion order.
func (r *Recorder) Entries() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Entry, len(r.entries))
	copy(out, r.entries)
	return out
}
