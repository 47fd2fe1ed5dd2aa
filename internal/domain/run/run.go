package run

import (
	"time"

	"github.com/google/uuid"
)

// Kind names what a run profiles
type Kind string

const (
	KindUCC Kind = "ucc"
	KindIND Kind = "ind"
)

// Run is the context of one profiling call. The ID correlates lifecycle
// events and log lines; nothing outlives the call.
type Run struct {
	ID        string
	Kind      Kind
	Active    bool
	StartTime time.Time
	EndTime   time.Time
}

// New starts a run with a fresh UUID
func New(kind Kind) *Run {
	return &Run{
		ID:        uuid.New().String(),
		Kind:      kind,
		Active:    true,
		StartTime: time.Now(),
	}
}

// Close marks the run as finished
func (r *Run) Close() {
	if !r.Active {
		return
	}
	r.Active = false
	r.EndTime = time.Now()
}

// Duration is the elapsed time of a closed run, or the time so far for an active one
func (r *Run) Duration() time.Duration {
	if r.Active {
		return time.Since(r.StartTime)
	}
	return r.EndTime.Sub(r.StartTime)
}
