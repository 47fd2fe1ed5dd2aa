package profiling

import (
	"time"

	"github.com/leengari/relprofile/internal/domain/run"
)

// EventType represents the lifecycle phases of a profiling run
type EventType string

const (
	EventRunStart   EventType = "run_start"
	EventLevelStart EventType = "level_start"
	EventLevelEnd   EventType = "level_end"
	EventUCCFound   EventType = "ucc_found"
	EventINDFound   EventType = "ind_found"
	EventRunEnd     EventType = "run_end"
)

// Event is emitted by the profilers at each lifecycle phase
type Event struct {
	Type      EventType
	RunID     string      // correlates all events of one profile call
	Kind      run.Kind    // ucc or ind
	Relation  string      // relation name; empty for multi-relation IND runs
	Level     int         // lattice level (UCC runs only)
	Timestamp time.Time   // set by notify
	Data      interface{} // phase-specific payload, see below
}

// LevelStats is the payload of EventLevelEnd
type LevelStats struct {
	Candidates    int // candidates generated at this level
	Pruned        int // candidates skipped as supersets of a known UCC
	Intersections int // PLI intersections computed
	Unique        int // minimal UCCs found at this level
	Pending       int // non-unique candidates carried to the next level
}

// RunSummary is the payload of EventRunEnd
type RunSummary struct {
	Duration time.Duration
	Results  int
	Levels   int // deepest lattice level visited (UCC runs only)
}

// Observer receives profiling lifecycle events. Events are delivered from the
// goroutine that called Profile, never concurrently.
type Observer interface {
	OnEvent(event Event)
}

type notifier struct {
	observers []Observer
}

// AddObserver subscribes an observer to lifecycle events
func (n *notifier) AddObserver(o Observer) {
	n.observers = append(n.observers, o)
}

// RemoveObserver unsubscribes a previously added observer
func (n *notifier) RemoveObserver(o Observer) {
	for i, existing := range n.observers {
		if existing == o {
			n.observers = append(n.observers[:i], n.observers[i+1:]...)
			return
		}
	}
}

func (n *notifier) notify(event Event) {
	if len(n.observers) == 0 {
		return
	}
	event.Timestamp = time.Now()
	for _, o := range n.observers {
		o.OnEvent(event)
	}
}
