// Package event provides the observation stream of a store. Every configure,
// dispatch, commit, rejection and subscriber failure can be delivered as an
// Event on a caller-supplied channel, for devtools-style inspection or for
// bridging to other protocols (see package agui).
package event

import (
	"time"

	"github.com/google/uuid"

	"github.com/spetersoncode/slicestore"
)

// Type identifies the kind of event.
type Type string

// Store lifecycle events
const (
	// StoreConfigured fires once when a store is built. State holds the initial snapshot.
	StoreConfigured Type = "store_configured"
)

// Dispatch events
const (
	// ActionDispatched fires when Dispatch is entered, before the reducer runs.
	ActionDispatched Type = "action_dispatched"

	// StateCommitted fires after a reducer's result is published, before
	// subscribers are notified.
	StateCommitted Type = "state_committed"

	// ActionRejected fires when a dispatch aborts without changing state.
	ActionRejected Type = "action_rejected"
)

// Notification events
const (
	// SubscriberFailed fires when a listener panics during notification.
	SubscriberFailed Type = "subscriber_failed"
)

// Event represents an observable occurrence inside a store.
type Event struct {
	// Type identifies the kind of event.
	Type Type

	// ID uniquely identifies the event.
	ID string

	// Sequence is the dispatch sequence number (1-indexed, 0 for StoreConfigured).
	Sequence uint64

	// Action is the dispatched action, if any.
	Action slicestore.Action

	// Slice names the slice the action was routed to, if resolved.
	Slice string

	// State is the snapshot after the event (initial state for StoreConfigured,
	// new state for StateCommitted, unchanged state for ActionRejected).
	State *slicestore.GlobalState

	// Error holds the failure for ActionRejected and SubscriberFailed.
	Error error

	// Timestamp is when the event occurred.
	Timestamp time.Time
}

// NewID returns a fresh event identifier.
func NewID() string {
	return "evt-" + uuid.New().String()
}

// Emit sends an event to the channel without blocking. It fills in the ID and
// timestamp when unset. A nil or full channel drops the event.
func Emit(ch chan<- Event, e Event) {
	if ch == nil {
		return
	}
	if e.ID == "" {
		e.ID = NewID()
	}
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now()
	}
	select {
	case ch <- e:
	default:
		// Channel full - don't block
	}
}

// NewChannel creates a buffered event channel with standard capacity.
func NewChannel() chan Event {
	return make(chan Event, 100)
}
