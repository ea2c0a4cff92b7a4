package agui

import (
	"strings"

	"github.com/ag-ui-protocol/ag-ui/sdks/community/go/pkg/core/events"

	"github.com/spetersoncode/slicestore"
	"github.com/spetersoncode/slicestore/event"
)

// PatchReplace is the JSON Patch operation used for committed slices.
const PatchReplace = "replace"

// Mapper converts store events to AG-UI state events.
//
// Create a new Mapper for each stream using NewMapper. The Mapper is not
// safe for concurrent use - each goroutine should have its own Mapper.
type Mapper struct {
	threadID string
	runID    string
}

// NewMapper creates a new Mapper for a single stream.
// The threadID and runID are used in lifecycle events (RUN_STARTED, RUN_FINISHED).
func NewMapper(threadID, runID string) *Mapper {
	if threadID == "" {
		threadID = events.GenerateThreadID()
	}
	if runID == "" {
		runID = events.GenerateRunID()
	}
	return &Mapper{
		threadID: threadID,
		runID:    runID,
	}
}

// ThreadID returns the thread ID for this mapper.
func (m *Mapper) ThreadID() string {
	return m.threadID
}

// RunID returns the run ID for this mapper.
func (m *Mapper) RunID() string {
	return m.runID
}

// RunStarted returns a RUN_STARTED event.
func (m *Mapper) RunStarted() events.Event {
	return events.NewRunStartedEvent(m.threadID, m.runID)
}

// RunFinished returns a RUN_FINISHED event.
func (m *Mapper) RunFinished() events.Event {
	return events.NewRunFinishedEvent(m.threadID, m.runID)
}

// Snapshot returns a STATE_SNAPSHOT event carrying the whole snapshot.
func (m *Mapper) Snapshot(state *slicestore.GlobalState) events.Event {
	return events.NewStateSnapshotEvent(state)
}

// Delta returns a STATE_DELTA event replacing one slice's state.
func (m *Mapper) Delta(sliceName string, value any) events.Event {
	return events.NewStateDeltaEvent([]events.JSONPatchOperation{
		{Op: PatchReplace, Path: Pointer(sliceName), Value: value},
	})
}

// MapEvent converts a store event to an AG-UI event.
// Returns nil for events that have no AG-UI equivalent.
func (m *Mapper) MapEvent(e event.Event) events.Event {
	switch e.Type {
	case event.StoreConfigured:
		if e.State == nil {
			return nil
		}
		return m.Snapshot(e.State)

	case event.StateCommitted:
		if e.State == nil || e.Slice == "" {
			return nil
		}
		v, ok := e.State.Get(e.Slice)
		if !ok {
			return nil
		}
		return m.Delta(e.Slice, v)

	// Rejected dispatches and listener failures leave state unchanged
	case event.ActionDispatched, event.ActionRejected, event.SubscriberFailed:
		return nil

	default:
		return nil
	}
}

// MapStream converts a channel of store events into AG-UI events, bracketed
// by RUN_STARTED and RUN_FINISHED. The output closes after the input closes.
func (m *Mapper) MapStream(in <-chan event.Event) <-chan events.Event {
	out := make(chan events.Event, 100)
	go func() {
		defer close(out)
		out <- m.RunStarted()
		for e := range in {
			if ev := m.MapEvent(e); ev != nil {
				out <- ev
			}
		}
		out <- m.RunFinished()
	}()
	return out
}

// Pointer returns the JSON Pointer for a top-level slice key.
func Pointer(sliceName string) string {
	return "/" + pointerEscaper.Replace(sliceName)
}

// pointerEscaper applies RFC 6901 escaping.
var pointerEscaper = strings.NewReplacer("~", "~0", "/", "~1")
