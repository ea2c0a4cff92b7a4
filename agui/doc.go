// Package agui bridges store events to the AG-UI protocol.
//
// AG-UI (Agent-User Interface) is an open, lightweight, event-based protocol
// that standardizes how back-ends keep user-facing applications in sync. Its
// STATE_SNAPSHOT and STATE_DELTA events map directly onto a store: the initial
// snapshot becomes a STATE_SNAPSHOT and every committed dispatch becomes a
// STATE_DELTA with a single JSON Patch "replace" at "/<slice>".
//
// The package does NOT provide HTTP handlers or transport implementations. Use
// the AG-UI SDK's SSE writer or any other transport to deliver the events.
//
// # Usage
//
//	ch := event.NewChannel()
//	st, _ := store.Configure(slices, store.WithEvents(ch))
//
//	mapper := agui.NewMapper(threadID, runID)
//	for ev := range mapper.MapStream(ch) {
//	    writeEvent(ev)
//	}
//
// # Thread Safety
//
// The Mapper is NOT safe for concurrent use. Each goroutine should have its own
// Mapper instance.
package agui
