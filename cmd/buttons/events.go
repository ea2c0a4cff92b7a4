package main

import (
	"fmt"
	"io"
	"log/slog"

	aguievents "github.com/ag-ui-protocol/ag-ui/sdks/community/go/pkg/core/events"

	"github.com/spetersoncode/slicestore/agui"
	"github.com/spetersoncode/slicestore/event"
)

// streamEvents maps store events to AG-UI events and writes them to w until
// in is closed. It returns the number of events written.
func streamEvents(w io.Writer, in <-chan event.Event, log *slog.Logger) (int, error) {
	mapper := agui.NewMapper("", "")
	log = log.With("thread_id", mapper.ThreadID(), "run_id", mapper.RunID())

	var (
		count   int
		lastErr error
	)
	for ev := range mapper.MapStream(in) {
		if lastErr != nil {
			continue // drain so the mapper goroutine can exit
		}
		if err := writeSSE(w, ev); err != nil {
			log.Error("failed to write AG-UI event", "error", err, "event_type", ev.Type())
			lastErr = err
			continue
		}
		count++
	}

	log.Debug("event stream closed", "events_sent", count)
	return count, lastErr
}

// writeSSE writes an AG-UI event in SSE format.
func writeSSE(w io.Writer, ev aguievents.Event) error {
	data, err := ev.ToJSON()
	if err != nil {
		return fmt.Errorf("failed to serialize event: %w", err)
	}

	// Write SSE format: event: TYPE\ndata: {json}\n\n
	if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", ev.Type(), string(data)); err != nil {
		return fmt.Errorf("failed to write event: %w", err)
	}
	return nil
}
