// Command buttons is a terminal rendition of a small buttons page. Most buttons
// keep their own state; the counter and the message button are bound to a
// slicestore store and redraw through its subscription.
//
// Configuration is via environment variables (a .env file is loaded if present):
//
//	BUTTONS_TITLE       - Page heading (default: My Favourite Hobby)
//	BUTTONS_ALT_SCREEN  - Use the terminal's alternate screen (default: true)
//	BUTTONS_LOG_LEVEL   - debug, info, warn, or error (default: info)
//	BUTTONS_LOG_FILE    - Log destination (default: logs are discarded)
//	BUTTONS_EVENTS_FILE - Write the AG-UI state stream here (optional)
//
// Usage:
//
//	BUTTONS_LOG_FILE=buttons.log go run ./cmd/buttons
package main

import (
	"fmt"
	"log/slog"
	"math/rand/v2"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/spetersoncode/slicestore/event"
	"github.com/spetersoncode/slicestore/internal/buttons"
	"github.com/spetersoncode/slicestore/store"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "buttons: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := LoadConfig()
	if err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger, closer, err := cfg.Logger()
	if err != nil {
		return err
	}
	defer closer.Close()
	slog.SetDefault(logger)

	opts := []store.Option{
		store.WithLogger(logger),
		store.WithErrorHandler(func(err error) {
			logger.Error("listener error", "error", err)
		}),
	}

	var (
		events chan event.Event
		done   chan struct{}
	)
	if cfg.EventsFile != "" {
		f, err := os.Create(cfg.EventsFile)
		if err != nil {
			return fmt.Errorf("create events file: %w", err)
		}
		defer f.Close()

		events = event.NewChannel()
		done = make(chan struct{})
		opts = append(opts, store.WithEvents(events))
		go func() {
			defer close(done)
			if _, err := streamEvents(f, events, logger); err != nil {
				logger.Error("event stream failed", "error", err)
			}
		}()
	}

	st, err := buttons.NewStore(opts...)
	if err != nil {
		return err
	}

	progOpts := []tea.ProgramOption{}
	if cfg.AltScreen {
		progOpts = append(progOpts, tea.WithAltScreen())
	}

	m := NewModel(st, cfg.Title, logger, rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())))
	_, runErr := tea.NewProgram(m, progOpts...).Run()

	// No dispatch happens after the program exits.
	if events != nil {
		close(events)
		<-done
	}
	return runErr
}
