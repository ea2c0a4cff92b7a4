package store

import (
	"log/slog"

	"github.com/spetersoncode/slicestore/event"
)

// ErrorHandler receives every *slicestore.SubscriberError after it is logged.
type ErrorHandler func(err error)

// Options contains configuration for a store.
type Options struct {
	// Logger receives store diagnostics. Defaults to slog.Default().
	Logger *slog.Logger

	// Events receives the store's observation stream. Sends never block;
	// events are dropped when the channel is full.
	Events chan<- event.Event

	// ErrorHandler is called when a subscriber fails.
	ErrorHandler ErrorHandler
}

// Option is a functional option for store configuration.
type Option func(*Options)

// WithLogger sets the logger used for store diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		o.Logger = l
	}
}

// WithEvents streams store events to ch.
func WithEvents(ch chan<- event.Event) Option {
	return func(o *Options) {
		o.Events = ch
	}
}

// WithErrorHandler sets a handler for subscriber failures.
func WithErrorHandler(fn ErrorHandler) Option {
	return func(o *Options) {
		o.ErrorHandler = fn
	}
}

// ApplyOptions applies functional options to a default Options.
func ApplyOptions(opts ...Option) *Options {
	o := &Options{}
	for _, opt := range opts {
		if opt != nil {
			opt(o)
		}
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	return o
}
