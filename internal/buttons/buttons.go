package buttons

import (
	"github.com/spetersoncode/slicestore/slice"
	"github.com/spetersoncode/slicestore/store"
)

// Slices returns the demo slices in registration order.
func Slices() []slice.Definition {
	return []slice.Definition{CounterSlice, MessageSlice}
}

// NewStore configures a store holding the demo slices.
func NewStore(opts ...store.Option) (*store.Store, error) {
	return store.Configure(Slices(), opts...)
}
