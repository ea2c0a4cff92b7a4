package buttons

import (
	"github.com/spetersoncode/slicestore"
	"github.com/spetersoncode/slicestore/slice"
)

// Counter is the state of the counter slice.
type Counter struct {
	Value int `json:"value"`
}

// CounterSlice counts up and down from zero.
var CounterSlice = slice.MustCreate("counter", Counter{},
	slice.On("increment", func(c Counter) Counter {
		c.Value++
		return c
	}),
	slice.On("decrement", func(c Counter) Counter {
		c.Value--
		return c
	}),
)

var (
	incrementAction = CounterSlice.MustCreator("increment")
	decrementAction = CounterSlice.MustCreator("decrement")
)

// Increment returns the "counter/increment" action.
func Increment() slicestore.Action { return incrementAction() }

// Decrement returns the "counter/decrement" action.
func Decrement() slicestore.Action { return decrementAction() }

// SelectCount reads the counter value from a snapshot.
var SelectCount = slice.Selector(CounterSlice, func(c Counter) int { return c.Value })
