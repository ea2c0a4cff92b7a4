// Package slice defines named, independently owned partitions of store state.
//
// A slice bundles a name, a typed initial state and a set of pure reducers.
// Creating a slice also generates one action creator per reducer, stamping
// the action type as "<name>/<reducer>".
//
// # Defining a slice
//
//	type Counter struct{ Value int }
//
//	var counterSlice = slice.MustCreate("counter", Counter{},
//	    slice.On("increment", func(c Counter) Counter { c.Value++; return c }),
//	    slice.On("decrement", func(c Counter) Counter { c.Value--; return c }),
//	    slice.OnPayload("add", func(c Counter, n int) Counter { c.Value += n; return c }),
//	)
//
//	var (
//	    increment = counterSlice.MustCreator("increment")
//	    add       = slice.PayloadCreator[int](counterSlice.MustCreator("add"))
//	)
//
// Reducers receive the state by value and return the next state. They must not
// perform I/O, keep hidden state, or mutate data reachable from the old state.
//
// # Reading state
//
// A slice selects its own state out of a store snapshot:
//
//	count := counterSlice.Select(st.GetState()).Value
//
//	selectValue := slice.Selector(counterSlice, func(c Counter) int { return c.Value })
//
// Slices hold no reference to a store; see package store for composition.
package slice
