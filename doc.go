// Package slicestore provides the shared types of a small observable state
// container built from independently owned slices.
//
// A slice is a named partition of state with an initial value and a set of
// reducers. The store composes slices into a single [GlobalState] snapshot,
// routes each [Action] to the reducer named by its [ActionType] and notifies
// subscribers after every committed change.
//
// # Packages
//
//   - [github.com/spetersoncode/slicestore/slice]: define slices, reducers,
//     action creators and selectors
//   - [github.com/spetersoncode/slicestore/store]: compose slices, dispatch
//     actions and subscribe to changes
//   - [github.com/spetersoncode/slicestore/event]: optional event stream of
//     store activity
//   - [github.com/spetersoncode/slicestore/agui]: map store events to AG-UI
//     state events
//
// # Basic Usage
//
//	type Counter struct{ Value int }
//
//	counter := slice.MustCreate("counter", Counter{},
//	    slice.On("increment", func(c Counter) Counter { c.Value++; return c }),
//	)
//	increment := counter.MustCreator("increment")
//
//	st, err := store.Configure([]slice.Definition{counter})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	st.Subscribe(func() {
//	    fmt.Println(counter.Select(st.GetState()).Value)
//	})
//	st.Dispatch(increment()) // prints 1
//
// # Action Types
//
// Action types have the form "<slice>/<reducer>". Slice names must be
// non-empty and must not contain [Separator]; reducer keys are unique within
// a slice, so every action type resolves to exactly one reducer.
//
// # Snapshots
//
// A [GlobalState] is immutable once published. Each committed dispatch
// produces a new snapshot that shares every untouched slice value with the
// previous one and carries a version one higher.
//
// # Errors
//
// Configuration problems are reported as [*ConfigurationError]. Dispatch
// reports [*UnknownActionError], [*PayloadError], [*StateTypeError] and
// [*ReducerError] without changing state; failing subscribers are reported as
// [*SubscriberError]. Use [errors.Is] with the Err* sentinels or [errors.As]
// with the typed errors.
package slicestore
