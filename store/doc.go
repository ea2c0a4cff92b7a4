// Package store composes slices into one observable state container.
//
// A [Store] owns the current [slicestore.GlobalState] and a dispatch table
// built once at configuration time, mapping every "<slice>/<reducer>" action
// type to its reducer. All mutation goes through [Store.Dispatch].
//
// # Basic Usage
//
// Configure a store once at startup and pass it to the code that needs it:
//
//	st, err := store.Configure([]slice.Definition{counterSlice, messageSlice})
//	if err != nil {
//	    log.Fatal(err) // duplicate slice names, invalid definitions
//	}
//
//	st.Dispatch(increment())
//	count := counterSlice.Select(st.GetState()).Value
//
// # Subscriptions
//
// Listeners are invalidation callbacks: they receive no arguments and pull the
// new snapshot themselves. Snapshots are replaced on every commit and untouched
// slice entries are carried over, so listeners can compare pointers or slice
// values to skip work:
//
//	prev := st.GetState()
//	unsubscribe := st.Subscribe(func() {
//	    next := st.GetState()
//	    if counterSlice.Select(next) != counterSlice.Select(prev) {
//	        redraw()
//	    }
//	    prev = next
//	})
//	defer unsubscribe()
//
// Listeners run synchronously, in registration order, before Dispatch returns.
// A listener that panics is logged, reported through the error handler and the
// event stream, and does not stop the remaining listeners.
//
// # Errors
//
// Dispatch never partially applies an action. An unknown action type returns
// *slicestore.UnknownActionError, a payload of the wrong type returns
// *slicestore.PayloadError and a panicking reducer returns
// *slicestore.ReducerError; in each case the snapshot is unchanged and the
// store stays usable.
//
// # Thread Safety
//
// Dispatches are serialized by a mutex held from reading the current slice state
// until the last listener returns. GetState is a lock-free atomic load.
// Calling Dispatch from inside a listener or reducer on the same goroutine
// deadlocks, because notification runs while the dispatch lock is held. Hand
// the follow-up dispatch to another goroutine instead; it runs once the
// current round has finished:
//
//	st.Subscribe(func() {
//	    if counterSlice.Select(st.GetState()).Value > 10 {
//	        go st.Dispatch(reset())
//	    }
//	})
package store
