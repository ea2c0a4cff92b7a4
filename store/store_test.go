package store

import (
	"bytes"
	"errors"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spetersoncode/slicestore"
	"github.com/spetersoncode/slicestore/event"
	"github.com/spetersoncode/slicestore/slice"
)

type counter struct {
	Value int
}

type message struct {
	Value string
	I     int
}

var messages = []string{
	"Hello World",
	"Output Dune message. They're great!",
	"Have a nice read!",
}

func counterSlice() *slice.Slice[counter] {
	return slice.MustCreate("counter", counter{},
		slice.On("increment", func(c counter) counter { c.Value++; return c }),
		slice.On("decrement", func(c counter) counter { c.Value--; return c }),
		slice.OnPayload("add", func(c counter, n int) counter { c.Value += n; return c }),
		slice.On("explode", func(c counter) counter { panic("boom") }),
	)
}

func messageSlice() *slice.Slice[*message] {
	return slice.MustCreate("message", &message{Value: messages[0]},
		slice.On("nextMessage", func(m *message) *message {
			i := (m.I + 1) % len(messages)
			return &message{Value: messages[i], I: i}
		}),
	)
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
}

func newStore(t *testing.T, opts ...Option) (*Store, *slice.Slice[counter], *slice.Slice[*message]) {
	t.Helper()
	c, m := counterSlice(), messageSlice()
	opts = append([]Option{WithLogger(quietLogger())}, opts...)
	st, err := Configure([]slice.Definition{c, m}, opts...)
	require.NoError(t, err)
	return st, c, m
}

func TestConfigure(t *testing.T) {
	st, c, m := newStore(t)

	gs := st.GetState()
	assert.Equal(t, []string{"counter", "message"}, gs.Names())
	assert.Equal(t, []string{"counter", "message"}, st.Slices())
	assert.Equal(t, uint64(0), gs.Version())
	assert.Equal(t, counter{}, c.Select(gs))
	assert.Equal(t, messages[0], m.Select(gs).Value)
}

func TestConfigure_Errors(t *testing.T) {
	t.Run("duplicate slice names", func(t *testing.T) {
		st, err := Configure([]slice.Definition{counterSlice(), counterSlice()}, WithLogger(quietLogger()))
		assert.Nil(t, st)
		assert.ErrorIs(t, err, slicestore.ErrDuplicateSlice)

		var ce *slicestore.ConfigurationError
		require.ErrorAs(t, err, &ce)
		assert.Equal(t, "counter", ce.Slice)
	})

	t.Run("nil definition", func(t *testing.T) {
		st, err := Configure([]slice.Definition{counterSlice(), nil})
		assert.Nil(t, st)
		assert.True(t, slicestore.IsConfigurationError(err))
		assert.ErrorIs(t, err, slicestore.ErrInvalidName)
	})

	t.Run("typed nil definition", func(t *testing.T) {
		var missing *slice.Slice[counter]
		st, err := Configure([]slice.Definition{missing}, WithLogger(quietLogger()))
		assert.Nil(t, st)
		assert.ErrorIs(t, err, slicestore.ErrInvalidName)

		var ce *slicestore.ConfigurationError
		require.ErrorAs(t, err, &ce)
		assert.Equal(t, "#0", ce.Slice)
	})

	t.Run("slice without reducers", func(t *testing.T) {
		settings := slice.MustCreate("settings", counter{Value: 7})
		st, err := Configure([]slice.Definition{settings}, WithLogger(quietLogger()))
		require.NoError(t, err)
		assert.Equal(t, counter{Value: 7}, settings.Select(st.GetState()))

		_, err = st.Dispatch(slicestore.Action{Type: "settings/increment"})
		assert.True(t, slicestore.IsUnknownAction(err))
	})

	t.Run("must configure panics", func(t *testing.T) {
		assert.Panics(t, func() {
			MustConfigure([]slice.Definition{counterSlice(), counterSlice()})
		})
	})

	t.Run("empty store", func(t *testing.T) {
		st, err := Configure(nil, WithLogger(quietLogger()))
		require.NoError(t, err)
		assert.Equal(t, 0, st.GetState().Len())

		_, err = st.Dispatch(slicestore.Action{Type: "counter/increment"})
		assert.True(t, slicestore.IsUnknownAction(err))
	})
}

func TestDispatch_CounterScenario(t *testing.T) {
	st, c, _ := newStore(t)
	increment := c.MustCreator("increment")
	decrement := c.MustCreator("decrement")

	for _, a := range []slicestore.Action{increment(), increment(), decrement()} {
		_, err := st.Dispatch(a)
		require.NoError(t, err)
	}

	assert.Equal(t, counter{Value: 1}, c.Select(st.GetState()))
	assert.Equal(t, uint64(3), st.GetState().Version())
}

func TestDispatch_MessageWrapsAround(t *testing.T) {
	st, _, m := newStore(t)
	next := m.MustCreator("nextMessage")

	var seen []string
	for i := 0; i < 3; i++ {
		gs, err := st.Dispatch(next())
		require.NoError(t, err)
		seen = append(seen, m.Select(gs).Value)
	}

	assert.Equal(t, []string{messages[1], messages[2], messages[0]}, seen)
	assert.Equal(t, message{Value: messages[0], I: 0}, *m.Select(st.GetState()))
}

func TestDispatch_SequentialFold(t *testing.T) {
	st, c, _ := newStore(t)
	add := slice.PayloadCreator[int](c.MustCreator("add"))

	steps := []int{5, -2, 10, 0, -7, 3}
	expected := c.InitialState()
	for _, n := range steps {
		var err error
		expected, err = c.Reduce(expected, "add", n)
		require.NoError(t, err)

		_, err = st.Dispatch(add(n))
		require.NoError(t, err)
	}

	assert.Equal(t, expected, c.Select(st.GetState()))
	assert.Equal(t, 9, expected.Value)
}

func TestDispatch_LeavesOtherSlicesUntouched(t *testing.T) {
	st, c, m := newStore(t)

	before := st.GetState()
	msgBefore := m.Select(before)

	after, err := st.Dispatch(c.MustCreator("increment")())
	require.NoError(t, err)

	assert.NotSame(t, before, after, "every commit publishes a new snapshot")
	assert.Same(t, msgBefore, m.Select(after), "untouched slice keeps its identity")
	assert.Equal(t, counter{}, c.Select(before), "old snapshot is not mutated")
}

func TestDispatch_UnknownAction(t *testing.T) {
	st, _, _ := newStore(t)
	before := st.GetState()

	tests := []slicestore.ActionType{
		"counter/reset",
		"nosuch/increment",
		"increment",
		"",
	}

	for _, typ := range tests {
		t.Run(string(typ), func(t *testing.T) {
			gs, err := st.Dispatch(slicestore.Action{Type: typ})

			var ue *slicestore.UnknownActionError
			require.ErrorAs(t, err, &ue)
			assert.Equal(t, typ, ue.Type)
			assert.Same(t, before, gs)
			assert.Same(t, before, st.GetState())
		})
	}
}

func TestDispatch_PayloadMismatch(t *testing.T) {
	st, c, _ := newStore(t)
	before := st.GetState()

	gs, err := st.Dispatch(c.MustCreator("add")("three"))

	assert.ErrorIs(t, err, slicestore.ErrPayloadType)
	assert.Same(t, before, gs)
	assert.Equal(t, uint64(0), st.GetState().Version())
}

func TestDispatch_ReducerPanic(t *testing.T) {
	st, c, _ := newStore(t)
	before := st.GetState()

	gs, err := st.Dispatch(c.MustCreator("explode")())

	var re *slicestore.ReducerError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, "boom", re.Panic)
	assert.Same(t, before, gs)

	// The store is still usable
	_, err = st.Dispatch(c.MustCreator("increment")())
	require.NoError(t, err)
	assert.Equal(t, 1, c.Select(st.GetState()).Value)
}

func TestSubscribe(t *testing.T) {
	t.Run("called once per dispatch", func(t *testing.T) {
		st, c, _ := newStore(t)
		calls := 0
		unsubscribe := st.Subscribe(func() { calls++ })

		_, err := st.Dispatch(c.MustCreator("increment")())
		require.NoError(t, err)
		assert.Equal(t, 1, calls)

		unsubscribe()
		_, err = st.Dispatch(c.MustCreator("increment")())
		require.NoError(t, err)
		assert.Equal(t, 1, calls)
	})

	t.Run("not called on failed dispatch", func(t *testing.T) {
		st, _, _ := newStore(t)
		calls := 0
		st.Subscribe(func() { calls++ })

		_, err := st.Dispatch(slicestore.Action{Type: "counter/nope"})
		require.Error(t, err)
		assert.Equal(t, 0, calls)
	})

	t.Run("listener sees the new state", func(t *testing.T) {
		st, c, _ := newStore(t)
		var seen int
		st.Subscribe(func() { seen = c.Select(st.GetState()).Value })

		_, err := st.Dispatch(c.MustCreator("add")(4))
		require.NoError(t, err)
		assert.Equal(t, 4, seen)
	})

	t.Run("registration order", func(t *testing.T) {
		st, c, _ := newStore(t)
		var order []int
		for i := 1; i <= 3; i++ {
			n := i
			st.Subscribe(func() { order = append(order, n) })
		}

		_, err := st.Dispatch(c.MustCreator("increment")())
		require.NoError(t, err)
		assert.Equal(t, []int{1, 2, 3}, order)
	})

	t.Run("same function twice is two registrations", func(t *testing.T) {
		st, c, _ := newStore(t)
		calls := 0
		fn := func() { calls++ }
		unsub1 := st.Subscribe(fn)
		st.Subscribe(fn)
		assert.Equal(t, 2, st.Listeners())

		_, err := st.Dispatch(c.MustCreator("increment")())
		require.NoError(t, err)
		assert.Equal(t, 2, calls)

		unsub1()
		unsub1()
		assert.Equal(t, 1, st.Listeners(), "unsubscribe is idempotent")

		_, err = st.Dispatch(c.MustCreator("increment")())
		require.NoError(t, err)
		assert.Equal(t, 3, calls)
	})

	t.Run("nil listener", func(t *testing.T) {
		st, _, _ := newStore(t)
		unsubscribe := st.Subscribe(nil)
		assert.Equal(t, 0, st.Listeners())
		assert.NotPanics(t, func() { unsubscribe() })
	})

	t.Run("subscribe during notification", func(t *testing.T) {
		st, c, _ := newStore(t)
		lateCalls := 0
		added := false
		st.Subscribe(func() {
			if !added {
				added = true
				st.Subscribe(func() { lateCalls++ })
			}
		})

		_, err := st.Dispatch(c.MustCreator("increment")())
		require.NoError(t, err)
		assert.Equal(t, 0, lateCalls, "new listener waits for the next round")

		_, err = st.Dispatch(c.MustCreator("increment")())
		require.NoError(t, err)
		assert.Equal(t, 1, lateCalls)
	})

	t.Run("unsubscribe during notification", func(t *testing.T) {
		st, c, _ := newStore(t)
		calls := 0
		var unsubscribe Unsubscribe
		unsubscribe = st.Subscribe(func() {
			calls++
			unsubscribe()
		})

		_, err := st.Dispatch(c.MustCreator("increment")())
		require.NoError(t, err)
		_, err = st.Dispatch(c.MustCreator("increment")())
		require.NoError(t, err)
		assert.Equal(t, 1, calls)
		assert.Equal(t, 0, st.Listeners())
	})
}

func TestSubscriberFailure(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))
	events := event.NewChannel()
	var handled []error

	c := counterSlice()
	st, err := Configure([]slice.Definition{c},
		WithLogger(logger),
		WithEvents(events),
		WithErrorHandler(func(err error) { handled = append(handled, err) }),
	)
	require.NoError(t, err)

	cause := errors.New("render failed")
	var after []string
	st.Subscribe(func() { after = append(after, "first") })
	st.Subscribe(func() { panic(cause) })
	st.Subscribe(func() { after = append(after, "third") })

	gs, err := st.Dispatch(c.MustCreator("increment")())
	require.NoError(t, err, "subscriber failures are swallowed")
	assert.Equal(t, 1, c.Select(gs).Value)
	assert.Equal(t, []string{"first", "third"}, after)

	require.Len(t, handled, 1)
	var se *slicestore.SubscriberError
	require.ErrorAs(t, handled[0], &se)
	assert.Equal(t, uint64(2), se.Handle)
	assert.ErrorIs(t, se, cause)

	assert.Contains(t, logs.String(), "subscriber failed")

	var failed []event.Event
	for len(events) > 0 {
		e := <-events
		if e.Type == event.SubscriberFailed {
			failed = append(failed, e)
		}
	}
	require.Len(t, failed, 1)
	assert.Equal(t, "counter", failed[0].Slice)
}

func TestEvents(t *testing.T) {
	events := event.NewChannel()
	st, c, _ := newStore(t, WithEvents(events))

	_, err := st.Dispatch(c.MustCreator("increment")())
	require.NoError(t, err)
	_, err = st.Dispatch(slicestore.Action{Type: "counter/reset"})
	require.Error(t, err)

	var got []event.Event
	for len(events) > 0 {
		got = append(got, <-events)
	}

	require.Len(t, got, 5)
	assert.Equal(t, event.StoreConfigured, got[0].Type)
	assert.Equal(t, uint64(0), got[0].State.Version())

	assert.Equal(t, event.ActionDispatched, got[1].Type)
	assert.Equal(t, uint64(1), got[1].Sequence)

	assert.Equal(t, event.StateCommitted, got[2].Type)
	assert.Equal(t, "counter", got[2].Slice)
	assert.Equal(t, 1, c.Select(got[2].State).Value)

	assert.Equal(t, event.ActionDispatched, got[3].Type)
	assert.Equal(t, uint64(2), got[3].Sequence)

	assert.Equal(t, event.ActionRejected, got[4].Type)
	assert.True(t, slicestore.IsUnknownAction(got[4].Error))
	assert.Same(t, got[2].State, got[4].State)

	for _, e := range got {
		assert.NotEmpty(t, e.ID)
		assert.False(t, e.Timestamp.IsZero())
	}
}

func TestDispatch_Concurrent(t *testing.T) {
	st, c, m := newStore(t)
	var notified int
	var mu sync.Mutex
	st.Subscribe(func() {
		mu.Lock()
		notified++
		mu.Unlock()
	})

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, _ = st.Dispatch(c.MustCreator("increment")())
		}()
		go func() {
			defer wg.Done()
			_ = c.Select(st.GetState())
			_ = m.Select(st.GetState())
		}()
	}
	wg.Wait()

	assert.Equal(t, 100, c.Select(st.GetState()).Value)
	assert.Equal(t, uint64(100), st.GetState().Version())
	assert.Equal(t, 100, notified)
}

func TestDispatch_FromAnotherGoroutineInsideListener(t *testing.T) {
	st, c, _ := newStore(t)
	done := make(chan struct{})
	fired := false
	st.Subscribe(func() {
		if fired {
			return
		}
		fired = true
		go func() {
			defer close(done)
			_, _ = st.Dispatch(c.MustCreator("increment")())
		}()
	})

	_, err := st.Dispatch(c.MustCreator("increment")())
	require.NoError(t, err)
	<-done

	assert.Equal(t, 2, c.Select(st.GetState()).Value)
}

func TestSelect(t *testing.T) {
	st, c, _ := newStore(t)
	value := slice.Selector(c, func(s counter) int { return s.Value })

	_, err := st.Dispatch(c.MustCreator("add")(6))
	require.NoError(t, err)

	assert.Equal(t, 6, Select(st, value))
}
