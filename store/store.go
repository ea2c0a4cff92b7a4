package store

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/spetersoncode/slicestore"
	"github.com/spetersoncode/slicestore/event"
	"github.com/spetersoncode/slicestore/slice"
)

// binding resolves one action type to the slice and reducer that handle it.
type binding struct {
	slice  string
	reduce slice.ReduceFunc
}

// Store composes slices into one observable global state.
// It is safe for concurrent use; dispatches are serialized.
type Store struct {
	// mu serializes dispatch: read slice state, reduce, publish, notify.
	mu  sync.Mutex
	seq uint64 // guarded by mu

	state     atomic.Pointer[slicestore.GlobalState]
	table     map[slicestore.ActionType]binding
	names     []string
	listeners registry

	log     *slog.Logger
	events  chan<- event.Event
	onError ErrorHandler
}

// Configure builds a store from slice definitions. The initial state maps each
// slice name to its initial state, in the given order. Configure fails with
// *slicestore.ConfigurationError when a definition is nil, has an invalid name,
// or shares its name with another slice; no store is returned in that case.
func Configure(slices []slice.Definition, opts ...Option) (*Store, error) {
	o := ApplyOptions(opts...)

	names := make([]string, 0, len(slices))
	initial := make(map[string]any, len(slices))
	table := make(map[slicestore.ActionType]binding)

	for i, def := range slices {
		if def == nil {
			return nil, &slicestore.ConfigurationError{
				Slice: fmt.Sprintf("#%d", i),
				Err:   fmt.Errorf("%w: nil slice", slicestore.ErrInvalidName),
			}
		}
		name := def.Name()
		if name == "" {
			// Also covers typed-nil definitions.
			return nil, &slicestore.ConfigurationError{
				Slice: fmt.Sprintf("#%d", i),
				Err:   fmt.Errorf("%w: empty", slicestore.ErrInvalidName),
			}
		}
		if strings.Contains(name, slicestore.Separator) {
			return nil, &slicestore.ConfigurationError{Slice: name, Err: slicestore.ErrInvalidName}
		}
		if _, exists := initial[name]; exists {
			return nil, &slicestore.ConfigurationError{Slice: name, Err: slicestore.ErrDuplicateSlice}
		}

		names = append(names, name)
		initial[name] = def.Initial()
		for key, fn := range def.Reducers() {
			if fn == nil {
				return nil, &slicestore.ConfigurationError{
					Slice:   name,
					Reducer: key,
					Err:     fmt.Errorf("%w: nil function", slicestore.ErrInvalidReducer),
				}
			}
			table[slicestore.NewActionType(name, key)] = binding{slice: name, reduce: fn}
		}
	}

	s := &Store{
		table:   table,
		names:   names,
		log:     o.Logger.With("component", "store"),
		events:  o.Events,
		onError: o.ErrorHandler,
	}
	gs := slicestore.NewGlobalState(names, initial)
	s.state.Store(gs)

	s.log.Debug("store configured", "slices", names, "actions", len(table))
	event.Emit(s.events, event.Event{Type: event.StoreConfigured, State: gs})
	return s, nil
}

// MustConfigure is like Configure but panics on error.
func MustConfigure(slices []slice.Definition, opts ...Option) *Store {
	s, err := Configure(slices, opts...)
	if err != nil {
		panic(err)
	}
	return s
}

// GetState returns the current snapshot. It never blocks, so listeners may call
// it during notification. Callers must treat the snapshot as read-only.
func (s *Store) GetState() *slicestore.GlobalState {
	return s.state.Load()
}

// Dispatch routes the action to its slice reducer, publishes a new snapshot
// that replaces only that slice's entry, and then calls every listener in
// registration order before returning the new snapshot.
//
// When the action type is unknown, the payload does not fit the reducer, or
// the reducer panics, Dispatch returns the unchanged snapshot and the error.
//
// Listeners and reducers must not call Dispatch on the same store
// synchronously; doing so deadlocks.
func (s *Store) Dispatch(action slicestore.Action) (*slicestore.GlobalState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq++
	seq := s.seq
	current := s.state.Load()

	event.Emit(s.events, event.Event{
		Type:     event.ActionDispatched,
		Sequence: seq,
		Action:   action,
		Slice:    action.Type.Slice(),
		State:    current,
	})

	b, ok := s.table[action.Type]
	if !ok {
		err := &slicestore.UnknownActionError{Type: action.Type}
		s.log.Debug("unknown action", "type", string(action.Type), "seq", seq)
		s.reject(seq, action, "", current, err)
		return current, err
	}

	prev, _ := current.Get(b.slice)
	next, err := s.reduce(action, b, prev)
	if err != nil {
		s.log.Warn("action rejected", "type", string(action.Type), "slice", b.slice, "seq", seq, "error", err)
		s.reject(seq, action, b.slice, current, err)
		return current, err
	}

	committed, _ := current.Replace(b.slice, next)
	s.state.Store(committed)

	event.Emit(s.events, event.Event{
		Type:     event.StateCommitted,
		Sequence: seq,
		Action:   action,
		Slice:    b.slice,
		State:    committed,
	})

	s.notify(seq, action.Type)
	return committed, nil
}

func (s *Store) reduce(action slicestore.Action, b binding, prev any) (next any, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &slicestore.ReducerError{Type: action.Type, Panic: r}
		}
	}()
	return b.reduce(prev, action.Payload)
}

func (s *Store) reject(seq uint64, action slicestore.Action, sliceName string, state *slicestore.GlobalState, err error) {
	event.Emit(s.events, event.Event{
		Type:     event.ActionRejected,
		Sequence: seq,
		Action:   action,
		Slice:    sliceName,
		State:    state,
		Error:    err,
	})
}

// notify calls the listeners registered when the round starts. A listener that
// panics is reported and skipped; the round continues.
func (s *Store) notify(seq uint64, typ slicestore.ActionType) {
	for _, l := range s.listeners.snapshot() {
		err := invoke(l, typ)
		if err == nil {
			continue
		}
		s.log.Error("subscriber failed", "handle", l.handle, "type", string(typ), "seq", seq, "error", err)
		event.Emit(s.events, event.Event{
			Type:     event.SubscriberFailed,
			Sequence: seq,
			Action:   slicestore.Action{Type: typ},
			Slice:    typ.Slice(),
			State:    s.state.Load(),
			Error:    err,
		})
		if s.onError != nil {
			s.onError(err)
		}
	}
}

func invoke(l listener, typ slicestore.ActionType) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &slicestore.SubscriberError{Handle: l.handle, Action: typ, Panic: r}
		}
	}()
	l.fn()
	return nil
}

// Subscribe registers fn to be called after every committed dispatch. Each call
// is a separate registration, even for the same function. The listener receives
// no arguments and should read GetState itself.
//
// A listener added during a notification round is first called on the next
// dispatch; one removed during a round may still be called in that round.
func (s *Store) Subscribe(fn func()) Unsubscribe {
	if fn == nil {
		return func() {}
	}
	handle := s.listeners.add(fn)
	var once sync.Once
	return func() {
		once.Do(func() {
			s.listeners.remove(handle)
		})
	}
}

// Listeners returns the number of registered listeners.
func (s *Store) Listeners() int {
	return s.listeners.len()
}

// Slices returns the slice names in registration order.
func (s *Store) Slices() []string {
	names := make([]string, len(s.names))
	copy(names, s.names)
	return names
}

// Select applies a selector to the current snapshot.
func Select[T any](s *Store, sel func(*slicestore.GlobalState) T) T {
	return sel(s.GetState())
}
