package slice

import (
	"fmt"
	"strings"

	"github.com/spetersoncode/slicestore"
)

// ReduceFunc is the type-erased form of a reducer used by a store.
type ReduceFunc func(state any, payload any) (any, error)

// Definition is what a store needs to compose a slice.
// *Slice[S] implements it.
type Definition interface {
	// Name returns the unique slice name.
	Name() string

	// Initial returns the slice's initial state.
	Initial() any

	// Reducers returns one ReduceFunc per reducer key.
	Reducers() map[string]ReduceFunc
}

// ActionCreator builds a well-formed action for one reducer.
// The first argument becomes the payload when the reducer takes one;
// arguments are ignored otherwise.
type ActionCreator func(payload ...any) slicestore.Action

// Slice is a named partition of global state with state type S.
// It is immutable after Create and safe for concurrent use.
type Slice[S any] struct {
	name     string
	initial  S
	keys     []string
	reducers map[string]Reducer[S]
	creators map[string]ActionCreator
}

var _ Definition = (*Slice[int])(nil)

// Create defines a slice. It fails with *slicestore.ConfigurationError when the
// name or a reducer key is empty or contains the separator, a reducer key is
// repeated, or a reducer has no function. A slice without reducers is valid;
// its state only ever holds the initial value.
// Name uniqueness is checked when the slice is registered with a store.
func Create[S any](name string, initial S, reducers ...Reducer[S]) (*Slice[S], error) {
	if err := validName(name); err != nil {
		return nil, &slicestore.ConfigurationError{Slice: name, Err: err}
	}
	s := &Slice[S]{
		name:     name,
		initial:  initial,
		keys:     make([]string, 0, len(reducers)),
		reducers: make(map[string]Reducer[S], len(reducers)),
		creators: make(map[string]ActionCreator, len(reducers)),
	}

	for _, r := range reducers {
		if err := validName(r.key); err != nil {
			return nil, &slicestore.ConfigurationError{Slice: name, Reducer: r.key, Err: err}
		}
		if _, exists := s.reducers[r.key]; exists {
			return nil, &slicestore.ConfigurationError{
				Slice:   name,
				Reducer: r.key,
				Err:     fmt.Errorf("%w: duplicate key", slicestore.ErrInvalidReducer),
			}
		}
		if r.apply == nil {
			return nil, &slicestore.ConfigurationError{
				Slice:   name,
				Reducer: r.key,
				Err:     fmt.Errorf("%w: nil function", slicestore.ErrInvalidReducer),
			}
		}
		s.keys = append(s.keys, r.key)
		s.reducers[r.key] = r
		s.creators[r.key] = newCreator(slicestore.NewActionType(name, r.key), r.withPayload)
	}

	return s, nil
}

// MustCreate is like Create but panics on error.
// It is intended for package-level slice definitions.
func MustCreate[S any](name string, initial S, reducers ...Reducer[S]) *Slice[S] {
	s, err := Create(name, initial, reducers...)
	if err != nil {
		panic(err)
	}
	return s
}

func validName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty", slicestore.ErrInvalidName)
	}
	if strings.Contains(name, slicestore.Separator) {
		return fmt.Errorf("%w: %q contains %q", slicestore.ErrInvalidName, name, slicestore.Separator)
	}
	return nil
}

func newCreator(typ slicestore.ActionType, withPayload bool) ActionCreator {
	return func(payload ...any) slicestore.Action {
		a := slicestore.Action{Type: typ}
		if withPayload && len(payload) > 0 {
			a.Payload = payload[0]
		}
		return a
	}
}

// Name returns the slice name, or "" for a nil slice. A store rejects the
// empty name, so a typed-nil definition fails configuration instead of panicking.
func (s *Slice[S]) Name() string {
	if s == nil {
		return ""
	}
	return s.name
}

// InitialState returns the typed initial state.
func (s *Slice[S]) InitialState() S {
	return s.initial
}

// Initial returns the initial state for a store.
func (s *Slice[S]) Initial() any {
	if s == nil {
		var zero S
		return zero
	}
	return s.initial
}

// Keys returns the reducer keys in declaration order.
func (s *Slice[S]) Keys() []string {
	keys := make([]string, len(s.keys))
	copy(keys, s.keys)
	return keys
}

// Type returns the action type for a reducer key.
func (s *Slice[S]) Type(key string) slicestore.ActionType {
	return slicestore.NewActionType(s.name, key)
}

// Creator returns the action creator for a reducer key.
func (s *Slice[S]) Creator(key string) (ActionCreator, bool) {
	c, ok := s.creators[key]
	return c, ok
}

// MustCreator is like Creator but panics when the key is unknown.
func (s *Slice[S]) MustCreator(key string) ActionCreator {
	c, ok := s.creators[key]
	if !ok {
		panic(fmt.Sprintf("slice %q has no reducer %q", s.name, key))
	}
	return c
}

// Actions returns a copy of all action creators keyed by reducer key.
func (s *Slice[S]) Actions() map[string]ActionCreator {
	actions := make(map[string]ActionCreator, len(s.creators))
	for k, c := range s.creators {
		actions[k] = c
	}
	return actions
}

// Reduce applies the reducer for key directly, without a store.
func (s *Slice[S]) Reduce(state S, key string, payload any) (S, error) {
	r, ok := s.reducers[key]
	if !ok {
		return state, &slicestore.UnknownActionError{Type: s.Type(key)}
	}
	return r.apply(s.Type(key), state, payload)
}

// Reducers returns the type-erased reducers for a store.
func (s *Slice[S]) Reducers() map[string]ReduceFunc {
	if s == nil {
		return map[string]ReduceFunc{}
	}
	fns := make(map[string]ReduceFunc, len(s.reducers))
	for key, r := range s.reducers {
		typ := s.Type(key)
		apply := r.apply
		fns[key] = func(state any, payload any) (any, error) {
			current, ok := cast[S](state)
			if !ok {
				return state, &slicestore.StateTypeError{
					Slice: s.name,
					Want:  typeName[S](),
					Got:   fmt.Sprintf("%T", state),
				}
			}
			return apply(typ, current, payload)
		}
	}
	return fns
}

// Select returns this slice's state from a snapshot. It falls back to the
// initial state when the snapshot does not hold a value of type S.
func (s *Slice[S]) Select(state *slicestore.GlobalState) S {
	v, ok := state.Get(s.name)
	if !ok {
		return s.initial
	}
	typed, ok := cast[S](v)
	if !ok {
		return s.initial
	}
	return typed
}

// Selector derives a value from a slice's state in a snapshot.
func Selector[S, T any](s *Slice[S], fn func(S) T) func(*slicestore.GlobalState) T {
	return func(state *slicestore.GlobalState) T {
		return fn(s.Select(state))
	}
}

// PayloadCreator wraps an action creator with a typed payload argument.
func PayloadCreator[P any](c ActionCreator) func(P) slicestore.Action {
	return func(p P) slicestore.Action {
		return c(p)
	}
}
