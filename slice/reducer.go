package slice

import (
	"fmt"
	"reflect"

	"github.com/spetersoncode/slicestore"
)

// Reducer is one named state transition of a slice with state type S.
// Build reducers with On and OnPayload.
type Reducer[S any] struct {
	key         string
	withPayload bool
	payloadType string
	apply       func(typ slicestore.ActionType, state S, payload any) (S, error)
}

// Key returns the reducer key.
func (r Reducer[S]) Key() string {
	return r.key
}

// TakesPayload reports whether the reducer reads the action payload.
func (r Reducer[S]) TakesPayload() bool {
	return r.withPayload
}

// On defines a reducer that ignores the action payload.
// fn must be pure: it returns the next state and never mutates shared data.
func On[S any](key string, fn func(S) S) Reducer[S] {
	r := Reducer[S]{key: key}
	if fn != nil {
		r.apply = func(_ slicestore.ActionType, state S, _ any) (S, error) {
			return fn(state), nil
		}
	}
	return r
}

// OnPayload defines a reducer that receives a payload of type P.
// Dispatching it with a payload of another type fails with *slicestore.PayloadError.
func OnPayload[S, P any](key string, fn func(S, P) S) Reducer[S] {
	r := Reducer[S]{
		key:         key,
		withPayload: true,
		payloadType: typeName[P](),
	}
	if fn != nil {
		r.apply = func(typ slicestore.ActionType, state S, payload any) (S, error) {
			p, ok := cast[P](payload)
			if !ok {
				return state, &slicestore.PayloadError{
					Type: typ,
					Want: typeName[P](),
					Got:  fmt.Sprintf("%T", payload),
				}
			}
			return fn(state, p), nil
		}
	}
	return r
}

// cast asserts v to T. A nil v converts to the zero T when T is nillable.
func cast[T any](v any) (T, bool) {
	if t, ok := v.(T); ok {
		return t, true
	}
	var zero T
	if v == nil && nillable(reflect.TypeOf((*T)(nil)).Elem()) {
		return zero, true
	}
	return zero, false
}

func nillable(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Interface, reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return true
	}
	return false
}

func typeName[T any]() string {
	return reflect.TypeOf((*T)(nil)).Elem().String()
}
