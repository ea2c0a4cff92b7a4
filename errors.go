package slicestore

import (
	"errors"
	"fmt"
)

var (
	// ErrDuplicateSlice indicates two slices share a name within one store.
	ErrDuplicateSlice = errors.New("slicestore: duplicate slice name")

	// ErrInvalidName indicates an empty or malformed slice name or reducer key.
	ErrInvalidName = errors.New("slicestore: invalid name")

	// ErrInvalidReducer indicates a reducer without a function or a reducer key
	// declared twice in one slice.
	ErrInvalidReducer = errors.New("slicestore: invalid reducer")

	// ErrUnknownAction indicates no slice reducer matches an action type.
	ErrUnknownAction = errors.New("slicestore: unknown action")

	// ErrPayloadType indicates a reducer received a payload of the wrong type.
	ErrPayloadType = errors.New("slicestore: payload type mismatch")

	// ErrStateType indicates a slice state of the wrong dynamic type.
	ErrStateType = errors.New("slicestore: state type mismatch")
)

// ConfigurationError reports an invalid slice definition or store composition.
// No slice or store is produced when it is returned.
type ConfigurationError struct {
	Slice   string
	Reducer string // empty when the problem is not reducer-specific
	Err     error
}

func (e *ConfigurationError) Error() string {
	if e.Reducer != "" {
		return fmt.Sprintf("slicestore: configuration error in slice %q reducer %q: %v", e.Slice, e.Reducer, e.Err)
	}
	return fmt.Sprintf("slicestore: configuration error in slice %q: %v", e.Slice, e.Err)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// UnknownActionError is returned by Dispatch when no reducer matches the action type.
type UnknownActionError struct {
	Type ActionType
}

func (e *UnknownActionError) Error() string {
	return fmt.Sprintf("slicestore: unknown action %q", string(e.Type))
}

func (e *UnknownActionError) Unwrap() error {
	return ErrUnknownAction
}

// PayloadError is returned when an action payload cannot be passed to its reducer.
type PayloadError struct {
	Type ActionType
	Want string
	Got  string
}

func (e *PayloadError) Error() string {
	return fmt.Sprintf("slicestore: action %q wants payload %s, got %s", string(e.Type), e.Want, e.Got)
}

func (e *PayloadError) Unwrap() error {
	return ErrPayloadType
}

// StateTypeError is returned when a slice's stored state is not of the slice's type.
type StateTypeError struct {
	Slice string
	Want  string
	Got   string
}

func (e *StateTypeError) Error() string {
	return fmt.Sprintf("slicestore: slice %q holds %s, want %s", e.Slice, e.Got, e.Want)
}

func (e *StateTypeError) Unwrap() error {
	return ErrStateType
}

// ReducerError reports a reducer that panicked. The dispatch is aborted.
type ReducerError struct {
	Type  ActionType
	Panic any
}

func (e *ReducerError) Error() string {
	return fmt.Sprintf("slicestore: reducer for %q panicked: %v", string(e.Type), e.Panic)
}

// Unwrap returns the panic value when it is an error.
func (e *ReducerError) Unwrap() error {
	if err, ok := e.Panic.(error); ok {
		return err
	}
	return nil
}

// SubscriberError reports a listener that panicked during notification.
// The store logs and swallows it; remaining listeners still run.
type SubscriberError struct {
	Handle uint64
	Action ActionType
	Panic  any
}

func (e *SubscriberError) Error() string {
	return fmt.Sprintf("slicestore: subscriber %d failed after %q: %v", e.Handle, string(e.Action), e.Panic)
}

// Unwrap returns the panic value when it is an error.
func (e *SubscriberError) Unwrap() error {
	if err, ok := e.Panic.(error); ok {
		return err
	}
	return nil
}

// SerializationError wraps a JSON encoding failure for one slice's state.
type SerializationError struct {
	Slice string
	Err   error
}

func (e *SerializationError) Error() string {
	return fmt.Sprintf("slicestore: serialization error for slice %q: %v", e.Slice, e.Err)
}

func (e *SerializationError) Unwrap() error {
	return e.Err
}

// IsConfigurationError reports whether err is or wraps a *ConfigurationError.
func IsConfigurationError(err error) bool {
	var ce *ConfigurationError
	return errors.As(err, &ce)
}

// IsUnknownAction reports whether err is or wraps an unknown action error.
func IsUnknownAction(err error) bool {
	return errors.Is(err, ErrUnknownAction)
}
