package slicestore

import (
	"fmt"
	"strings"
)

// Separator joins a slice name and a reducer key in an ActionType.
const Separator = "/"

// ActionType identifies a reducer as "<slice>/<reducer>".
type ActionType string

// NewActionType builds the action type for the given slice and reducer key.
func NewActionType(slice, key string) ActionType {
	return ActionType(slice + Separator + key)
}

// Split returns the slice name and reducer key of the type.
// It splits on the first separator; ok is false when either part is empty.
func (t ActionType) Split() (slice, key string, ok bool) {
	slice, key, found := strings.Cut(string(t), Separator)
	if !found || slice == "" || key == "" {
		return "", "", false
	}
	return slice, key, true
}

// Slice returns the slice name part of the type, or "" if malformed.
func (t ActionType) Slice() string {
	s, _, _ := t.Split()
	return s
}

// Action describes an intended state transition.
type Action struct {
	// Type selects the slice and reducer.
	Type ActionType `json:"type"`

	// Payload is passed to the reducer. Nil for reducers without one.
	Payload any `json:"payload,omitempty"`
}

// HasPayload reports whether the action carries a payload.
func (a Action) HasPayload() bool {
	return a.Payload != nil
}

// String returns the action type, followed by the payload when present.
func (a Action) String() string {
	if a.Payload == nil {
		return string(a.Type)
	}
	return fmt.Sprintf("%s(%v)", a.Type, a.Payload)
}
