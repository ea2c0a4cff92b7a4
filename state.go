package slicestore

import (
	"encoding/json"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// GlobalState is an immutable snapshot of every slice's state, ordered by
// slice registration. A store publishes a new *GlobalState on every committed
// dispatch, so pointer inequality is a valid change check.
//
// Callers must treat values returned by Get and Map as read-only.
type GlobalState struct {
	slices  *orderedmap.OrderedMap[string, any]
	version uint64
}

// NewGlobalState creates a version 0 snapshot with the given names and values.
// Names missing from values map to nil.
func NewGlobalState(names []string, values map[string]any) *GlobalState {
	slices := orderedmap.New[string, any]()
	for _, n := range names {
		slices.Set(n, values[n])
	}
	return &GlobalState{slices: slices}
}

// Get returns the state held for the named slice.
func (g *GlobalState) Get(name string) (any, bool) {
	if g == nil {
		return nil, false
	}
	return g.slices.Get(name)
}

// Has reports whether the snapshot contains the named slice.
func (g *GlobalState) Has(name string) bool {
	_, ok := g.Get(name)
	return ok
}

// Names returns the slice names in registration order.
func (g *GlobalState) Names() []string {
	if g == nil {
		return nil
	}
	names := make([]string, 0, g.slices.Len())
	for pair := g.slices.Oldest(); pair != nil; pair = pair.Next() {
		names = append(names, pair.Key)
	}
	return names
}

// Len returns the number of slices in the snapshot.
func (g *GlobalState) Len() int {
	if g == nil {
		return 0
	}
	return g.slices.Len()
}

// Version counts the commits that led to this snapshot.
func (g *GlobalState) Version() uint64 {
	if g == nil {
		return 0
	}
	return g.version
}

// Map returns a shallow copy of the snapshot.
func (g *GlobalState) Map() map[string]any {
	if g == nil {
		return map[string]any{}
	}
	m := make(map[string]any, g.slices.Len())
	for pair := g.slices.Oldest(); pair != nil; pair = pair.Next() {
		m[pair.Key] = pair.Value
	}
	return m
}

// Replace returns a new snapshot with the named slice's state set to value and
// the version incremented. The receiver is left untouched. Replace reports false
// if the slice is not part of the snapshot.
func (g *GlobalState) Replace(name string, value any) (*GlobalState, bool) {
	if !g.Has(name) {
		return g, false
	}
	slices := orderedmap.New[string, any]()
	for pair := g.slices.Oldest(); pair != nil; pair = pair.Next() {
		slices.Set(pair.Key, pair.Value)
	}
	// Set keeps the position of an existing key.
	slices.Set(name, value)
	return &GlobalState{slices: slices, version: g.version + 1}, true
}

// MarshalJSON encodes the snapshot as an object with keys in registration order.
func (g *GlobalState) MarshalJSON() ([]byte, error) {
	if g == nil {
		return []byte("null"), nil
	}
	data, err := g.slices.MarshalJSON()
	if err != nil {
		return nil, g.serializationError(err)
	}
	return data, nil
}

// serializationError names the first slice whose state cannot be encoded.
func (g *GlobalState) serializationError(err error) error {
	for pair := g.slices.Oldest(); pair != nil; pair = pair.Next() {
		if _, perr := json.Marshal(pair.Value); perr != nil {
			return &SerializationError{Slice: pair.Key, Err: perr}
		}
	}
	return &SerializationError{Err: err}
}
