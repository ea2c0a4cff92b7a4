package store

import (
	"sync"
)

// Unsubscribe removes a listener registration. Calling it more than once is a no-op.
type Unsubscribe func()

type listener struct {
	handle uint64
	fn     func()
}

// registry is an ordered set of listeners keyed by handle. It has its own lock so
// listeners may subscribe and unsubscribe while a notification round runs.
type registry struct {
	mu      sync.Mutex
	next    uint64
	entries []listener
}

// add registers fn and returns its handle. Handles start at 1.
func (l *registry) add(fn func()) uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.next++
	l.entries = append(l.entries, listener{handle: l.next, fn: fn})
	return l.next
}

// remove drops the registration with the given handle.
func (l *registry) remove(handle uint64) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i, e := range l.entries {
		if e.handle == handle {
			l.entries = append(l.entries[:i:i], l.entries[i+1:]...)
			return true
		}
	}
	return false
}

// snapshot returns the registrations in registration order.
func (l *registry) snapshot() []listener {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]listener, len(l.entries))
	copy(out, l.entries)
	return out
}

func (l *registry) len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}
