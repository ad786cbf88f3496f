// Package connectivity tracks whether the pass directory is reachable and
// keeps the local cache fresh: every offline to online transition triggers
// a sync, and an empty cache is filled as soon as the device starts online.
package connectivity

import (
	"sync"
)

// Signal is a source of connectivity state.
type Signal interface {
	IsOnline() bool

	// Subscribe registers fn for state changes. fn must not block for long:
	// it runs on the goroutine that observed the change.
	Subscribe(fn func(online bool)) *Subscription
}

// Subscription is a handle returned by Subscribe.
type Subscription struct {
	once   sync.Once
	cancel func()
}

func newSubscription(cancel func()) *Subscription {
	return &Subscription{cancel: cancel}
}

// Unsubscribe stops further deliveries. Safe to call more than once.
func (s *Subscription) Unsubscribe() {
	if s == nil || s.cancel == nil {
		return
	}
	s.once.Do(s.cancel)
}

// listeners is an ordered set of callbacks.
type listeners[T any] struct {
	mu      sync.Mutex
	next    uint64
	entries []listener[T]
}

type listener[T any] struct {
	id uint64
	fn func(T)
}

func (l *listeners[T]) add(fn func(T)) *Subscription {
	l.mu.Lock()
	id := l.next
	l.next++
	l.entries = append(l.entries, listener[T]{id: id, fn: fn})
	l.mu.Unlock()

	return newSubscription(func() { l.remove(id) })
}

func (l *listeners[T]) remove(id uint64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i, e := range l.entries {
		if e.id == id {
			l.entries = append(l.entries[:i:i], l.entries[i+1:]...)
			return
		}
	}
}

func (l *listeners[T]) notify(v T) {
	l.mu.Lock()
	fns := make([]func(T), len(l.entries))
	for i, e := range l.entries {
		fns[i] = e.fn
	}
	l.mu.Unlock()

	for _, fn := range fns {
		fn(v)
	}
}

func (l *listeners[T]) len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

// ManualSignal is a Signal whose state is set by the caller. The gate client
// uses it when probing is disabled.
type ManualSignal struct {
	mu     sync.RWMutex
	online bool
	subs   listeners[bool]
}

func NewManualSignal(online bool) *ManualSignal {
	return &ManualSignal{online: online}
}

func (s *ManualSignal) IsOnline() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.online
}

func (s *ManualSignal) Subscribe(fn func(online bool)) *Subscription {
	return s.subs.add(fn)
}

// Set changes the state and notifies subscribers if it actually changed.
func (s *ManualSignal) Set(online bool) {
	s.mu.Lock()
	changed := s.online != online
	s.online = online
	s.mu.Unlock()

	if changed {
		s.subs.notify(online)
	}
}
