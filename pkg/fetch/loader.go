// Package fetch adapts store accessors for presentation consumers that track
// a loading/data/error cycle. Results from superseded calls are discarded
// rather than cancelled; the accessor itself runs to completion.
package fetch

import (
	"context"
	"sync"
)

// Snapshot is the consumer-visible state of the most recent load.
type Snapshot[T any] struct {
	Loading bool
	Data    T
	Err     error
}

// Loader runs accessors off the caller's goroutine and publishes snapshots.
// Starting a new Load supersedes any in-flight one: when the older call
// finally completes, its result is ignored.
type Loader[T any] struct {
	mu    sync.Mutex
	gen   uint64
	snap  Snapshot[T]
	subs  map[uint64]func(Snapshot[T])
	subID uint64
}

// NewLoader returns an idle loader with a zero-value snapshot.
func NewLoader[T any]() *Loader[T] {
	return &Loader[T]{subs: make(map[uint64]func(Snapshot[T]))}
}

// Load starts the accessor and flips the snapshot into its loading state.
// Previous data stays visible while the new call is in flight. The returned
// channel closes when this call's accessor has finished, whether or not its
// result was adopted.
func (l *Loader[T]) Load(ctx context.Context, accessor func(context.Context) (T, error)) <-chan struct{} {
	l.mu.Lock()
	l.gen++
	gen := l.gen
	l.snap.Loading = true
	snap := l.snap
	l.notifyLocked(snap)
	l.mu.Unlock()

	done := make(chan struct{})
	go func() {
		defer close(done)
		data, err := accessor(ctx)

		l.mu.Lock()
		defer l.mu.Unlock()
		if gen != l.gen {
			// A newer Load superseded this one.
			return
		}
		l.snap = Snapshot[T]{Data: data, Err: err}
		l.notifyLocked(l.snap)
	}()
	return done
}

// Snapshot returns the current loading/data/error state.
func (l *Loader[T]) Snapshot() Snapshot[T] {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.snap
}

// Subscribe registers a callback invoked on every snapshot transition.
// The returned function removes the subscription.
func (l *Loader[T]) Subscribe(fn func(Snapshot[T])) func() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.subID++
	id := l.subID
	l.subs[id] = fn
	return func() {
		l.mu.Lock()
		defer l.mu.Unlock()
		delete(l.subs, id)
	}
}

func (l *Loader[T]) notifyLocked(snap Snapshot[T]) {
	for _, fn := range l.subs {
		fn(snap)
	}
}
