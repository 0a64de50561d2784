// Package observable provides a concurrency-safe value holder that replays its
// latest value to every subscriber.
package observable

import (
	"context"
	"sync"
)

// Value holds the current value of T and fans out every change.
// Subscribers are conflated: a slow reader only ever sees the newest value.
type Value[T any] struct {
	mu      sync.Mutex
	current T
	nextID  int64
	subs    map[int64]chan T
}

// NewValue creates a holder initialised with initial.
func NewValue[T any](initial T) *Value[T] {
	return &Value[T]{
		current: initial,
		subs:    make(map[int64]chan T),
	}
}

// Get returns the current value.
func (v *Value[T]) Get() T {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.current
}

// Set replaces the current value and notifies subscribers.
func (v *Value[T]) Set(next T) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.publishLocked(next)
}

// Update applies fn to the current value as one atomic read-modify-write and
// returns the new value.
func (v *Value[T]) Update(fn func(T) T) T {
	v.mu.Lock()
	defer v.mu.Unlock()
	next := fn(v.current)
	v.publishLocked(next)
	return next
}

// Subscribe returns a channel that immediately yields the current value and
// then every later one. The channel is closed once ctx is done.
func (v *Value[T]) Subscribe(ctx context.Context) <-chan T {
	ch := make(chan T, 1)

	v.mu.Lock()
	id := v.nextID
	v.nextID++
	ch <- v.current
	if ctx.Err() != nil {
		v.mu.Unlock()
		close(ch)
		return ch
	}
	v.subs[id] = ch
	v.mu.Unlock()

	context.AfterFunc(ctx, func() {
		v.mu.Lock()
		defer v.mu.Unlock()
		if sub, ok := v.subs[id]; ok {
			delete(v.subs, id)
			close(sub)
		}
	})

	return ch
}

// publishLocked must be called with mu held. Sends never block: the buffer
// holds one value and only publishers write to it, under mu.
func (v *Value[T]) publishLocked(next T) {
	v.current = next
	for _, ch := range v.subs {
		select {
		case <-ch:
		default:
		}
		ch <- next
	}
}
