package cache

import (
	"sync"
	"time"
)

// Memory is an in-memory keyed cache with a fixed TTL per write.
// Expired entries are kept until overwritten; callers decide what to do
// with them via Entry.IsExpired.
type Memory[T any] struct {
	mu    sync.RWMutex
	items map[string]Entry[T]
	ttl   time.Duration
	clock func() time.Time
}

// Option configures a Memory cache.
type Option func(*options)

type options struct {
	clock func() time.Time
}

// WithClock overrides the time source used for expiry.
func WithClock(clock func() time.Time) Option {
	return func(o *options) {
		if clock != nil {
			o.clock = clock
		}
	}
}

// NewMemory creates a new in-memory cache with the specified TTL
func NewMemory[T any](ttl time.Duration, opts ...Option) *Memory[T] {
	o := options{clock: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return &Memory[T]{
		items: make(map[string]Entry[T]),
		ttl:   ttl,
		clock: o.clock,
	}
}

// Get returns the entry for key, expired or not.
func (c *Memory[T]) Get(key string) (Entry[T], bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.items[key]
	return e, ok
}

// Fresh returns the value for key only when it has not expired.
func (c *Memory[T]) Fresh(key string) (T, bool) {
	e, ok := c.Get(key)
	if !ok || e.IsExpired(c.clock()) {
		var zero T
		return zero, false
	}
	return e.Value, true
}

// Set stores value under key, replacing any previous entry and restarting its TTL.
func (c *Memory[T]) Set(key string, value T) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items[key] = NewEntry(value, c.ttl, c.clock())
}

// Update replaces the entry for key with fn applied to the current value.
// present is false when no entry exists. The read and write happen under one lock.
func (c *Memory[T]) Update(key string, fn func(current T, present bool) T) T {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.items[key]
	next := fn(e.Value, ok)
	c.items[key] = NewEntry(next, c.ttl, c.clock())
	return next
}
