package cache

import "time"

// Entry holds a value along with the absolute instant it expires at.
type Entry[T any] struct {
	Value     T
	ExpiresAt time.Time
}

// NewEntry creates an entry expiring ttl after now.
func NewEntry[T any](value T, ttl time.Duration, now time.Time) Entry[T] {
	return Entry[T]{
		Value:     value,
		ExpiresAt: now.Add(ttl),
	}
}

// IsExpired reports whether now is at or past the expiry instant.
func (e Entry[T]) IsExpired(now time.Time) bool {
	return !now.Before(e.ExpiresAt)
}
