package service

import (
	"context"
	"sync"
	"time"
)

// SlotCache memoizes one value for a fixed TTL. It is a single shared
// slot, not a keyed cache: the whole correlated listing is cached as one
// unit, and writes do not invalidate it, so a new submission may take up
// to the TTL to appear. The compute runs under the lock, which also
// collapses concurrent misses into one provider round trip.
type SlotCache[T any] struct {
	mu  sync.Mutex
	ttl time.Duration
	now func() time.Time

	value     T
	fetchedAt time.Time
	valid     bool
}

func NewSlotCache[T any](ttl time.Duration) *SlotCache[T] {
	return &SlotCache[T]{
		ttl: ttl,
		now: time.Now,
	}
}

// GetOrCompute returns the cached value when it is younger than the TTL,
// otherwise runs compute and caches its result. A compute error is
// returned as is and leaves the slot untouched.
func (c *SlotCache[T]) GetOrCompute(ctx context.Context, compute func(ctx context.Context) (T, error)) (T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.valid && c.now().Sub(c.fetchedAt) < c.ttl {
		return c.value, nil
	}

	value, err := compute(ctx)
	if err != nil {
		var zero T
		return zero, err
	}

	c.value = value
	c.fetchedAt = c.now()
	c.valid = true
	return value, nil
}
