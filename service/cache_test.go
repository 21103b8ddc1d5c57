package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlotCacheComputesOnce(t *testing.T) {
	cache := NewSlotCache[int](time.Minute)
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	cache.now = func() time.Time { return now }

	calls := 0
	compute := func(ctx context.Context) (int, error) {
		calls++
		return calls, nil
	}

	v, err := cache.GetOrCompute(context.Background(), compute)
	require.NoError(t, err)
	assert.Equal(t, 1, v)

	now = now.Add(59 * time.Second)
	v, err = cache.GetOrCompute(context.Background(), compute)
	require.NoError(t, err)
	assert.Equal(t, 1, v)
	assert.Equal(t, 1, calls)
}

func TestSlotCacheRecomputesAfterTTL(t *testing.T) {
	cache := NewSlotCache[int](time.Minute)
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	cache.now = func() time.Time { return now }

	calls := 0
	compute := func(ctx context.Context) (int, error) {
		calls++
		return calls, nil
	}

	_, err := cache.GetOrCompute(context.Background(), compute)
	require.NoError(t, err)

	now = now.Add(61 * time.Second)
	v, err := cache.GetOrCompute(context.Background(), compute)
	require.NoError(t, err)
	assert.Equal(t, 2, v)
}

func TestSlotCacheErrorNotCached(t *testing.T) {
	cache := NewSlotCache[int](time.Minute)

	_, err := cache.GetOrCompute(context.Background(), func(ctx context.Context) (int, error) {
		return 0, assert.AnError
	})
	assert.Error(t, err)

	v, err := cache.GetOrCompute(context.Background(), func(ctx context.Context) (int, error) {
		return 7, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 7, v)
}
