package llm

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock advances only when told to, so TTL expiry is deterministic.
type fakeClock struct {
	current time.Time
}

func (f *fakeClock) now() time.Time { return f.current }

func (f *fakeClock) advance(d time.Duration) { f.current = f.current.Add(d) }

func newTestCache(probe func(ctx context.Context) error, clock *fakeClock) *AvailabilityCache {
	c := NewAvailabilityCache(probe, 5*time.Minute, time.Minute)
	c.now = clock.now
	return c
}

func TestIsAvailable_ProbesOncePerWindow(t *testing.T) {
	var calls atomic.Int32
	probe := func(ctx context.Context) error {
		calls.Add(1)
		return nil
	}
	clock := &fakeClock{current: time.Unix(1700000000, 0)}
	cache := newTestCache(probe, clock)

	ctx := context.Background()
	for i := 0; i < 5; i++ {
		assert.True(t, cache.IsAvailable(ctx))
	}
	assert.Equal(t, int32(1), calls.Load())

	// Inside the window the cached value is served.
	clock.advance(4 * time.Minute)
	assert.True(t, cache.IsAvailable(ctx))
	assert.Equal(t, int32(1), calls.Load())

	// Past expiry a fresh probe is issued.
	clock.advance(2 * time.Minute)
	assert.True(t, cache.IsAvailable(ctx))
	assert.Equal(t, int32(2), calls.Load())
}

func TestIsAvailable_NegativeResultCachedShorter(t *testing.T) {
	var calls atomic.Int32
	probe := func(ctx context.Context) error {
		calls.Add(1)
		return errors.New("service down")
	}
	clock := &fakeClock{current: time.Unix(1700000000, 0)}
	cache := newTestCache(probe, clock)

	ctx := context.Background()
	assert.False(t, cache.IsAvailable(ctx))
	assert.False(t, cache.IsAvailable(ctx))
	assert.Equal(t, int32(1), calls.Load())

	// The negative TTL is one minute, not five.
	clock.advance(61 * time.Second)
	assert.False(t, cache.IsAvailable(ctx))
	assert.Equal(t, int32(2), calls.Load())
}

func TestIsAvailable_RecoversAfterOutage(t *testing.T) {
	var down atomic.Bool
	down.Store(true)
	probe := func(ctx context.Context) error {
		if down.Load() {
			return errors.New("unreachable")
		}
		return nil
	}
	clock := &fakeClock{current: time.Unix(1700000000, 0)}
	cache := newTestCache(probe, clock)

	ctx := context.Background()
	assert.False(t, cache.IsAvailable(ctx))

	down.Store(false)
	// Still inside the negative window: stale false is served.
	assert.False(t, cache.IsAvailable(ctx))

	clock.advance(2 * time.Minute)
	assert.True(t, cache.IsAvailable(ctx))
}

func TestIsAvailable_InFlightProbeDoesNotBlockReaders(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})
	probe := func(ctx context.Context) error {
		close(entered)
		<-release
		return nil
	}
	clock := &fakeClock{current: time.Unix(1700000000, 0)}
	cache := newTestCache(probe, clock)

	ctx := context.Background()
	done := make(chan bool)
	go func() { done <- cache.IsAvailable(ctx) }()

	<-entered
	// With no prior cached value, a reader during the probe gets false
	// immediately instead of waiting.
	assert.False(t, cache.IsAvailable(ctx))

	close(release)
	assert.True(t, <-done)
}

func TestIsAvailable_InFlightProbeServesLastCachedValue(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})
	var calls atomic.Int32
	probe := func(ctx context.Context) error {
		if calls.Add(1) == 1 {
			return nil
		}
		close(entered)
		<-release
		return nil
	}
	clock := &fakeClock{current: time.Unix(1700000000, 0)}
	cache := newTestCache(probe, clock)

	ctx := context.Background()
	require.True(t, cache.IsAvailable(ctx))

	// Expire the cache, then start a slow re-probe.
	clock.advance(6 * time.Minute)
	done := make(chan bool)
	go func() { done <- cache.IsAvailable(ctx) }()
	<-entered

	// The stale true is served while the re-probe is in flight.
	assert.True(t, cache.IsAvailable(ctx))

	close(release)
	assert.True(t, <-done)
}

func TestInvalidate_ForcesFreshProbe(t *testing.T) {
	var calls atomic.Int32
	probe := func(ctx context.Context) error {
		calls.Add(1)
		return nil
	}
	clock := &fakeClock{current: time.Unix(1700000000, 0)}
	cache := newTestCache(probe, clock)

	ctx := context.Background()
	assert.True(t, cache.IsAvailable(ctx))
	cache.Invalidate()
	assert.True(t, cache.IsAvailable(ctx))
	assert.Equal(t, int32(2), calls.Load())
}

func TestNewAvailabilityCache_DefaultTTLs(t *testing.T) {
	cache := NewAvailabilityCache(func(ctx context.Context) error { return nil }, 0, 0)

	assert.Equal(t, DefaultAvailableTTL, cache.availableTTL)
	assert.Equal(t, DefaultUnavailableTTL, cache.unavailableTTL)
}
