package ratelimit

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAllow_WithinLimit(t *testing.T) {
	limiter := NewLimiter(&Config{Enabled: true, Limit: 5, Window: time.Minute})

	for i := 0; i < 5; i++ {
		assert.True(t, limiter.Allow("client-a"), "request %d", i)
	}
	assert.False(t, limiter.Allow("client-a"))
}

func TestAllow_PerClientBuckets(t *testing.T) {
	limiter := NewLimiter(&Config{Enabled: true, Limit: 1, Window: time.Minute})

	assert.True(t, limiter.Allow("client-a"))
	assert.False(t, limiter.Allow("client-a"))
	// A different client has its own bucket.
	assert.True(t, limiter.Allow("client-b"))
}

func TestAllow_Disabled(t *testing.T) {
	limiter := NewLimiter(&Config{Enabled: false, Limit: 1, Window: time.Minute})

	for i := 0; i < 100; i++ {
		assert.True(t, limiter.Allow("client-a"))
	}
}

func TestAllow_RefillsOverTime(t *testing.T) {
	// 100 tokens per second so the refill is observable without a long sleep.
	limiter := NewLimiter(&Config{Enabled: true, Limit: 100, Window: time.Second})

	for i := 0; i < 100; i++ {
		assert.True(t, limiter.Allow("client-a"))
	}
	assert.False(t, limiter.Allow("client-a"))

	time.Sleep(50 * time.Millisecond)
	assert.True(t, limiter.Allow("client-a"))
}

func TestNewLimiter_NilConfigUsesDefaults(t *testing.T) {
	limiter := NewLimiter(nil)
	defer limiter.Stop()

	assert.Equal(t, 30, limiter.Limit())
	assert.True(t, limiter.Allow("client-a"))
}

func TestAllow_ManyClients(t *testing.T) {
	limiter := NewLimiter(&Config{Enabled: true, Limit: 2, Window: time.Minute})

	for i := 0; i < 50; i++ {
		clientID := fmt.Sprintf("client-%d", i)
		assert.True(t, limiter.Allow(clientID))
	}
}

func TestEvictIdle_RemovesStaleBuckets(t *testing.T) {
	limiter := NewLimiter(&Config{Enabled: true, Limit: 2, Window: time.Minute})

	// Client ids come from request headers, so a caller rotating them must
	// not grow the map forever.
	for i := 0; i < 1000; i++ {
		limiter.Allow(fmt.Sprintf("client-%d", i))
	}
	limiter.mu.Lock()
	assert.Len(t, limiter.buckets, 1000)
	for id := range limiter.lastAccess {
		limiter.lastAccess[id] = time.Now().Add(-2 * bucketIdleTimeout)
	}
	limiter.mu.Unlock()

	limiter.evictIdle(time.Now().Add(-bucketIdleTimeout))

	limiter.mu.Lock()
	defer limiter.mu.Unlock()
	assert.Empty(t, limiter.buckets)
	assert.Empty(t, limiter.lastAccess)
}

func TestEvictIdle_KeepsActiveBuckets(t *testing.T) {
	limiter := NewLimiter(&Config{Enabled: true, Limit: 1, Window: time.Minute})

	limiter.Allow("stale")
	limiter.Allow("active")
	limiter.mu.Lock()
	limiter.lastAccess["stale"] = time.Now().Add(-2 * bucketIdleTimeout)
	limiter.mu.Unlock()

	limiter.evictIdle(time.Now().Add(-bucketIdleTimeout))

	limiter.mu.Lock()
	defer limiter.mu.Unlock()
	assert.NotContains(t, limiter.buckets, "stale")
	assert.Contains(t, limiter.buckets, "active")
	// The active client's consumed token survives eviction of its neighbor.
	bucket := limiter.buckets["active"]
	bucket.mu.Lock()
	assert.Less(t, bucket.tokens, 1.0)
	bucket.mu.Unlock()
}

func TestStop_WithoutCleanupGoroutine(t *testing.T) {
	limiter := NewLimiter(&Config{Enabled: true, Limit: 1, Window: time.Minute})

	// CleanupInterval was zero, so no ticker was started.
	assert.NotPanics(t, func() { limiter.Stop() })
}

func TestNewLimiter_CleanupGoroutineSweeps(t *testing.T) {
	limiter := NewLimiter(&Config{
		Enabled:         true,
		Limit:           1,
		Window:          time.Minute,
		CleanupInterval: 10 * time.Millisecond,
	})
	defer limiter.Stop()

	limiter.Allow("client-a")
	limiter.mu.Lock()
	limiter.lastAccess["client-a"] = time.Now().Add(-2 * bucketIdleTimeout)
	limiter.mu.Unlock()

	assert.Eventually(t, func() bool {
		limiter.mu.Lock()
		defer limiter.mu.Unlock()
		return len(limiter.buckets) == 0
	}, time.Second, 10*time.Millisecond)
}
