// Package ratelimit provides per-client rate limiting using a token bucket.
// Analysis requests fan out to a rate-limited external model, so the API
// enforces its own ceiling rather than passing request storms upstream.
package ratelimit

import (
	"sync"
	"time"
)

// tokenBucket allows a burst of capacity requests, refilling at a steady
// rate. All fields are guarded by mu.
type tokenBucket struct {
	capacity   int
	refillRate float64 // tokens per second
	tokens     float64
	lastRefill time.Time
	mu         sync.Mutex
}

func newTokenBucket(capacity int, refillRate float64) *tokenBucket {
	return &tokenBucket{
		capacity:   capacity,
		refillRate: refillRate,
		tokens:     float64(capacity),
		lastRefill: time.Now(),
	}
}

func (tb *tokenBucket) allow() bool {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	now := time.Now()
	tb.tokens = min(float64(tb.capacity), tb.tokens+now.Sub(tb.lastRefill).Seconds()*tb.refillRate)
	tb.lastRefill = now

	if tb.tokens >= 1.0 {
		tb.tokens -= 1.0
		return true
	}
	return false
}

// Config holds rate limiting configuration.
type Config struct {
	Enabled bool
	// Limit is the number of requests allowed per Window for one client.
	Limit  int
	Window time.Duration
	// CleanupInterval is how often idle client buckets are evicted.
	// Zero disables the cleanup goroutine.
	CleanupInterval time.Duration
}

// DefaultConfig returns the default limiter configuration: 30 requests per
// minute per client, with idle buckets swept every 5 minutes.
func DefaultConfig() *Config {
	return &Config{
		Enabled:         true,
		Limit:           30,
		Window:          time.Minute,
		CleanupInterval: 5 * time.Minute,
	}
}

// bucketIdleTimeout is how long a client bucket may go unused before the
// cleanup pass evicts it. Client ids come from request headers, so the map
// must not grow without bound.
const bucketIdleTimeout = time.Hour

// Limiter manages token buckets for multiple clients.
type Limiter struct {
	config *Config
	mu     sync.Mutex
	// buckets and lastAccess share keys; both guarded by mu.
	buckets    map[string]*tokenBucket
	lastAccess map[string]time.Time

	cleanupTicker *time.Ticker
	cleanupStop   chan struct{}
}

// NewLimiter creates a limiter with the given configuration.
func NewLimiter(config *Config) *Limiter {
	if config == nil {
		config = DefaultConfig()
	}
	l := &Limiter{
		config:     config,
		buckets:    make(map[string]*tokenBucket),
		lastAccess: make(map[string]time.Time),
	}

	if config.Enabled && config.CleanupInterval > 0 {
		l.cleanupTicker = time.NewTicker(config.CleanupInterval)
		l.cleanupStop = make(chan struct{})
		go l.cleanupLoop()
	}

	return l
}

// Allow reports whether the client may proceed, consuming a token if so.
func (l *Limiter) Allow(clientID string) bool {
	if !l.config.Enabled {
		return true
	}

	l.mu.Lock()
	bucket, ok := l.buckets[clientID]
	if !ok {
		refillRate := float64(l.config.Limit) / l.config.Window.Seconds()
		bucket = newTokenBucket(l.config.Limit, refillRate)
		l.buckets[clientID] = bucket
	}
	l.lastAccess[clientID] = time.Now()
	l.mu.Unlock()

	return bucket.allow()
}

func (l *Limiter) cleanupLoop() {
	for {
		select {
		case <-l.cleanupTicker.C:
			l.evictIdle(time.Now().Add(-bucketIdleTimeout))
		case <-l.cleanupStop:
			return
		}
	}
}

// evictIdle removes buckets whose last access is before cutoff.
func (l *Limiter) evictIdle(cutoff time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for id, last := range l.lastAccess {
		if last.Before(cutoff) {
			delete(l.buckets, id)
			delete(l.lastAccess, id)
		}
	}
}

// Stop halts the cleanup goroutine. Safe to call on a limiter that never
// started one.
func (l *Limiter) Stop() {
	if l.cleanupTicker != nil {
		l.cleanupTicker.Stop()
	}
	if l.cleanupStop != nil {
		close(l.cleanupStop)
	}
}

// Limit returns the configured per-window request limit.
func (l *Limiter) Limit() int {
	return l.config.Limit
}
