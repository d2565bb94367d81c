package llm

import (
	"context"
	"sync"
	"time"
)

// Availability cache TTLs. A confirmed-up service is trusted longer than a
// confirmed-down one, so a transient outage self-heals quickly.
const (
	DefaultAvailableTTL   = 5 * time.Minute
	DefaultUnavailableTTL = 1 * time.Minute
)

// AvailabilityCache answers "is the external service up?" without issuing a
// network probe on every call. It is the only shared mutable state in the
// engine; all cache fields are guarded by one mutex so concurrent callers
// never observe a half-updated state or both launch probes.
type AvailabilityCache struct {
	probe          func(ctx context.Context) error
	availableTTL   time.Duration
	unavailableTTL time.Duration

	mu         sync.Mutex
	now        func() time.Time
	inProgress bool
	hasCached  bool
	cached     bool
	expiry     time.Time
}

// NewAvailabilityCache creates a cache around the given probe function.
// Zero TTLs fall back to the defaults (5 min available / 1 min unavailable).
func NewAvailabilityCache(probe func(ctx context.Context) error, availableTTL, unavailableTTL time.Duration) *AvailabilityCache {
	if availableTTL <= 0 {
		availableTTL = DefaultAvailableTTL
	}
	if unavailableTTL <= 0 {
		unavailableTTL = DefaultUnavailableTTL
	}
	return &AvailabilityCache{
		probe:          probe,
		availableTTL:   availableTTL,
		unavailableTTL: unavailableTTL,
		now:            time.Now,
	}
}

// IsAvailable reports whether the service is reachable, probing at most once
// per TTL window. While a probe is in flight, callers get the last cached
// value (or false if none exists) instead of queuing: a best-effort
// non-blocking read.
func (c *AvailabilityCache) IsAvailable(ctx context.Context) bool {
	c.mu.Lock()
	if c.hasCached && c.now().Before(c.expiry) {
		v := c.cached
		c.mu.Unlock()
		return v
	}
	if c.inProgress {
		v := c.hasCached && c.cached
		c.mu.Unlock()
		return v
	}
	c.inProgress = true
	c.mu.Unlock()

	err := c.probe(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.inProgress = false
	c.hasCached = true
	c.cached = err == nil
	if c.cached {
		c.expiry = c.now().Add(c.availableTTL)
	} else {
		c.expiry = c.now().Add(c.unavailableTTL)
	}
	return c.cached
}

// Invalidate drops the cached value so the next call issues a fresh probe.
func (c *AvailabilityCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.hasCached = false
}
