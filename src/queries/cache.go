package queries

import (
	"sync"
	"time"
)

// -----------------------------------------------------------------------------
// TTL cache.
// One namespace per query function, keyed by the full argument tuple. Entries
// expire after the TTL or on an explicit Clear; the clock is injectable so
// expiry is testable. Population is not deduplicated across concurrent
// callers; near-simultaneous misses may fetch twice, which only costs
// redundant work.
// -----------------------------------------------------------------------------

// Clock returns the current time; swapped for a fake in tests.
type Clock func() time.Time

type cacheEntry struct {
	value     any
	fetchedAt time.Time
}

// TTLCache is one cache namespace.
type TTLCache struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     Clock
	entries map[string]cacheEntry
}

// -----------------------------------------------------------------------------

func NewTTLCache(ttl time.Duration, now Clock) *TTLCache {
	if now == nil {
		now = time.Now
	}
	return &TTLCache{
		ttl:     ttl,
		now:     now,
		entries: make(map[string]cacheEntry),
	}
}

// -----------------------------------------------------------------------------

// Get returns the cached value for key when its age is within the TTL.
func (c *TTLCache) Get(key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if c.now().Sub(e.fetchedAt) >= c.ttl {
		delete(c.entries, key)
		return nil, false
	}
	return e.value, true
}

// -----------------------------------------------------------------------------

// Put stores value under key, stamped with the current time.
func (c *TTLCache) Put(key string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = cacheEntry{value: value, fetchedAt: c.now()}
}

// -----------------------------------------------------------------------------

// Clear drops every entry in the namespace.
func (c *TTLCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]cacheEntry)
}

// -----------------------------------------------------------------------------

// Len reports the number of live entries (expired ones included until read).
func (c *TTLCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
