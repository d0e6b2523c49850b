// Package cache provides a thread-safe key/value cache with per-entry
// expiration and an explicit reset lifecycle.
//
// Caches are owned by the component that fills them; there is no package
// level cache state.
package cache

import (
	"sync"
	"time"
)

// TTLCache is a thread-safe cache where each entry expires ttl after it was
// stored. A zero ttl keeps entries until Delete or Reset.
type TTLCache[K comparable, V any] struct {
	mu      sync.RWMutex
	entries map[K]entry[V]
	ttl     time.Duration
	now     func() time.Time
	stats   Stats
}

type entry[V any] struct {
	value    V
	storedAt time.Time
}

// Stats counts cache lookups.
type Stats struct {
	Hits   int64
	Misses int64
}

// New creates an empty TTLCache.
func New[K comparable, V any](ttl time.Duration) *TTLCache[K, V] {
	return &TTLCache[K, V]{
		entries: make(map[K]entry[V]),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Get returns the value for key if it is present and not expired.
func (c *TTLCache[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if ok && c.expiredLocked(e) {
		delete(c.entries, key)
		ok = false
	}
	if !ok {
		c.stats.Misses++
		var zero V
		return zero, false
	}
	c.stats.Hits++
	return e.value, true
}

// Set stores value under key and restarts that entry's TTL.
func (c *TTLCache[K, V]) Set(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.entries == nil {
		c.entries = make(map[K]entry[V])
	}
	c.entries[key] = entry[V]{value: value, storedAt: c.clock()}
}

// Delete removes key from the cache.
func (c *TTLCache[K, V]) Delete(key K) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}

// Reset drops every entry and zeroes the statistics.
func (c *TTLCache[K, V]) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[K]entry[V])
	c.stats = Stats{}
}

// Len returns the number of stored entries, including expired ones that
// have not been looked up since they expired.
func (c *TTLCache[K, V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Stats returns a snapshot of the hit and miss counters.
func (c *TTLCache[K, V]) Stats() Stats {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.stats
}

// expiredLocked MUST be called with the lock held.
func (c *TTLCache[K, V]) expiredLocked(e entry[V]) bool {
	return c.ttl > 0 && c.clock().Sub(e.storedAt) >= c.ttl
}

func (c *TTLCache[K, V]) clock() time.Time {
	if c.now == nil {
		return time.Now()
	}
	return c.now()
}
