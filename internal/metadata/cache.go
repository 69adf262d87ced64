package metadata

import (
	"sync"
	"time"
)

// LookupCache is a process-local TTL cache for per-id episode counts.
// Expiry is lazy: stale entries are treated as absent and evicted on read.
type LookupCache struct {
	mu    sync.RWMutex
	items map[int]lookupEntry
	ttl   time.Duration
	now   func() time.Time
}

type lookupEntry struct {
	count     int
	expiresAt time.Time
}

// NewLookupCache creates a lookup cache with the given TTL and clock.
// A nil clock uses time.Now.
func NewLookupCache(ttl time.Duration, now func() time.Time) *LookupCache {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	if now == nil {
		now = time.Now
	}
	return &LookupCache{
		items: make(map[int]lookupEntry),
		ttl:   ttl,
		now:   now,
	}
}

// Get returns the cached count for an id. A missing or expired entry returns
// ok=false; expired entries are evicted.
func (c *LookupCache) Get(id int) (int, bool) {
	c.mu.RLock()
	entry, ok := c.items[id]
	c.mu.RUnlock()

	if !ok {
		return 0, false
	}
	if !c.now().Before(entry.expiresAt) {
		c.mu.Lock()
		// Re-check under the write lock: a concurrent Set may have refreshed it.
		if current, still := c.items[id]; still && !c.now().Before(current.expiresAt) {
			delete(c.items, id)
		}
		c.mu.Unlock()
		return 0, false
	}
	return entry.count, true
}

// Set installs a fresh entry expiring one TTL from now.
func (c *LookupCache) Set(id, count int) {
	c.mu.Lock()
	c.items[id] = lookupEntry{
		count:     count,
		expiresAt: c.now().Add(c.ttl),
	}
	c.mu.Unlock()
}

// Clear removes all entries.
func (c *LookupCache) Clear() {
	c.mu.Lock()
	c.items = make(map[int]lookupEntry)
	c.mu.Unlock()
}

// Len returns the number of entries, including any not yet evicted.
func (c *LookupCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}
