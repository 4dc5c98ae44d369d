package core

import (
	"sync"

	"github.com/teampulse/teampulse/schema"
)

// ResultCache is a bounded in-memory cache of analytics results keyed by
// snapshot fingerprint. Eviction is strict insertion order regardless of read
// frequency, so a long-running process holds at most capacity results. Safe
// for concurrent use.
type ResultCache struct {
	mu       sync.Mutex
	capacity int
	entries  map[string]*schema.AnalyticsResult
	order    []string
}

// NewResultCache creates a cache holding up to capacity results. Capacities
// below 1 fall back to the documented default.
func NewResultCache(capacity int) *ResultCache {
	if capacity < 1 {
		capacity = schema.DefaultCacheCapacity
	}
	return &ResultCache{
		capacity: capacity,
		entries:  make(map[string]*schema.AnalyticsResult, capacity),
	}
}

// Get returns the cached result for the fingerprint, if present.
func (c *ResultCache) Get(fingerprint string) (*schema.AnalyticsResult, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	result, ok := c.entries[fingerprint]
	return result, ok
}

// Put stores the result under its fingerprint unless an entry already exists,
// evicting the oldest insertion when the cache is full. Concurrent computes
// of the same snapshot therefore keep the first result rather than churning.
func (c *ResultCache) Put(fingerprint string, result *schema.AnalyticsResult) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.entries[fingerprint]; ok {
		return
	}
	if len(c.order) >= c.capacity {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.entries, oldest)
	}
	c.entries[fingerprint] = result
	c.order = append(c.order, fingerprint)
}

// Len returns the current number of cached results.
func (c *ResultCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
