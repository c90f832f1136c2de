package di

import (
	"context"
	"sync"
	"time"
)

// janitorInterval controls how often expired entries are swept. Reads
// already skip stale entries, so the sweep only bounds memory growth.
const janitorInterval = time.Minute

// InMemoryCache backs ports.Cache for single-process deployments. The
// leaderboard is its only current consumer, so contention is low and a
// single RWMutex over a map is enough.
type InMemoryCache struct {
	mu      sync.RWMutex
	entries map[string]cacheEntry
}

type cacheEntry struct {
	value  interface{}
	expiry time.Time
}

// NewInMemoryCache creates the cache and starts its background sweep.
func NewInMemoryCache() *InMemoryCache {
	c := &InMemoryCache{
		entries: make(map[string]cacheEntry),
	}
	go c.janitor()
	return c
}

// Get returns the cached value for key, treating expired entries as misses.
func (c *InMemoryCache) Get(ctx context.Context, key string) (interface{}, bool) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok || time.Now().After(entry.expiry) {
		return nil, false
	}
	return entry.value, true
}

// Set stores value under key for ttl seconds, replacing any prior entry.
func (c *InMemoryCache) Set(ctx context.Context, key string, value interface{}, ttl int) error {
	entry := cacheEntry{
		value:  value,
		expiry: time.Now().Add(time.Duration(ttl) * time.Second),
	}

	c.mu.Lock()
	c.entries[key] = entry
	c.mu.Unlock()
	return nil
}

// Delete drops the entry for key if present.
func (c *InMemoryCache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
	return nil
}

// Clear drops every entry.
func (c *InMemoryCache) Clear(ctx context.Context) error {
	c.mu.Lock()
	c.entries = make(map[string]cacheEntry)
	c.mu.Unlock()
	return nil
}

func (c *InMemoryCache) janitor() {
	ticker := time.NewTicker(janitorInterval)
	defer ticker.Stop()

	for range ticker.C {
		now := time.Now()
		c.mu.Lock()
		for key, entry := range c.entries {
			if now.After(entry.expiry) {
				delete(c.entries, key)
			}
		}
		c.mu.Unlock()
	}
}
