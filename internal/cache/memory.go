package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// MemoryCache is the hot layer: research pages fetched earlier in the
// same run are served without touching disk or the network
type MemoryCache struct {
	pages *gocache.Cache
}

// NewMemoryCache creates an in-memory page cache. Expired pages are
// evicted in the background at cleanupInterval.
func NewMemoryCache(defaultTTL, cleanupInterval time.Duration) *MemoryCache {
	return &MemoryCache{
		pages: gocache.New(defaultTTL, cleanupInterval),
	}
}

// Get returns the cached page body for a key
func (c *MemoryCache) Get(key string) ([]byte, bool) {
	val, found := c.pages.Get(key)
	if !found {
		return nil, false
	}
	return val.([]byte), true
}

// Set stores a page body. A zero ttl uses the cache default.
func (c *MemoryCache) Set(key string, body []byte, ttl time.Duration) error {
	c.pages.Set(key, body, ttl)
	return nil
}

// Delete evicts a page
func (c *MemoryCache) Delete(key string) error {
	c.pages.Delete(key)
	return nil
}

// Clear evicts every page
func (c *MemoryCache) Clear() error {
	c.pages.Flush()
	return nil
}
