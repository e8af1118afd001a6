package cache

import "time"

// LayeredCache stacks the hot memory layer over the persistent disk
// layer. Disk hits are promoted to memory so a page is deserialized
// at most once per run.
type LayeredCache struct {
	hot  Cache
	cold Cache
}

// NewLayeredCache creates the standard two-layer page cache
func NewLayeredCache(memoryTTL time.Duration, diskDir string, diskTTL time.Duration) *LayeredCache {
	return &LayeredCache{
		hot:  NewMemoryCache(memoryTTL, 10*time.Minute),
		cold: NewDiskCache(diskDir, diskTTL),
	}
}

// Get checks the memory layer, then falls through to disk
func (c *LayeredCache) Get(key string) ([]byte, bool) {
	if body, found := c.hot.Get(key); found {
		return body, true
	}

	body, found := c.cold.Get(key)
	if !found {
		return nil, false
	}

	// Promote with the memory default TTL
	_ = c.hot.Set(key, body, 0)

	return body, true
}

// Set stores the page in both layers
func (c *LayeredCache) Set(key string, body []byte, ttl time.Duration) error {
	if err := c.hot.Set(key, body, ttl); err != nil {
		return err
	}
	return c.cold.Set(key, body, ttl)
}

// Delete evicts the page from both layers
func (c *LayeredCache) Delete(key string) error {
	_ = c.hot.Delete(key)
	return c.cold.Delete(key)
}

// Clear evicts everything from both layers
func (c *LayeredCache) Clear() error {
	_ = c.hot.Clear()
	return c.cold.Clear()
}
