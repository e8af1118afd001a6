package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/bivenue/copilot/internal/model"
)

// Cache stores fetched research pages keyed by URL hash
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// CacheKey generates a cache key from a URL
func CacheKey(url string) string {
	hash := sha256.Sum256([]byte(url))
	return "copilot:v1:" + hex.EncodeToString(hash[:])
}

// FromConfig builds the research-page cache from configuration.
// Returns nil when caching is disabled - callers treat a nil cache
// as a miss on every lookup.
func FromConfig(cfg model.CacheConfig) Cache {
	if !cfg.Enabled {
		return nil
	}
	return NewLayeredCache(cfg.MemoryTTL, cfg.Dir, cfg.DiskTTL)
}
