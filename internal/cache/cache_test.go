package cache

import (
	"strings"
	"testing"
	"time"

	"github.com/bivenue/copilot/internal/model"
)

func TestCacheKey_StableAndPrefixed(t *testing.T) {
	key1 := CacheKey("https://example.com/page")
	key2 := CacheKey("https://example.com/page")
	key3 := CacheKey("https://example.com/other")

	if key1 != key2 {
		t.Error("Expected identical keys for identical URLs")
	}
	if key1 == key3 {
		t.Error("Expected different keys for different URLs")
	}
	if !strings.HasPrefix(key1, "copilot:v1:") {
		t.Errorf("Expected versioned key prefix, got %s", key1)
	}
}

func TestMemoryCache_SetGetDelete(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)

	key := CacheKey("https://example.com")
	if _, found := c.Get(key); found {
		t.Error("Expected miss before Set")
	}

	if err := c.Set(key, []byte("payload"), time.Minute); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	val, found := c.Get(key)
	if !found {
		t.Fatal("Expected hit after Set")
	}
	if string(val) != "payload" {
		t.Errorf("Expected payload, got %s", val)
	}

	if err := c.Delete(key); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, found := c.Get(key); found {
		t.Error("Expected miss after Delete")
	}
}

func TestDiskCache_Expiration(t *testing.T) {
	c := NewDiskCache(t.TempDir(), time.Hour)

	key := CacheKey("https://example.com/expiring")
	if err := c.Set(key, []byte("stale"), -time.Second); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	if _, found := c.Get(key); found {
		t.Error("Expected expired entry to miss")
	}
}

func TestLayeredCache_DiskPromotion(t *testing.T) {
	dir := t.TempDir()
	c := NewLayeredCache(time.Minute, dir, time.Hour)

	key := CacheKey("https://example.com/layered")
	if err := c.Set(key, []byte("cached page"), time.Hour); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	// A fresh layered cache over the same dir has a cold memory layer
	// and must fall through to disk
	fresh := NewLayeredCache(time.Minute, dir, time.Hour)
	val, found := fresh.Get(key)
	if !found {
		t.Fatal("Expected disk hit through fresh layered cache")
	}
	if string(val) != "cached page" {
		t.Errorf("Expected cached page, got %s", val)
	}
}

func TestFromConfig_Disabled(t *testing.T) {
	c := FromConfig(model.CacheConfig{Enabled: false})
	if c != nil {
		t.Error("Expected nil cache when disabled")
	}
}

func TestFromConfig_Enabled(t *testing.T) {
	c := FromConfig(model.CacheConfig{
		Enabled:   true,
		Dir:       t.TempDir(),
		MemoryTTL: time.Minute,
		DiskTTL:   time.Hour,
	})
	if c == nil {
		t.Fatal("Expected cache when enabled")
	}

	key := CacheKey("https://example.com/cfg")
	if err := c.Set(key, []byte("v"), time.Minute); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if _, found := c.Get(key); !found {
		t.Error("Expected hit")
	}
}
