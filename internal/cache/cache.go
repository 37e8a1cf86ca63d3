// Package cache is an in-memory key/value cache with per-entry expiry.
package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// DefaultTTL marks Set calls that should use the cache-wide expiry.
const DefaultTTL time.Duration = 0

// NoExpiration keeps an entry until it is deleted.
const NoExpiration = gocache.NoExpiration

// Cache is safe for concurrent use.
type Cache struct {
	c *gocache.Cache
}

// New returns a cache whose entries expire after ttl unless overridden.
// Expired entries are purged every cleanup interval; cleanup <= 0 disables purging.
func New(ttl, cleanup time.Duration) *Cache {
	if ttl == 0 {
		ttl = NoExpiration
	}
	return &Cache{c: gocache.New(ttl, cleanup)}
}

// Set stores v under key. A ttl of DefaultTTL uses the cache-wide expiry.
func (c *Cache) Set(key string, v any, ttl time.Duration) {
	if ttl == DefaultTTL {
		ttl = gocache.DefaultExpiration
	}
	c.c.Set(key, v, ttl)
}

// Get returns the value for key if present and not expired.
func (c *Cache) Get(key string) (any, bool) {
	return c.c.Get(key)
}

func (c *Cache) Delete(key string) {
	c.c.Delete(key)
}

// Len counts stored entries, including expired ones not yet purged.
func (c *Cache) Len() int {
	return c.c.ItemCount()
}

// Flush removes every entry.
func (c *Cache) Flush() {
	c.c.Flush()
}
