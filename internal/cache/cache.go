package cache

import (
	"crypto/sha256"
	"fmt"
	"sync"
	"time"
)

// CachedResponse is a stored generation result
type CachedResponse struct {
	Response  []string
	Timestamp time.Time
}

// GenerateCacheKey derives a key from the request fields that determine the result
func GenerateCacheKey(parts ...string) string {
	h := sha256.New()
	for _, p := range parts {
		h.Write([]byte(p))
		h.Write([]byte{0})
	}
	return fmt.Sprintf("%x", h.Sum(nil))
}

// Cache holds generation results for a limited time. A zero TTL keeps entries forever.
type Cache struct {
	entries sync.Map
	ttl     time.Duration
	now     func() time.Time
}

// New creates a cache whose entries expire after ttl
func New(ttl time.Duration) *Cache {
	return &Cache{ttl: ttl, now: time.Now}
}

// Get returns a copy of the cached response for key
func (c *Cache) Get(key string) ([]string, bool) {
	val, ok := c.entries.Load(key)
	if !ok {
		return nil, false
	}
	cached := val.(CachedResponse)
	if c.ttl > 0 && c.now().Sub(cached.Timestamp) > c.ttl {
		c.entries.Delete(key)
		return nil, false
	}
	return append([]string(nil), cached.Response...), true
}

// Put stores response under key
func (c *Cache) Put(key string, response []string) {
	c.entries.Store(key, CachedResponse{
		Response:  append([]string(nil), response...),
		Timestamp: c.now(),
	})
}

// Delete removes key
func (c *Cache) Delete(key string) {
	c.entries.Delete(key)
}

// Clear drops every entry
func (c *Cache) Clear() {
	c.entries.Range(func(key, _ any) bool {
		c.entries.Delete(key)
		return true
	})
}
