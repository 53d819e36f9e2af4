/*
Package cache is a small TTL cache the orchestration layer wraps
around engine calls. The engine itself stays stateless; freshness
policy lives out here with the caller.
*/
package cache

import (
	"sync"
	"time"
)

type entry[V any] struct {
	value     V
	expiresAt time.Time
}

// Cache maps string keys to values that expire ttl after being set.
type Cache[V any] struct {
	ttl     time.Duration
	mu      sync.Mutex
	entries map[string]entry[V]
	now     func() time.Time
}

func New[V any](ttl time.Duration) *Cache[V] {
	return &Cache[V]{
		ttl:     ttl,
		entries: map[string]entry[V]{},
		now:     time.Now,
	}
}

// Get returns the cached value for key if it has not expired. Expired
// entries are evicted on read.
func (c *Cache[V]) Get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	item, ok := c.entries[key]
	if !ok {
		var zero V
		return zero, false
	}
	if !item.expiresAt.After(c.now()) {
		delete(c.entries, key)
		var zero V
		return zero, false
	}
	return item.value, true
}

// Set stores value under key for the configured TTL.
func (c *Cache[V]) Set(key string, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = entry[V]{value: value, expiresAt: c.now().Add(c.ttl)}
}
