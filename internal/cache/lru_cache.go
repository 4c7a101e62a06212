package cache

import (
	"fmt"
	"sync/atomic"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

// LRUCacheEntry wraps the cached data with metadata
type LRUCacheEntry[V any] struct {
	Data      V
	ExpiresAt time.Time
}

// LRUCache is a size-bounded cache whose entries also expire after a fixed TTL
type LRUCache[K comparable, V any] struct {
	lru    *lru.Cache[K, *LRUCacheEntry[V]]
	ttl    time.Duration
	clock  clock
	hits   atomic.Uint64
	misses atomic.Uint64
}

// NewLRUCache creates a cache holding at most size entries for ttl each
func NewLRUCache[K comparable, V any](size int, ttl time.Duration) (*LRUCache[K, V], error) {
	lruCache, err := lru.New[K, *LRUCacheEntry[V]](size)
	if err != nil {
		return nil, fmt.Errorf("creating LRU cache: %w", err)
	}

	return &LRUCache[K, V]{
		lru:   lruCache,
		ttl:   ttl,
		clock: systemClock{},
	}, nil
}

// Get returns the cached value when present and not expired
func (c *LRUCache[K, V]) Get(key K) (V, bool) {
	if entry, ok := c.lru.Get(key); ok {
		if c.clock.Now().Before(entry.ExpiresAt) {
			c.hits.Add(1)
			return entry.Data, true
		}
		// Entry expired, remove it
		c.lru.Remove(key)
	}
	c.misses.Add(1)

	var zero V
	return zero, false
}

func (c *LRUCache[K, V]) Add(key K, value V) {
	c.lru.Add(key, &LRUCacheEntry[V]{
		Data:      value,
		ExpiresAt: c.clock.Now().Add(c.ttl),
	})
}

// GetOrCompute returns the cached value for key, calling compute and caching
// its result on a miss. Concurrent misses for one key may compute more than once.
func (c *LRUCache[K, V]) GetOrCompute(key K, compute func() V) V {
	if value, ok := c.Get(key); ok {
		return value
	}
	value := compute()
	c.Add(key, value)
	return value
}

func (c *LRUCache[K, V]) Len() int {
	return c.lru.Len()
}

// GetCacheStats returns statistics about cache hits and misses
func (c *LRUCache[K, V]) GetCacheStats() map[string]uint64 {
	return map[string]uint64{
		"hits":   c.hits.Load(),
		"misses": c.misses.Load(),
	}
}

// Clear removes all entries from the cache
func (c *LRUCache[K, V]) Clear() {
	c.lru.Purge()
}
