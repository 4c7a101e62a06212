package cache

import (
	"context"
	"net/http"
	"time"

	"github.com/bbernstein/lunartide/internal/config"
	lru "github.com/hashicorp/golang-lru/v2"
)

// CachedResponse is a rendered HTTP response body
type CachedResponse struct {
	StatusCode  int
	ContentType string
	Body        []byte
}

type ResponseCacheEntry struct {
	Data      CachedResponse
	ExpiresAt time.Time
}

// ResponseCache holds rendered API responses keyed by request URL.
// The underlying golang-lru cache is safe for concurrent use.
type ResponseCache struct {
	lru   *lru.Cache[string, *ResponseCacheEntry]
	ttl   time.Duration
	clock clock
}

func NewResponseCache(cfg *config.CacheConfig) (*ResponseCache, error) {
	lruCache, err := lru.New[string, *ResponseCacheEntry](cfg.ResponseLRUSize)
	if err != nil {
		return nil, err
	}

	return &ResponseCache{
		lru:   lruCache,
		ttl:   cfg.GetResponseLRUTTL(),
		clock: systemClock{},
	}, nil
}

// Add stores successful responses only
func (c *ResponseCache) Add(_ context.Context, key string, value CachedResponse) {
	if value.StatusCode != http.StatusOK {
		return
	}

	c.lru.Add(key, &ResponseCacheEntry{
		Data:      value,
		ExpiresAt: c.clock.Now().Add(c.ttl),
	})
}

func (c *ResponseCache) Get(_ context.Context, key string) (CachedResponse, bool) {
	entry, ok := c.lru.Get(key)
	if !ok {
		return CachedResponse{}, false
	}

	if c.clock.Now().After(entry.ExpiresAt) {
		// leave a fresh entry stored by a concurrent Add in place
		if current, ok := c.lru.Peek(key); ok && current == entry {
			c.lru.Remove(key)
		}
		return CachedResponse{}, false
	}

	return entry.Data, true
}

func (c *ResponseCache) Clear() {
	c.lru.Purge()
}
