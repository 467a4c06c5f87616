// Package caching wraps an in-memory TTL cache for short-lived aggregates
// such as dashboard counts and finance totals.
package caching

import (
	"time"

	"github.com/patrickmn/go-cache"
)

type Cache struct {
	memoryCache *cache.Cache
}

// NewCache creates a cache whose entries default to the given TTL.
func NewCache(defaultTTL time.Duration) *Cache {
	return &Cache{
		memoryCache: cache.New(defaultTTL, 2*defaultTTL),
	}
}

func (c *Cache) Get(key string) (any, bool) {
	return c.memoryCache.Get(key)
}

func (c *Cache) Set(key string, value any) {
	c.memoryCache.SetDefault(key, value)
}

func (c *Cache) SetWithTTL(key string, value any, ttl time.Duration) {
	c.memoryCache.Set(key, value, ttl)
}

func (c *Cache) Delete(key string) {
	c.memoryCache.Delete(key)
}

func (c *Cache) Flush() {
	c.memoryCache.Flush()
}
