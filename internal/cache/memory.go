package cache

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// MemoryCache is an in-process Cache for single-instance deployments.
type MemoryCache struct {
	cache *gocache.Cache
}

// NewMemoryCache creates an in-memory cache with the given default TTL.
func NewMemoryCache(defaultTTL time.Duration) *MemoryCache {
	return &MemoryCache{
		cache: gocache.New(defaultTTL, 2*defaultTTL),
	}
}

func (c *MemoryCache) Get(_ context.Context, key string) ([]byte, error) {
	if val, found := c.cache.Get(key); found {
		return val.([]byte), nil
	}
	return nil, nil
}

func (c *MemoryCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	c.cache.Set(key, value, ttl)
	return nil
}

func (c *MemoryCache) Close() error {
	c.cache.Flush()
	return nil
}
