package cache

import (
	"context"
	"time"
)

// NoOpCache is a cache implementation that does nothing. All operations
// succeed but nothing is stored (always cache miss).
type NoOpCache struct{}

// NewNoOpCache creates a new no-op cache instance.
func NewNoOpCache() *NoOpCache {
	return &NoOpCache{}
}

func (c *NoOpCache) Get(_ context.Context, _ string) ([]byte, error) {
	return nil, nil
}

func (c *NoOpCache) Set(_ context.Context, _ string, _ []byte, _ time.Duration) error {
	return nil
}

func (c *NoOpCache) Close() error {
	return nil
}
