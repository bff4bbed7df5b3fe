package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache stores evidence lookup results between requests so flaky or
// slow collaborators are not re-queried for every identical query.
type Cache interface {
	// Get retrieves a cached value by key. Returns nil on miss.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value with TTL.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Close closes the cache connection.
	Close() error
}

// Key derives a stable cache key from the evidence branch and query.
func Key(branch, query string) string {
	hash := sha256.Sum256([]byte(query))
	return "evidence:" + branch + ":" + hex.EncodeToString(hash[:])
}
