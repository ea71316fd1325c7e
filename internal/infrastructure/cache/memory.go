package cache

import (
	"context"
	"slices"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/annai/backend/internal/domain"
)

// DefaultMemorySize bounds the number of entries kept by NewMemoryCache
const DefaultMemorySize = 1024

// cacheItem represents a single item in the cache with expiration
type cacheItem struct {
	Value      []byte
	Expiration time.Time
}

// MemoryCache is a size-bounded in-memory cache with per-item TTL.
// The least recently used entry is evicted once the size limit is reached.
type MemoryCache struct {
	data *lru.Cache[string, cacheItem]
}

// NewMemoryCache creates an in-memory cache holding at most size entries
func NewMemoryCache(size int) (*MemoryCache, error) {
	if size <= 0 {
		size = DefaultMemorySize
	}

	data, err := lru.New[string, cacheItem](size)
	if err != nil {
		return nil, err
	}
	return &MemoryCache{data: data}, nil
}

// Get retrieves a value from the cache
func (c *MemoryCache) Get(ctx context.Context, key string) ([]byte, error) {
	item, exists := c.data.Get(key)
	if !exists {
		return nil, domain.ErrCacheMiss
	}

	// Check if expired
	if time.Now().After(item.Expiration) {
		c.data.Remove(key)
		return nil, domain.ErrCacheMiss
	}

	return slices.Clone(item.Value), nil
}

// Set stores a value in the cache with TTL
func (c *MemoryCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	c.data.Add(key, cacheItem{
		Value:      slices.Clone(value),
		Expiration: time.Now().Add(ttl),
	})
	return nil
}

// Delete removes a value from the cache
func (c *MemoryCache) Delete(ctx context.Context, key string) error {
	c.data.Remove(key)
	return nil
}

// Exists checks if a key exists in the cache and is not expired
func (c *MemoryCache) Exists(ctx context.Context, key string) (bool, error) {
	item, exists := c.data.Peek(key)
	if !exists {
		return false, nil
	}
	return !time.Now().After(item.Expiration), nil
}

// Size returns the current number of items in the cache (for debugging/monitoring)
func (c *MemoryCache) Size() int {
	return c.data.Len()
}

// Clear removes all items from the cache
func (c *MemoryCache) Clear() {
	c.data.Purge()
}
