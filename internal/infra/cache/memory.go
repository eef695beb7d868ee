package cache

import (
	"context"
	"sync"

	"github.com/jacobbvfx/instagram-scraper/internal/domain"
)

// MemoryCache is the default process-lifetime FeedCache. Entries are never
// evicted; stale ones are simply overwritten by the next fresh run.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]domain.CacheEntry
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{entries: make(map[string]domain.CacheEntry)}
}

func (c *MemoryCache) Get(ctx context.Context, key string) (*domain.CacheEntry, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[key]
	if !ok {
		return nil, nil
	}
	return &entry, nil
}

func (c *MemoryCache) Set(ctx context.Context, key string, entry *domain.CacheEntry) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = *entry
	return nil
}

var _ domain.FeedCache = (*MemoryCache)(nil)
