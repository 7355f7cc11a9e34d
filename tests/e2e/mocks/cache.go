package mocks

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// InMemoryCache stores JSON values like the redis cache does, so cached
// responses round-trip through the same encoding.
type InMemoryCache struct {
	mu       sync.Mutex
	data     map[string]cacheEntry
	getCalls int
	setCalls int
}

type cacheEntry struct {
	raw    []byte
	expiry time.Time
}

func NewInMemoryCache() *InMemoryCache {
	return &InMemoryCache{data: make(map[string]cacheEntry)}
}

func (c *InMemoryCache) Get(ctx context.Context, key string, dest any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.getCalls++
	entry, ok := c.data[key]
	if !ok || time.Now().After(entry.expiry) {
		return redis.Nil
	}
	return json.Unmarshal(entry.raw, dest)
}

func (c *InMemoryCache) Set(ctx context.Context, key string, value any, exp time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.setCalls++
	c.data[key] = cacheEntry{raw: raw, expiry: time.Now().Add(exp)}
	return nil
}

func (c *InMemoryCache) Close() error {
	return nil
}

func (c *InMemoryCache) Keys() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	keys := make([]string, 0, len(c.data))
	for k := range c.data {
		keys = append(keys, k)
	}
	return keys
}

func (c *InMemoryCache) SetCalls() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.setCalls
}
