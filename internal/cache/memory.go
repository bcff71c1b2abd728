package cache

import (
	"context"
	"encoding/json"
	"sync"
	"time"
)

type memoryEntry struct {
	data      []byte
	expiresAt time.Time
}

// MemoryCache is the in-process fallback store. Entries age out lazily on
// read; values round-trip through JSON so both backends behave the same.
type MemoryCache struct {
	entries sync.Map
	ttl     time.Duration
}

func NewMemoryCache(ttl time.Duration) *MemoryCache {
	return &MemoryCache{ttl: ttl}
}

func (c *MemoryCache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	val, ok := c.entries.Load(key)
	if !ok {
		return false, nil
	}
	entry := val.(memoryEntry)
	if time.Now().After(entry.expiresAt) {
		c.entries.Delete(key)
		return false, nil
	}
	if err := json.Unmarshal(entry.data, dest); err != nil {
		return false, err
	}
	return true, nil
}

func (c *MemoryCache) Set(ctx context.Context, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.entries.Store(key, memoryEntry{data: data, expiresAt: time.Now().Add(c.ttl)})
	return nil
}

func (c *MemoryCache) Delete(ctx context.Context, keys ...string) error {
	for _, key := range keys {
		c.entries.Delete(key)
	}
	return nil
}
