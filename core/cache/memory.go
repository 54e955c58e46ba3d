package cache

import (
	"context"
	"sync"
	"time"
)

// Cache is the in-memory Store, a thread-safe sync.Map with a tag index.
type Cache struct {
	m        sync.Map
	tagIndex sync.Map // tag -> *sync.Map of keys
}

// NewCache creates a new Cache instance.
func NewCache() *Cache {
	return &Cache{}
}

// cacheItem holds a value and its expiration time.
type cacheItem struct {
	Value     []byte
	ExpiresAt int64 // Unix nanoseconds; 0 means no expiration
}

func (c *Cache) Set(_ context.Context, key string, value []byte, ttl time.Duration, tags []string) {
	var expiresAt int64
	if ttl > 0 {
		expiresAt = time.Now().Add(ttl).UnixNano()
	}
	c.m.Store(key, cacheItem{Value: value, ExpiresAt: expiresAt})
	c.TagKey(key, tags)
}

func (c *Cache) Get(_ context.Context, key string) ([]byte, bool) {
	v, ok := c.m.Load(key)
	if !ok {
		return nil, false
	}
	item := v.(cacheItem)
	if item.ExpiresAt > 0 && time.Now().UnixNano() > item.ExpiresAt {
		c.m.Delete(key)
		return nil, false
	}
	return item.Value, true
}

func (c *Cache) Delete(_ context.Context, keys ...string) {
	for _, key := range keys {
		c.m.Delete(key)
	}
}

// TagKey assigns one or more tags to a cache key.
func (c *Cache) TagKey(key string, tags []string) {
	for _, tag := range tags {
		val, _ := c.tagIndex.LoadOrStore(tag, &sync.Map{})
		val.(*sync.Map).Store(key, struct{}{})
	}
}

// GetKeysByTag returns every key assigned to a tag.
func (c *Cache) GetKeysByTag(tag string) []string {
	var keys []string
	if val, ok := c.tagIndex.Load(tag); ok {
		val.(*sync.Map).Range(func(key, _ any) bool {
			keys = append(keys, key.(string))
			return true
		})
	}
	return keys
}

// DeleteByTag deletes all cache entries assigned to a tag.
func (c *Cache) DeleteByTag(_ context.Context, tag string) {
	val, ok := c.tagIndex.LoadAndDelete(tag)
	if !ok {
		return
	}
	val.(*sync.Map).Range(func(key, _ any) bool {
		c.m.Delete(key)
		return true
	})
}

// Len counts live entries.
func (c *Cache) Len() int {
	n := 0
	now := time.Now().UnixNano()
	c.m.Range(func(_, v any) bool {
		item := v.(cacheItem)
		if item.ExpiresAt == 0 || now <= item.ExpiresAt {
			n++
		}
		return true
	})
	return n
}
