package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"warehouse.GO/config"
)

// Store is a byte cache with TTLs and tag based invalidation.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration, tags []string)
	Delete(ctx context.Context, keys ...string)
	DeleteByTag(ctx context.Context, tag string)
}

var (
	mu       sync.Mutex
	instance Store
)

// Default returns the process cache: Redis when config.RedisClient is set,
// in-memory otherwise. The choice is made on first use.
func Default() Store {
	mu.Lock()
	defer mu.Unlock()
	if instance == nil {
		if config.RedisClient != nil {
			instance = NewRedisCache(config.RedisClient, config.App().AppName+":cache:")
		} else {
			instance = NewCache()
		}
	}
	return instance
}

// SetDefault replaces the process cache. Tests use it to isolate state.
func SetDefault(s Store) {
	mu.Lock()
	defer mu.Unlock()
	instance = s
}

// Key joins parts into a composite key.
func Key(parts ...any) string {
	s := make([]string, len(parts))
	for i, p := range parts {
		s[i] = fmt.Sprintf("%v", p)
	}
	return strings.Join(s, "|")
}

// GetJSON decodes the cached value of key into dst.
func GetJSON(ctx context.Context, s Store, key string, dst any) bool {
	raw, ok := s.Get(ctx, key)
	if !ok {
		return false
	}
	return json.Unmarshal(raw, dst) == nil
}

// SetJSON caches v encoded as JSON. Encoding errors are returned and nothing is stored.
func SetJSON(ctx context.Context, s Store, key string, v any, ttl time.Duration, tags ...string) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	s.Set(ctx, key, raw, ttl, tags)
	return nil
}

// Remember returns the cached value of key or computes, caches and returns it.
func Remember[T any](ctx context.Context, s Store, key string, ttl time.Duration, tags []string, load func() (T, error)) (T, error) {
	var v T
	if GetJSON(ctx, s, key, &v) {
		return v, nil
	}
	v, err := load()
	if err != nil {
		return v, err
	}
	_ = SetJSON(ctx, s, key, v, ttl, tags...)
	return v, nil
}

// TagReports marks cached report data that any stock movement invalidates.
const TagReports = "reports"
