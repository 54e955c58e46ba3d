package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"warehouse.GO/config"
)

// RedisCache stores values in Redis. Tags are Redis sets of member keys.
type RedisCache struct {
	client *redis.Client
	prefix string
}

func NewRedisCache(client *redis.Client, prefix string) *RedisCache {
	return &RedisCache{client: client, prefix: prefix}
}

func (r *RedisCache) key(k string) string    { return r.prefix + k }
func (r *RedisCache) tagKey(t string) string { return r.prefix + "tag:" + t }

func (r *RedisCache) Get(ctx context.Context, key string) ([]byte, bool) {
	raw, err := r.client.Get(ctx, r.key(key)).Bytes()
	if err != nil {
		if err != redis.Nil {
			config.LogError(config.GetLogger(), "cache", "RedisCache.Get", key, nil, err)
		}
		return nil, false
	}
	return raw, true
}

func (r *RedisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration, tags []string) {
	pipe := r.client.TxPipeline()
	pipe.Set(ctx, r.key(key), value, ttl)
	for _, tag := range tags {
		pipe.SAdd(ctx, r.tagKey(tag), r.key(key))
	}
	if _, err := pipe.Exec(ctx); err != nil {
		config.LogError(config.GetLogger(), "cache", "RedisCache.Set", key, nil, err)
	}
}

func (r *RedisCache) Delete(ctx context.Context, keys ...string) {
	if len(keys) == 0 {
		return
	}
	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = r.key(k)
	}
	if err := r.client.Del(ctx, full...).Err(); err != nil {
		config.LogError(config.GetLogger(), "cache", "RedisCache.Delete", "", keys, err)
	}
}

func (r *RedisCache) DeleteByTag(ctx context.Context, tag string) {
	members, err := r.client.SMembers(ctx, r.tagKey(tag)).Result()
	if err != nil {
		config.LogError(config.GetLogger(), "cache", "RedisCache.DeleteByTag", tag, nil, err)
		return
	}
	members = append(members, r.tagKey(tag))
	if err := r.client.Del(ctx, members...).Err(); err != nil {
		config.LogError(config.GetLogger(), "cache", "RedisCache.DeleteByTag", tag, nil, err)
	}
}
