package config

import (
	"context"
	"os"
	"time"

	"github.com/bsm/redislock"
	"github.com/redis/go-redis/v9"
)

// RedisClient is nil when REDIS_ADDR is unset or the server did not answer
// at startup. Callers fall back to the in-memory cache.
var RedisClient *redis.Client

// RedisLocker is built on RedisClient; nil whenever RedisClient is.
var RedisLocker *redislock.Client

// InitRedis connects to REDIS_ADDR and pings it once. On failure Redis stays
// disabled for the life of the process.
func InitRedis() {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		DisableRedis()
		GetLogger().Info("redis not configured, using in-memory cache")
		return
	}
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASS"),
		DB:       envInt("REDIS_DB", 0),
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		DisableRedis()
		LogError(GetLogger(), "config", "InitRedis", addr, nil, err)
		return
	}
	RedisClient = client
	RedisLocker = redislock.New(client)
	GetLogger().WithField("addr", addr).Info("redis connected")
}

// DisableRedis drops the client so callers fall back to the in-memory cache
// and lock-free job runs.
func DisableRedis() {
	RedisClient = nil
	RedisLocker = nil
}
