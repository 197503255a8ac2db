package config

import (
	"context"
	"os"
	"time"

	redis "github.com/redis/go-redis/v9"
)

var RDB *redis.Client

var redisCtx = context.Background()

func ConnectRedis() {
	addr := os.Getenv("REDIS_URL")
	if addr == "" {
		addr = "localhost:6379"
	}

	RDB = redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       0,
	})

	if err := RDB.Ping(redisCtx).Err(); err != nil {
		Log.Warnf("Redis not reachable at %s: %v", addr, err)
	}
}

// CacheSet stores a pre-serialized value with a TTL. A nil client is a no-op
// so the API keeps working when Redis is down.
func CacheSet(key string, value []byte, expiration time.Duration) {
	if RDB == nil {
		return
	}
	if err := RDB.Set(redisCtx, key, value, expiration).Err(); err != nil {
		Log.Warnf("Cache set failed for %s: %v", key, err)
	}
}

func CacheGet(key string) ([]byte, bool) {
	if RDB == nil {
		return nil, false
	}
	data, err := RDB.Get(redisCtx, key).Bytes()
	if err != nil {
		return nil, false
	}
	return data, true
}

func CacheDelete(keys ...string) {
	if RDB == nil || len(keys) == 0 {
		return
	}
	if err := RDB.Del(redisCtx, keys...).Err(); err != nil {
		Log.Warnf("Cache delete failed: %v", err)
	}
}
