package cache

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

var (
	rdb *redis.Client
	ctx = context.Background()
)

// InitRedis initializes the Redis client. Redis is optional: an empty addr
// leaves the client nil and callers fall through to the database.
func InitRedis(addr, password string, db int) error {
	if addr == "" {
		return nil
	}

	rdb = redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if _, err := rdb.Ping(ctx).Result(); err != nil {
		rdb = nil
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return nil
}

// Enabled reports whether a Redis client is configured
func Enabled() bool {
	return rdb != nil
}

// GetRedisClient returns the Redis client instance, nil when disabled
func GetRedisClient() *redis.Client {
	return rdb
}

// GetContext returns the default context
func GetContext() context.Context {
	return ctx
}
