package ratelimiter

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisCache stores bucket state in Redis so every instance behind a load
// balancer draws from the same buckets.
type RedisCache struct {
	rdb     *redis.Client
	timeout time.Duration
}

func NewRedisCache(rdb *redis.Client) GetterSetter {
	return &RedisCache{
		rdb:     rdb,
		timeout: 2 * time.Second,
	}
}

func (c *RedisCache) Get(key string) (int, error) {
	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()

	value, err := c.rdb.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return 0, ErrCacheMiss
	}
	if err != nil {
		return 0, err
	}

	return strconv.Atoi(value)
}

func (c *RedisCache) Set(key string, value int) error {
	return c.SetWithExpiration(key, value, 0)
}

func (c *RedisCache) SetWithExpiration(key string, value int, expiration time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()

	return c.rdb.Set(ctx, key, value, expiration).Err()
}

func (c *RedisCache) Close() error {
	return nil
}
