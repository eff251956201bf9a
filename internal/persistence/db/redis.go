package db

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/parleychat/parley/internal/infrastructure/configs"
	"github.com/redis/go-redis/v9"
)

const defaultRedisTimeout = 5 * time.Second

func NewRedisClient(ctx context.Context, cfg configs.RedisConfig) (*redis.Client, error) {
	if cfg.Addr == "" {
		return nil, fmt.Errorf("redis address is required")
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, defaultRedisTimeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	log.Printf("Successfully connected to Redis at %s", cfg.Addr)
	return client, nil
}
