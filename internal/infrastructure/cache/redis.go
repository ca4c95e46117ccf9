package cache

import (
	"context"
	"fmt"
	"time"

	"clinic-site-api/config"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// Key prefixes shared by the Redis-backed stores.
const (
	ChatSessionKeyPrefix = "chat:session:"
	SnapshotKeyPrefix    = "site:snapshot:"
)

func NewRedisClient(cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logrus.Info("Successfully connected to Redis")

	return client, nil
}
