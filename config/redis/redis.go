package redis

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/joy095/booking/config"
	"github.com/joy095/booking/logger"
)

var (
	redisClient *redis.Client
	redisOnce   sync.Once
)

// GetRedisClient returns the shared Redis client, or nil when REDIS_URL is
// not configured. Callers must treat a nil client as "no coordination
// layer" and degrade gracefully.
func GetRedisClient() *redis.Client {
	redisOnce.Do(func() {
		redisURL := config.GetEnv("REDIS_URL", "")
		if redisURL == "" {
			logger.WarnLogger.Warn("REDIS_URL not set, redis-backed features disabled")
			return
		}

		opt, err := redis.ParseURL(redisURL)
		if err != nil {
			logger.ErrorLogger.Errorf("Invalid REDIS_URL: %v", err)
			return
		}

		client := redis.NewClient(opt)

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Ping(ctx).Err(); err != nil {
			logger.ErrorLogger.Errorf("Failed to connect to Redis: %v", err)
			return
		}

		redisClient = client
		logger.InfoLogger.Info("Connected to Redis")
	})
	return redisClient
}

// CloseRedis closes the Redis connection if one was opened.
func CloseRedis() {
	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			logger.ErrorLogger.Errorf("Error closing Redis connection: %v", err)
		}
	}
}
