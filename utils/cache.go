package utils

import (
	"context"
	"fmt"
	"time"

	"asst/config"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// CacheClient is the shared Redis client used for short-lived keys such as
// processed webhook events.
var CacheClient *redis.Client

// InitCache connects the Redis cache client using the cache DB from AppConfig.
func InitCache() error {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisCacheDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := client.Ping(ctx).Result(); err != nil {
		return fmt.Errorf("failed to connect to Redis (cache): %w", err)
	}
	CacheClient = client
	GetLogger().Info("Connected to Redis cache", zap.String("addr", config.AppConfig.RedisAddr))
	return nil
}

// GetCacheClient returns the cache client, connecting on first use.
func GetCacheClient() *redis.Client {
	if CacheClient == nil {
		if err := InitCache(); err != nil {
			GetLogger().Fatal("Redis cache unavailable", zap.Error(err))
		}
	}
	return CacheClient
}

// CloseCache closes the cache client if it was opened.
func CloseCache() {
	if CacheClient != nil {
		_ = CacheClient.Close()
	}
}
