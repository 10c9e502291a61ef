package utils

import (
	"context"
	"log"
	"time"

	"github.com/Kerubo0/Rafiki/config"

	"github.com/go-redis/redis/v8"
)

// SessionCacheClient is the dedicated client for conversation session storage.
var SessionCacheClient *redis.Client

// RedisConfigured reports whether a Redis address has been supplied at all.
// Without one the server falls back to in-process session storage and skips
// the reminder queue.
func RedisConfigured() bool {
	return config.AppConfig.RedisAddr != ""
}

// InitSessionCache initializes the Redis client backing conversation sessions.
func InitSessionCache() {
	SessionCacheClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisSessionDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, err := SessionCacheClient.Ping(ctx).Result()
	if err != nil {
		log.Fatalf("Failed to connect to Redis (Sessions): %v", err)
	}
}

// GetSessionCacheClient returns the Redis client for session storage.
func GetSessionCacheClient() *redis.Client {
	if SessionCacheClient == nil {
		InitSessionCache()
	}
	return SessionCacheClient
}
