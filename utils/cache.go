// File: utils/cache.go
package utils

import (
	"context"
	"log"
	"time"

	"belissimo/config"

	"github.com/go-redis/redis/v8"
)

// MemoryCacheClient is the Redis client backing conversational memory.
var MemoryCacheClient *redis.Client

// InitMemoryCache initializes the Redis client used for per-user
// conversation memory (DB from AppConfig).
func InitMemoryCache() {
	MemoryCacheClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisMemoryDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := MemoryCacheClient.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect to Redis (Memory): %v", err)
	}
}

// GetMemoryCacheClient returns the conversation-memory Redis client.
func GetMemoryCacheClient() *redis.Client {
	if MemoryCacheClient == nil {
		InitMemoryCache()
	}
	return MemoryCacheClient
}
