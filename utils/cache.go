// File: utils/cache.go
package utils

import (
	"context"
	"log"
	"time"

	"metastar/config"

	"github.com/go-redis/redis/v8"
)

// AuthCacheClient is the dedicated client for all auth gateway state:
// OTP challenges, send counters, lockout markers and user documents.
var AuthCacheClient *redis.Client

// InitAuthCache initializes the Redis client for the auth gateway (using DB from AppConfig).
func InitAuthCache() {
	AuthCacheClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisAuthDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, err := AuthCacheClient.Ping(ctx).Result()
	if err != nil {
		log.Fatalf("Failed to connect to Redis (Auth Cache): %v", err)
	}
}

// GetAuthCacheClient returns the Redis client for the auth gateway.
func GetAuthCacheClient() *redis.Client {
	if AuthCacheClient == nil {
		InitAuthCache()
	}
	return AuthCacheClient
}
