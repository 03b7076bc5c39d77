package utils

import (
	"context"
	"log"
	"time"

	"vibezone/config"

	"github.com/go-redis/redis/v8"
)

// NewWebhookCacheClient returns the Redis client used to deduplicate
// payment-processor webhook deliveries.
func NewWebhookCacheClient() *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisWebhookDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := client.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect to Redis (Webhook Cache): %v", err)
	}
	return client
}
