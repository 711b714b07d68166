package utils

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/krisdikachi/Plancer/config"
)

var (
	redisClient *redis.Client
	redisCtx    = context.Background()
)

func redisOptions(cfg *config.Config) *redis.Options {
	addr := cfg.RedisAddr
	if addr == "" {
		addr = "localhost:6379"
	}
	return &redis.Options{
		Addr:     addr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	}
}

// InitRedis connects the shared client used for short-lived tokens
// (password reset).
func InitRedis(cfg *config.Config) error {
	redisClient = redis.NewClient(redisOptions(cfg))

	if err := redisClient.Ping(redisCtx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

func SetToken(key, value string, ttl time.Duration) error {
	if redisClient == nil {
		return fmt.Errorf("redis not initialized")
	}
	return redisClient.Set(redisCtx, key, value, ttl).Err()
}

func GetToken(key string) (string, error) {
	if redisClient == nil {
		return "", fmt.Errorf("redis not initialized")
	}
	return redisClient.Get(redisCtx, key).Result()
}

func DeleteToken(key string) error {
	if redisClient == nil {
		return fmt.Errorf("redis not initialized")
	}
	return redisClient.Del(redisCtx, key).Err()
}
