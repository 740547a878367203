package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"miniapp-market-backend/internal/platform/redis"
)

// Service — тонкая JSON-обертка над Redis для кэширования ответов.
type Service struct {
	redisClient *redis.Client
}

func NewService(redisClient *redis.Client) *Service {
	return &Service{redisClient: redisClient}
}

// Get получает значение из кэша
func (c *Service) Get(ctx context.Context, key string, dest interface{}) error {
	data, err := c.redisClient.Get(ctx, key).Result()
	if err != nil {
		return err
	}

	return json.Unmarshal([]byte(data), dest)
}

// Set сохраняет значение в кэш
func (c *Service) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal value: %w", err)
	}

	return c.redisClient.Set(ctx, key, string(data), ttl).Err()
}

// Delete удаляет значение из кэша
func (c *Service) Delete(ctx context.Context, key string) error {
	return c.redisClient.Del(ctx, key).Err()
}
