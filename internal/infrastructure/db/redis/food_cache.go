package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/tastetrail/food-review-api/internal/core/domain"
)

const (
	catalogKey = "catalog:foods"
	catalogTTL = 5 * time.Minute
)

// FoodCache caches the serialized catalog list in Redis. The list embeds
// rating summaries, so every food or review mutation invalidates it.
type FoodCache struct {
	client *redis.Client
}

func NewFoodCache(client *redis.Client) *FoodCache {
	return &FoodCache{client: client}
}

// GetList returns the cached catalog, or (nil, nil) on a cache miss.
func (c *FoodCache) GetList(ctx context.Context) ([]*domain.Food, error) {
	raw, err := c.client.Get(ctx, catalogKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("catalog cache get: %w", err)
	}

	var foods []*domain.Food
	if err := json.Unmarshal(raw, &foods); err != nil {
		return nil, fmt.Errorf("catalog cache decode: %w", err)
	}
	return foods, nil
}

func (c *FoodCache) SetList(ctx context.Context, foods []*domain.Food) error {
	raw, err := json.Marshal(foods)
	if err != nil {
		return fmt.Errorf("catalog cache encode: %w", err)
	}
	return c.client.Set(ctx, catalogKey, raw, catalogTTL).Err()
}

func (c *FoodCache) Invalidate(ctx context.Context) error {
	return c.client.Del(ctx, catalogKey).Err()
}
