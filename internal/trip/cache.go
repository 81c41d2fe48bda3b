// Copyright (c) 2026 Travelpack. All rights reserved.

package trip

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/travelpack/travelpack/internal/platform/constants"
)

// SuggestionCache stores collaborator suggestions by normalized key.
//
// A miss is ("", false, nil). Errors are reported but the service treats
// them as misses.
type SuggestionCache interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

// RedisSuggestionCache keeps suggestions in Redis with a fixed TTL.
type RedisSuggestionCache struct {
	client redis.Cmdable
	ttl    time.Duration
}

// NewRedisSuggestionCache creates a cache whose entries expire after ttl.
func NewRedisSuggestionCache(client redis.Cmdable, ttl time.Duration) *RedisSuggestionCache {
	return &RedisSuggestionCache{client: client, ttl: ttl}
}

// Get returns the cached suggestions for key.
func (cache *RedisSuggestionCache) Get(ctx context.Context, key string) (string, bool, error) {
	value, err := cache.client.Get(ctx, constants.RedisPrefixSuggestions+key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("redis_suggestion_cache_get_failed: %w", err)
	}
	return value, true, nil
}

// Set stores suggestions for key.
func (cache *RedisSuggestionCache) Set(ctx context.Context, key, value string) error {
	if err := cache.client.Set(ctx, constants.RedisPrefixSuggestions+key, value, cache.ttl).Err(); err != nil {
		return fmt.Errorf("redis_suggestion_cache_set_failed: %w", err)
	}
	return nil
}
