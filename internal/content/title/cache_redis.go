// Copyright (c) 2026 Critica. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package title

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/critica/internal/platform/constants"
)

// ratingCacheTTL bounds staleness if an invalidation is ever lost.
const ratingCacheTTL = 15 * time.Minute

// RedisRatingCache implements RatingCache using Redis.
type RedisRatingCache struct {
	client *redis.Client
}

// NewRatingCache creates a new Redis-backed RatingCache.
func NewRatingCache(client *redis.Client) *RedisRatingCache {
	return &RedisRatingCache{client: client}
}

/*
Get returns the cached rating for a title.

Parameters:
  - context: context.Context
  - titleID: string

Returns:
  - *int: The cached rating, nil on a miss
  - bool: Whether a cache entry was present
  - error: Connectivity errors
*/
func (cache *RedisRatingCache) Get(context context.Context, titleID string) (*int, bool, error) {

	// Use constants for key prefix
	key := fmt.Sprintf("%s%s", constants.RedisPrefixTitleRating, titleID)

	// Get the rating from Redis
	raw, err := cache.client.Get(context, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("redis_title_rating_get_failed: %w", err)
	}

	rating, err := strconv.Atoi(raw)
	if err != nil {
		// A corrupt entry is treated as a miss and will be rewritten.
		return nil, false, nil
	}

	return &rating, true, nil
}

/*
Set stores a computed rating for a title with a bounded TTL.

Parameters:
  - context: context.Context
  - titleID: string
  - rating: int

Returns:
  - error: Execution errors
*/
func (cache *RedisRatingCache) Set(context context.Context, titleID string, rating int) error {

	// Use constants for key prefix
	key := fmt.Sprintf("%s%s", constants.RedisPrefixTitleRating, titleID)

	if err := cache.client.Set(context, key, strconv.Itoa(rating), ratingCacheTTL).Err(); err != nil {
		return fmt.Errorf("redis_title_rating_set_failed: %w", err)
	}

	return nil
}

/*
Invalidate drops the cached rating for a title.

Description: Called after every review create, update, or delete so the next
read recomputes from storage.

Parameters:
  - context: context.Context
  - titleID: string

Returns:
  - error: Deletion failures
*/
func (cache *RedisRatingCache) Invalidate(context context.Context, titleID string) error {

	// Use constants for key prefix
	key := fmt.Sprintf("%s%s", constants.RedisPrefixTitleRating, titleID)

	if err := cache.client.Del(context, key).Err(); err != nil {
		return fmt.Errorf("redis_title_rating_invalidate_failed: %w", err)
	}

	return nil
}
