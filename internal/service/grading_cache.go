package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/edunext/mindmap-api/internal/dto"
)

// GradingCache keeps recently assembled grading screens in redis. Cache
// failures degrade to database reads; they are never fatal.
type GradingCache struct {
	client *redis.Client
	ttl    time.Duration
	logger zerolog.Logger
}

// NewGradingCache builds the cache wrapper. A nil client disables caching.
func NewGradingCache(client *redis.Client, ttl time.Duration, logger zerolog.Logger) *GradingCache {
	return &GradingCache{
		client: client,
		ttl:    ttl,
		logger: logger.With().Str("component", "grading_cache").Logger(),
	}
}

func gradingCacheKey(courseID, blockID string) string {
	return fmt.Sprintf("mindmap:grading:%s:%s", courseID, blockID)
}

// Get returns the cached grading data and whether it was present.
func (c *GradingCache) Get(ctx context.Context, courseID, blockID string) (dto.GradingDataResponse, bool) {
	if c == nil || c.client == nil {
		return dto.GradingDataResponse{}, false
	}

	cached, err := c.client.Get(ctx, gradingCacheKey(courseID, blockID)).Result()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn().Err(err).Msg("failed to read grading cache")
		}
		return dto.GradingDataResponse{}, false
	}

	var response dto.GradingDataResponse
	if err := json.Unmarshal([]byte(cached), &response); err != nil {
		return dto.GradingDataResponse{}, false
	}

	return response, true
}

// Set stores grading data under the block's cache key.
func (c *GradingCache) Set(ctx context.Context, courseID, blockID string, data dto.GradingDataResponse) {
	if c == nil || c.client == nil {
		return
	}

	payload, err := json.Marshal(data)
	if err != nil {
		return
	}

	if err := c.client.Set(ctx, gradingCacheKey(courseID, blockID), payload, c.ttl).Err(); err != nil {
		c.logger.Warn().Err(err).Msg("failed to store grading cache")
	}
}

// Invalidate drops the cached grading screen after a mutation.
func (c *GradingCache) Invalidate(ctx context.Context, courseID, blockID string) {
	if c == nil || c.client == nil {
		return
	}

	if err := c.client.Del(ctx, gradingCacheKey(courseID, blockID)).Err(); err != nil {
		c.logger.Warn().Err(err).Msg("failed to invalidate grading cache")
	}
}
