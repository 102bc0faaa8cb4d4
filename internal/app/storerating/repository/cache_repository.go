package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"storerating/pkg/metrics"
)

const storeAverageKeyPrefix = "store:avg:"

// cachedAverage кешируемое значение. Average nil — у магазина нет оценок,
// это тоже валидный кешируемый факт.
type cachedAverage struct {
	Average *float64 `json:"average"`
}

type ratingCacheRepository struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRatingCacheRepository создает Redis-репозиторий кеша агрегатов
func NewRatingCacheRepository(client *redis.Client, ttl time.Duration) RatingCacheRepository {
	return &ratingCacheRepository{
		client: client,
		ttl:    ttl,
	}
}

// GetStoreAverage получает закешированную среднюю оценку магазина.
// Второе значение false — промах кеша.
func (r *ratingCacheRepository) GetStoreAverage(ctx context.Context, storeID uuid.UUID) (*float64, bool, error) {
	data, err := r.client.Get(ctx, storeAverageKey(storeID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			metrics.RecordCacheMiss("store-rating-api", storeAverageKeyPrefix)
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to get store average from cache: %w", err)
	}

	var cached cachedAverage
	if err := json.Unmarshal(data, &cached); err != nil {
		return nil, false, fmt.Errorf("failed to unmarshal cached average: %w", err)
	}

	metrics.RecordCacheHit("store-rating-api", storeAverageKeyPrefix)
	return cached.Average, true, nil
}

// SetStoreAverage кеширует среднюю оценку магазина на время TTL
func (r *ratingCacheRepository) SetStoreAverage(ctx context.Context, storeID uuid.UUID, average *float64) error {
	data, err := json.Marshal(cachedAverage{Average: average})
	if err != nil {
		return fmt.Errorf("failed to marshal average: %w", err)
	}

	if err := r.client.Set(ctx, storeAverageKey(storeID), data, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set store average in cache: %w", err)
	}

	return nil
}

// InvalidateStoreAverage сбрасывает кеш после записи оценки
func (r *ratingCacheRepository) InvalidateStoreAverage(ctx context.Context, storeID uuid.UUID) error {
	if err := r.client.Del(ctx, storeAverageKey(storeID)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate store average: %w", err)
	}
	return nil
}

func storeAverageKey(storeID uuid.UUID) string {
	return storeAverageKeyPrefix + storeID.String()
}
