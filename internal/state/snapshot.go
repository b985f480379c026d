package state

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"menuboard/api/internal/domain"

	"github.com/redis/go-redis/v9"
)

// SnapshotStore is a shared second-level cache of the parsed menu. Instances
// behind a load balancer warm their in-memory cache from it instead of each
// hitting the spreadsheet export.
type SnapshotStore interface {
	Save(ctx context.Context, data *domain.MenuData) error
	Load(ctx context.Context) (*domain.MenuData, time.Time, error)
	Clear(ctx context.Context) error
}

type redisSnapshotStore struct {
	redisClient *redis.Client
	dataKey     string
	fetchedKey  string
	ttl         time.Duration
}

func NewRedisSnapshotStore(redisClient *redis.Client, ttl time.Duration) SnapshotStore {
	return &redisSnapshotStore{
		redisClient: redisClient,
		dataKey:     "menuboard:snapshot:data",
		fetchedKey:  "menuboard:snapshot:fetched_at",
		ttl:         ttl,
	}
}

func (s *redisSnapshotStore) Save(ctx context.Context, data *domain.MenuData) error {
	encoded, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to encode menu snapshot: %w", err)
	}

	now := time.Now().UTC()
	pipe := s.redisClient.TxPipeline()
	pipe.Set(ctx, s.dataKey, encoded, s.ttl)
	pipe.Set(ctx, s.fetchedKey, now.Format(time.RFC3339Nano), s.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save menu snapshot: %w", err)
	}
	return nil
}

// Load returns the stored snapshot and when it was fetched. A missing key
// yields a nil snapshot, not an error.
func (s *redisSnapshotStore) Load(ctx context.Context) (*domain.MenuData, time.Time, error) {
	encoded, err := s.redisClient.Get(ctx, s.dataKey).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, time.Time{}, nil
		}
		return nil, time.Time{}, fmt.Errorf("failed to load menu snapshot: %w", err)
	}

	data := domain.NewMenuData()
	if err := json.Unmarshal([]byte(encoded), data); err != nil {
		return nil, time.Time{}, fmt.Errorf("failed to decode menu snapshot: %w", err)
	}

	fetchedAt := time.Time{}
	if raw, err := s.redisClient.Get(ctx, s.fetchedKey).Result(); err == nil {
		if parsed, err := time.Parse(time.RFC3339Nano, raw); err == nil {
			fetchedAt = parsed
		}
	}

	return data, fetchedAt, nil
}

func (s *redisSnapshotStore) Clear(ctx context.Context) error {
	if err := s.redisClient.Del(ctx, s.dataKey, s.fetchedKey).Err(); err != nil {
		return fmt.Errorf("failed to clear menu snapshot: %w", err)
	}
	return nil
}
