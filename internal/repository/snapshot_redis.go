package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/hpsapps/daily/internal/models"
)

// RedisSnapshotRepository persists the whole application state under a
// single Redis key. Same whole-blob overwrite semantics as the Postgres
// backend.
type RedisSnapshotRepository struct {
	client *redis.Client
	key    string
}

// NewRedisSnapshotRepository constructs a RedisSnapshotRepository.
func NewRedisSnapshotRepository(client *redis.Client, key string) *RedisSnapshotRepository {
	return &RedisSnapshotRepository{client: client, key: key}
}

// Save overwrites the stored snapshot. No TTL: the snapshot lives until the
// next save.
func (r *RedisSnapshotRepository) Save(ctx context.Context, state models.AppState) error {
	payload, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("marshal state snapshot: %w", err)
	}
	if err := r.client.Set(ctx, r.key, payload, 0).Err(); err != nil {
		return fmt.Errorf("save state snapshot: %w", err)
	}
	return nil
}

// Load returns the stored snapshot, or (nil, nil) when none exists.
func (r *RedisSnapshotRepository) Load(ctx context.Context) (*models.AppState, error) {
	payload, err := r.client.Get(ctx, r.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("load state snapshot: %w", err)
	}

	var state models.AppState
	if err := json.Unmarshal(payload, &state); err != nil {
		return nil, fmt.Errorf("unmarshal state snapshot: %w", err)
	}
	return &state, nil
}
