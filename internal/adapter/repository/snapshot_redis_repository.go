package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/johnquangdev/assessment-records/internal/domain/entities"
)

// RedisSnapshotRepository stores record snapshots as JSON in Redis
type RedisSnapshotRepository struct {
	client redis.Cmdable
	ttl    time.Duration
}

// NewRedisSnapshotRepository creates a new Redis snapshot repository
func NewRedisSnapshotRepository(client redis.Cmdable, ttl time.Duration) *RedisSnapshotRepository {
	return &RedisSnapshotRepository{
		client: client,
		ttl:    ttl,
	}
}

// Get loads the snapshot
func (r *RedisSnapshotRepository) Get(ctx context.Context, email string) ([]entities.Record, bool, error) {
	data, err := r.client.Get(ctx, snapshotKeyPrefix+email).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to get snapshot: %w", err)
	}

	var records []entities.Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, false, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	if records == nil {
		records = []entities.Record{}
	}
	return records, true, nil
}

// Save replaces the snapshot
func (r *RedisSnapshotRepository) Save(ctx context.Context, email string, records []entities.Record) error {
	if records == nil {
		records = []entities.Record{}
	}
	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	if err := r.client.Set(ctx, snapshotKeyPrefix+email, data, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}
	return nil
}

// Delete drops the snapshot
func (r *RedisSnapshotRepository) Delete(ctx context.Context, email string) error {
	if err := r.client.Del(ctx, snapshotKeyPrefix+email).Err(); err != nil {
		return fmt.Errorf("failed to delete snapshot: %w", err)
	}
	return nil
}
