package repository

import (
	"context"

	"github.com/johnquangdev/assessment-records/internal/domain/entities"
	"github.com/johnquangdev/assessment-records/internal/infrastructure/cache"
)

const snapshotKeyPrefix = "records:snapshot:"

// MemorySnapshotRepository keeps record snapshots in process memory
type MemorySnapshotRepository struct {
	store *cache.MemoryStore
}

// NewMemorySnapshotRepository creates a new in-memory snapshot repository
func NewMemorySnapshotRepository(store *cache.MemoryStore) *MemorySnapshotRepository {
	return &MemorySnapshotRepository{
		store: store,
	}
}

// Get returns a copy of the stored snapshot
func (r *MemorySnapshotRepository) Get(ctx context.Context, email string) ([]entities.Record, bool, error) {
	v, ok := r.store.Get(snapshotKeyPrefix + email)
	if !ok {
		return nil, false, nil
	}
	records, ok := v.([]entities.Record)
	if !ok {
		return nil, false, nil
	}
	return cloneRecords(records), true, nil
}

// Save replaces the snapshot
func (r *MemorySnapshotRepository) Save(ctx context.Context, email string, records []entities.Record) error {
	r.store.Set(snapshotKeyPrefix+email, cloneRecords(records), 0)
	return nil
}

// Delete drops the snapshot
func (r *MemorySnapshotRepository) Delete(ctx context.Context, email string) error {
	r.store.Delete(snapshotKeyPrefix + email)
	return nil
}

func cloneRecords(in []entities.Record) []entities.Record {
	out := make([]entities.Record, len(in))
	copy(out, in)
	return out
}
