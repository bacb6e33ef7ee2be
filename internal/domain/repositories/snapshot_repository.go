package repositories

import (
	"context"

	"github.com/johnquangdev/assessment-records/internal/domain/entities"
)

// SnapshotRepository stores the latest fetched record list per user
type SnapshotRepository interface {
	// Get returns the stored snapshot. ok is false when none exists.
	Get(ctx context.Context, email string) (records []entities.Record, ok bool, err error)

	// Save replaces the snapshot wholesale
	Save(ctx context.Context, email string, records []entities.Record) error

	// Delete drops the snapshot
	Delete(ctx context.Context, email string) error
}
