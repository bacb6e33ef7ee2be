package records

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/johnquangdev/assessment-records/internal/domain/entities"
	"github.com/johnquangdev/assessment-records/internal/domain/repositories"
	"github.com/johnquangdev/assessment-records/internal/infrastructure/metrics"
	"github.com/johnquangdev/assessment-records/internal/usecase/report"
)

// RecordFetcher retrieves a user's records. It never fails.
type RecordFetcher interface {
	Fetch(ctx context.Context, email string) []entities.Record
}

// DownloadResolver turns a video key into a playable link
type DownloadResolver interface {
	DownloadURL(ctx context.Context, filename string) (string, error)
}

type inflightRefresh struct {
	gen    uint64
	cancel context.CancelFunc
}

// Service owns the per-user record snapshots. Concurrent refreshes for one
// user follow latest-wins: starting a refresh cancels the one in flight, and
// only the newest refresh may commit its result.
type Service struct {
	fetcher   RecordFetcher
	snapshots repositories.SnapshotRepository
	inspector *report.Inspector
	downloads DownloadResolver
	logger    *zap.Logger
	metrics   *metrics.Metrics

	mu       sync.Mutex
	nextGen  uint64
	inflight map[string]inflightRefresh
}

// NewService creates a new records service
func NewService(
	fetcher RecordFetcher,
	snapshots repositories.SnapshotRepository,
	inspector *report.Inspector,
	downloads DownloadResolver,
	logger *zap.Logger,
	m *metrics.Metrics,
) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if inspector == nil {
		inspector = report.NewInspector(nil, report.PolicySurface, logger, m)
	}
	return &Service{
		fetcher:   fetcher,
		snapshots: snapshots,
		inspector: inspector,
		downloads: downloads,
		logger:    logger,
		metrics:   m,
		inflight:  make(map[string]inflightRefresh),
	}
}

// Refresh fetches the user's records and replaces the snapshot. When a newer
// refresh for the same user starts first, this one is cancelled and returns
// ErrRefreshSuperseded without touching the snapshot.
func (s *Service) Refresh(ctx context.Context, email string) ([]entities.Record, error) {
	email, err := normalizeEmail(email)
	if err != nil {
		return nil, err
	}

	fetchCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	s.mu.Lock()
	if prev, ok := s.inflight[email]; ok {
		prev.cancel()
	}
	s.nextGen++
	gen := s.nextGen
	s.inflight[email] = inflightRefresh{gen: gen, cancel: cancel}
	s.mu.Unlock()

	records := s.fetcher.Fetch(fetchCtx, email)

	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.inflight[email]
	if !ok || current.gen != gen {
		s.metrics.ObserveRefresh(metrics.OutcomeSuperseded)
		s.logger.Info("records.refresh.superseded",
			zap.String("email", email),
			zap.Uint64("generation", gen),
		)
		return nil, entities.ErrRefreshSuperseded
	}
	delete(s.inflight, email)

	// The caller gave up; an empty result here says nothing about the backend.
	if err := ctx.Err(); err != nil {
		s.metrics.ObserveRefresh(metrics.OutcomeFailure)
		return nil, err
	}

	if err := s.snapshots.Save(ctx, email, records); err != nil {
		s.metrics.ObserveRefresh(metrics.OutcomeFailure)
		s.logger.Error("records.refresh.save_failed", zap.String("email", email), zap.Error(err))
		return nil, fmt.Errorf("%w: save: %v", entities.ErrSnapshotUnavailable, err)
	}

	s.metrics.ObserveRefresh(metrics.OutcomeCommitted)
	s.logger.Debug("records.refresh.committed",
		zap.String("email", email),
		zap.Uint64("generation", gen),
		zap.Int("count", len(records)),
	)
	return records, nil
}

// List returns the user's snapshot, fetching it on first view
func (s *Service) List(ctx context.Context, email string) ([]entities.Record, error) {
	email, err := normalizeEmail(email)
	if err != nil {
		return nil, err
	}

	records, ok, err := s.snapshots.Get(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("%w: load: %v", entities.ErrSnapshotUnavailable, err)
	}
	if ok {
		return records, nil
	}

	records, err = s.Refresh(ctx, email)
	if errors.Is(err, entities.ErrRefreshSuperseded) {
		return s.Snapshot(ctx, email)
	}
	return records, err
}

// Snapshot returns the stored snapshot without fetching. A user with no
// snapshot yet gets an empty list.
func (s *Service) Snapshot(ctx context.Context, email string) ([]entities.Record, error) {
	email, err := normalizeEmail(email)
	if err != nil {
		return nil, err
	}

	records, ok, err := s.snapshots.Get(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("%w: load: %v", entities.ErrSnapshotUnavailable, err)
	}
	if !ok {
		return []entities.Record{}, nil
	}
	return records, nil
}

// Record looks up one record in the user's snapshot
func (s *Service) Record(ctx context.Context, email, recordID string) (*entities.Record, error) {
	records, err := s.List(ctx, email)
	if err != nil {
		return nil, err
	}
	for i := range records {
		if records[i].RecordID == recordID {
			return &records[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %s", entities.ErrRecordNotFound, recordID)
}

// Report builds the report metrics for one record
func (s *Service) Report(ctx context.Context, email, recordID string) (*entities.Record, *entities.ReportMetrics, error) {
	rec, err := s.Record(ctx, email, recordID)
	if err != nil {
		return nil, nil, err
	}
	m, err := s.inspector.Inspect(rec)
	if err != nil {
		return rec, nil, err
	}
	return rec, m, nil
}

// VideoURL resolves a playable link for one record's video
func (s *Service) VideoURL(ctx context.Context, email, recordID string) (string, error) {
	rec, err := s.Record(ctx, email, recordID)
	if err != nil {
		return "", err
	}
	if !rec.VideoReady() {
		return "", fmt.Errorf("%w: %s", entities.ErrRecordPending, entities.RecordFieldVideo)
	}
	if s.downloads == nil {
		return "", fmt.Errorf("%w: no download resolver configured", entities.ErrNetwork)
	}

	link, err := s.downloads.DownloadURL(ctx, rec.Video.String())
	if err != nil {
		s.logger.Warn("records.video.resolve_failed",
			zap.String("record_id", recordID),
			zap.String("video", rec.Video.String()),
			zap.Error(err),
		)
		return "", err
	}
	return link, nil
}

// DecodePolicy returns the report decode failure policy in effect
func (s *Service) DecodePolicy() report.DecodeFailurePolicy {
	return s.inspector.Policy()
}

func normalizeEmail(email string) (string, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return "", entities.ErrMissingIdentity
	}
	return email, nil
}
