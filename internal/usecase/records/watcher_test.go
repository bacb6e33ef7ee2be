package records

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/goleak"

	"github.com/johnquangdev/assessment-records/internal/domain/entities"
	"github.com/johnquangdev/assessment-records/pkg/config"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type scriptedRefresher struct {
	mu    sync.Mutex
	calls int
	next  func(call int) ([]entities.Record, error)
}

func (s *scriptedRefresher) Refresh(ctx context.Context, email string) ([]entities.Record, error) {
	s.mu.Lock()
	s.calls++
	n := s.calls
	s.mu.Unlock()
	return s.next(n)
}

func fastWatch() config.WatchConfig {
	return config.WatchConfig{
		InitialInterval: time.Millisecond,
		MaxInterval:     5 * time.Millisecond,
		MaxElapsed:      time.Second,
	}
}

func TestWatch_StopsWhenSettled(t *testing.T) {
	r := &scriptedRefresher{next: func(call int) ([]entities.Record, error) {
		if call < 3 {
			return []entities.Record{readyRecord("1"), pendingRecord("2")}, nil
		}
		return []entities.Record{readyRecord("1"), readyRecord("2")}, nil
	}}

	var updates int
	err := NewWatcher(r, fastWatch(), nil).Watch(context.Background(), "ana@example.com", func([]entities.Record) {
		updates++
	})

	assert.NoError(t, err)
	assert.Equal(t, 3, r.calls)
	assert.Equal(t, 3, updates)
}

func TestWatch_SupersededTickIsSkipped(t *testing.T) {
	r := &scriptedRefresher{next: func(call int) ([]entities.Record, error) {
		if call == 1 {
			return nil, entities.ErrRefreshSuperseded
		}
		return []entities.Record{readyRecord("1")}, nil
	}}

	var updates int
	err := NewWatcher(r, fastWatch(), nil).Watch(context.Background(), "ana@example.com", func([]entities.Record) {
		updates++
	})

	assert.NoError(t, err)
	assert.Equal(t, 2, r.calls)
	assert.Equal(t, 1, updates)
}

func TestWatch_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	r := &scriptedRefresher{next: func(call int) ([]entities.Record, error) {
		return []entities.Record{pendingRecord("1")}, nil
	}}

	cfg := fastWatch()
	cfg.InitialInterval = time.Hour
	cfg.MaxInterval = time.Hour
	cfg.MaxElapsed = 0

	done := make(chan error, 1)
	go func() {
		done <- NewWatcher(r, cfg, nil).Watch(ctx, "ana@example.com", nil)
	}()

	time.Sleep(10 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.True(t, errors.Is(err, context.Canceled))
	case <-time.After(2 * time.Second):
		t.Fatal("watch did not stop on cancel")
	}
}

func TestWatch_Expires(t *testing.T) {
	r := &scriptedRefresher{next: func(call int) ([]entities.Record, error) {
		return []entities.Record{pendingRecord("1")}, nil
	}}

	cfg := fastWatch()
	cfg.MaxElapsed = 20 * time.Millisecond

	err := NewWatcher(r, cfg, nil).Watch(context.Background(), "ana@example.com", nil)
	assert.True(t, errors.Is(err, ErrWatchExpired))
	assert.Greater(t, r.calls, 1)
}

func TestWatch_RefreshErrorStops(t *testing.T) {
	r := &scriptedRefresher{next: func(call int) ([]entities.Record, error) {
		return nil, entities.ErrMissingIdentity
	}}

	err := NewWatcher(r, fastWatch(), nil).Watch(context.Background(), "", nil)
	assert.True(t, errors.Is(err, entities.ErrMissingIdentity))
	assert.Equal(t, 1, r.calls)
}
