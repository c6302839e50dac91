package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"golang.org/x/exp/slog"

	"github.com/lottotrack/lottery-tracker-backend/internal/models"
)

// ErrRunInProgress is returned when a manual trigger arrives while a refresh
// run is already executing. Triggers are coalesced, never queued: draws do
// not change faster than the refresh interval.
var ErrRunInProgress = errors.New("refresh run already in progress")

// Scheduler triggers refresh runs on a fixed interval and exposes a manual
// trigger. It holds no draw data; it is timing plumbing around the
// orchestrator, enforcing that only one run executes at a time.
type Scheduler struct {
	refresh  *RefreshService
	interval time.Duration
	running  sync.Mutex // held for the duration of one run
}

// NewScheduler creates a Scheduler driving the given refresh service.
func NewScheduler(refresh *RefreshService, interval time.Duration) *Scheduler {
	return &Scheduler{refresh: refresh, interval: interval}
}

// Start runs an initial refresh, then one per interval, until ctx is
// cancelled. A tick arriving while a run is still in progress is skipped.
func (s *Scheduler) Start(ctx context.Context) {
	slog.Info("scheduler started", "interval", s.interval)

	// Each trigger runs in its own goroutine. Consuming ticks while a run
	// executes is what makes a mid-run tick fail TryLock and get dropped;
	// running inline would buffer the tick and replay it after the run.
	run := func() {
		if _, err := s.TriggerNow(ctx); err != nil {
			slog.Warn("refresh skipped", "error", err)
		}
	}
	go run()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("scheduler stopped")
			return
		case <-ticker.C:
			go run()
		}
	}
}

// TriggerNow runs the pipeline immediately if no run is in progress,
// returning the run report. When a run is already executing it returns
// ErrRunInProgress without queueing.
func (s *Scheduler) TriggerNow(ctx context.Context) (*models.RunReport, error) {
	if !s.running.TryLock() {
		return nil, ErrRunInProgress
	}
	defer s.running.Unlock()
	return s.refresh.RunOnce(ctx), nil
}
