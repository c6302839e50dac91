package services

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/lottotrack/lottery-tracker-backend/internal/models"
	"github.com/lottotrack/lottery-tracker-backend/internal/sources"
)

// blockingSource parks in Fetch until released, so a test can hold a run
// open while probing the scheduler.
type blockingSource struct {
	entered   chan struct{}
	release   chan struct{}
	enterOnce sync.Once
}

func (b *blockingSource) Name() string { return "blocking" }

func (b *blockingSource) Fetch(ctx context.Context) ([]models.Draw, error) {
	b.enterOnce.Do(func() { close(b.entered) })
	select {
	case <-b.release:
	case <-ctx.Done():
	}
	return []models.Draw{{Date: "2026-01-09", Main: []int{4, 11, 19, 27, 42}, Bonus: 7}}, nil
}

// countingSource counts fetches; the first one parks until released.
type countingSource struct {
	fetches   atomic.Int32
	release   chan struct{}
	firstOnce sync.Once
}

func (c *countingSource) Name() string { return "counting" }

func (c *countingSource) Fetch(ctx context.Context) ([]models.Draw, error) {
	first := false
	c.firstOnce.Do(func() { first = true })
	c.fetches.Add(1)
	if first {
		select {
		case <-c.release:
		case <-ctx.Done():
		}
	}
	return []models.Draw{{Date: "2026-01-09", Main: []int{4, 11, 19, 27, 42}, Bonus: 7}}, nil
}

func TestStartSkipsTicksDuringRun(t *testing.T) {
	games := testGames()
	delete(games, models.GamePowerball)
	src := &countingSource{release: make(chan struct{})}
	registry := sources.Registry{
		models.GameLuckyForLife: {Primary: src},
	}
	svc := newTestService(games, registry, newMemRepo())
	sched := NewScheduler(svc, 50*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	go sched.Start(ctx)

	// hold the initial run open across two tick intervals, then finish it
	// and stop the scheduler before the next tick is due
	time.Sleep(120 * time.Millisecond)
	close(src.release)
	cancel()
	time.Sleep(50 * time.Millisecond)

	// the ticks that fired mid-run must be dropped, not replayed after it
	if got := src.fetches.Load(); got != 1 {
		t.Fatalf("expected 1 run, got %d", got)
	}
}

func TestTriggerNowCoalescesConcurrentRuns(t *testing.T) {
	games := testGames()
	delete(games, models.GamePowerball)
	src := &blockingSource{entered: make(chan struct{}), release: make(chan struct{})}
	registry := sources.Registry{
		models.GameLuckyForLife: {Primary: src},
	}
	svc := newTestService(games, registry, newMemRepo())
	sched := NewScheduler(svc, time.Minute)

	done := make(chan *models.RunReport, 1)
	go func() {
		report, err := sched.TriggerNow(context.Background())
		if err != nil {
			t.Errorf("first trigger failed: %v", err)
		}
		done <- report
	}()

	<-src.entered

	// second trigger while the first run is mid-fetch: rejected, not queued
	if _, err := sched.TriggerNow(context.Background()); !errors.Is(err, ErrRunInProgress) {
		t.Fatalf("expected ErrRunInProgress, got %v", err)
	}

	close(src.release)
	report := <-done
	if report == nil {
		t.Fatal("first run produced no report")
	}
	if gr := report.Games[models.GameLuckyForLife]; gr == nil || gr.Outcome != models.OutcomeUpdated {
		t.Fatalf("first run did not complete normally: %+v", gr)
	}

	// once the run finishes the scheduler accepts triggers again
	if _, err := sched.TriggerNow(context.Background()); err != nil {
		t.Fatalf("trigger after completion failed: %v", err)
	}
}
