package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/exp/slog"

	"github.com/lottotrack/lottery-tracker-backend/internal/config"
	"github.com/lottotrack/lottery-tracker-backend/internal/models"
	"github.com/lottotrack/lottery-tracker-backend/internal/repositories"
	"github.com/lottotrack/lottery-tracker-backend/internal/sources"
	"github.com/lottotrack/lottery-tracker-backend/internal/utils"
)

// RefreshService orchestrates one refresh run: per game it fetches from the
// primary source (fallback on failure), validates candidates, merges into
// the ledger, and updates the jackpot annotation. Games are processed
// independently and concurrently; a failure in one never blocks the others.
type RefreshService struct {
	games        config.GameTable
	registry     sources.Registry
	jackpots     *sources.JackpotFetcher
	ledgerRepo   repositories.LedgerRepository
	fetchTimeout time.Duration
	now          func() time.Time
}

// NewRefreshService creates a RefreshService.
func NewRefreshService(
	games config.GameTable,
	registry sources.Registry,
	jackpots *sources.JackpotFetcher,
	ledgerRepo repositories.LedgerRepository,
	fetchTimeout time.Duration,
) *RefreshService {
	return &RefreshService{
		games:        games,
		registry:     registry,
		jackpots:     jackpots,
		ledgerRepo:   ledgerRepo,
		fetchTimeout: fetchTimeout,
		now:          time.Now,
	}
}

// RunOnce executes the refresh pipeline across all games and returns the
// per-game report. This is a best-effort batch job, not a transaction: each
// game's outcome is independent so callers can see partial success.
func (s *RefreshService) RunOnce(ctx context.Context) *models.RunReport {
	report := &models.RunReport{
		RunID:     uuid.NewString(),
		StartedAt: s.now(),
		Games:     make(map[models.Game]*models.GameReport, len(s.games)),
	}
	slog.Info("refresh run starting", "runId", report.RunID)

	var (
		mu sync.Mutex
		wg sync.WaitGroup
	)
	for game := range s.games {
		game := game
		wg.Add(1)
		go func() {
			defer wg.Done()
			gr := s.refreshGame(ctx, game)
			mu.Lock()
			report.Games[game] = gr
			mu.Unlock()
		}()
	}
	wg.Wait()

	report.FinishedAt = s.now()
	for game, gr := range report.Games {
		slog.Info("refresh game outcome",
			"runId", report.RunID, "game", game, "outcome", gr.Outcome,
			"inserted", gr.Inserted, "failure", string(gr.Failure))
	}
	return report
}

// refreshGame runs the fetch/validate/merge sequence for one game under its
// own timeout budget, so one stalled feed cannot starve the others.
func (s *RefreshService) refreshGame(ctx context.Context, game models.Game) *models.GameReport {
	gr := &models.GameReport{Game: game}
	gc := s.games[game]

	gameCtx, cancel := context.WithTimeout(ctx, s.fetchTimeout)
	defer cancel()

	candidates, sourceName, err := s.fetchWithFallback(gameCtx, game)
	if err != nil {
		gr.Outcome = models.OutcomeFailed
		gr.Failure = models.FailureSourceUnavailable
		if errors.Is(err, sources.ErrSourceFormatChanged) {
			gr.Failure = models.FailureSourceFormatChanged
		}
		gr.Error = err.Error()
		return gr
	}
	gr.Source = sourceName

	valid := make([]models.Draw, 0, len(candidates))
	now := s.now()
	for _, c := range candidates {
		if verr := ValidateDraw(c, gc, now); verr != nil {
			gr.Rejections = append(gr.Rejections, verr.Rejection(c.Date))
			continue
		}
		valid = append(valid, c)
	}
	if len(valid) == 0 {
		gr.Outcome = models.OutcomeFailed
		gr.Failure = models.FailureNoValidData
		return gr
	}

	inserted, err := s.ledgerRepo.Merge(ctx, game, valid)
	if err != nil {
		// cached data already on disk remains the visible state
		gr.Outcome = models.OutcomeFailed
		gr.Failure = models.FailureStoreUnavailable
		gr.Error = err.Error()
		return gr
	}
	gr.Inserted = inserted
	if inserted == 0 {
		gr.Outcome = models.OutcomeNoChange
	} else {
		gr.Outcome = models.OutcomeUpdated
	}

	s.updateJackpot(ctx, gc, gr)
	return gr
}

// fetchWithFallback invokes the primary adapter and, on failure, the
// fallback if one is configured.
func (s *RefreshService) fetchWithFallback(ctx context.Context, game models.Game) ([]models.Draw, string, error) {
	gs, ok := s.registry[game]
	if !ok || gs.Primary == nil {
		return nil, "", sources.ErrSourceUnavailable
	}

	draws, err := gs.Primary.Fetch(ctx)
	if err == nil {
		return draws, gs.Primary.Name(), nil
	}
	slog.Warn("primary source failed", "game", game, "source", gs.Primary.Name(), "error", err)

	if gs.Fallback == nil {
		return nil, "", err
	}
	draws, ferr := gs.Fallback.Fetch(ctx)
	if ferr != nil {
		slog.Warn("fallback source failed", "game", game, "source", gs.Fallback.Name(), "error", ferr)
		return nil, "", ferr
	}
	return draws, gs.Fallback.Name(), nil
}

// updateJackpot refreshes the jackpot annotation after a successful draw
// phase. Jackpots are point-in-time estimates: failures are logged, never
// reported as game failures.
func (s *RefreshService) updateJackpot(ctx context.Context, gc config.GameConfig, gr *models.GameReport) {
	if s.jackpots == nil {
		return
	}
	jpCtx, cancel := context.WithTimeout(ctx, s.fetchTimeout)
	defer cancel()

	nextDraw := utils.NextDrawTime(gc, s.now())
	jackpot, err := s.jackpots.Fetch(jpCtx, gc, nextDraw)
	if err != nil {
		slog.Warn("jackpot fetch failed", "game", gc.Game, "error", err)
		return
	}
	if err := s.ledgerRepo.SetJackpot(ctx, gc.Game, jackpot); err != nil {
		slog.Warn("jackpot save failed", "game", gc.Game, "error", err)
	}
}
