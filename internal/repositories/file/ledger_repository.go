// Package file implements the ledger repository on per-game JSON files.
// Writers follow a write-temp-then-rename discipline so an external reader
// (or a crash mid-merge) can only ever observe the pre-write or post-write
// ledger, never a partial one.
package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"golang.org/x/exp/slog"

	"github.com/lottotrack/lottery-tracker-backend/internal/models"
	"github.com/lottotrack/lottery-tracker-backend/internal/repositories"
)

// LedgerRepository implements repositories.LedgerRepository on a data
// directory holding one <game>.json per game.
type LedgerRepository struct {
	dataDir string
	names   map[models.Game]string

	mu    sync.Mutex
	locks map[models.Game]*sync.Mutex
}

// NewLedgerRepository creates the repository. names supplies the display
// name stored in freshly created ledgers.
func NewLedgerRepository(dataDir string, names map[models.Game]string) (*LedgerRepository, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &LedgerRepository{
		dataDir: dataDir,
		names:   names,
		locks:   make(map[models.Game]*sync.Mutex),
	}, nil
}

// lock returns the per-game write mutex. Ledgers for different games live in
// different files, so merges for different games may run concurrently.
func (r *LedgerRepository) lock(game models.Game) *sync.Mutex {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.locks[game]
	if !ok {
		l = &sync.Mutex{}
		r.locks[game] = l
	}
	return l
}

func (r *LedgerRepository) path(game models.Game) string {
	return filepath.Join(r.dataDir, game.Key()+".json")
}

// load reads a ledger from disk. A missing file yields a fresh empty ledger;
// an unreadable or corrupt file yields ErrStoreUnavailable so a bad disk
// never looks like an empty history.
func (r *LedgerRepository) load(game models.Game) (*models.Ledger, error) {
	raw, err := os.ReadFile(r.path(game))
	if os.IsNotExist(err) {
		return &models.Ledger{Game: game, Name: r.names[game], Draws: []models.Draw{}}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", repositories.ErrStoreUnavailable, r.path(game), err)
	}

	var ledger models.Ledger
	if err := json.Unmarshal(raw, &ledger); err != nil {
		return nil, fmt.Errorf("%w: corrupt ledger %s: %v", repositories.ErrStoreUnavailable, r.path(game), err)
	}
	if ledger.Game == "" {
		ledger.Game = game
	}
	return &ledger, nil
}

// store writes the ledger to a temporary file in the same directory and
// atomically renames it into place.
func (r *LedgerRepository) store(game models.Game, ledger *models.Ledger) error {
	data, err := json.MarshalIndent(ledger, "", "  ")
	if err != nil {
		return fmt.Errorf("encode ledger: %w", err)
	}

	tmp, err := os.CreateTemp(r.dataDir, game.Key()+".json.tmp-*")
	if err != nil {
		return fmt.Errorf("%w: create temp: %v", repositories.ErrStoreUnavailable, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("%w: write temp: %v", repositories.ErrStoreUnavailable, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("%w: sync temp: %v", repositories.ErrStoreUnavailable, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: close temp: %v", repositories.ErrStoreUnavailable, err)
	}

	if err := os.Rename(tmpName, r.path(game)); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: swap ledger: %v", repositories.ErrStoreUnavailable, err)
	}
	return nil
}

// Latest returns the most recent draw for a game, or nil when empty.
func (r *LedgerRepository) Latest(ctx context.Context, game models.Game) (*models.Draw, error) {
	ledger, err := r.load(game)
	if err != nil {
		return nil, err
	}
	return ledger.Latest(), nil
}

// History returns the full ledger, most recent draw first.
func (r *LedgerRepository) History(ctx context.Context, game models.Game) (*models.Ledger, error) {
	return r.load(game)
}

// Merge inserts candidates with unseen dates and returns the inserted count.
// Idempotent: a second merge of the same set inserts zero records and leaves
// lastUpdated untouched.
func (r *LedgerRepository) Merge(ctx context.Context, game models.Game, draws []models.Draw) (int, error) {
	l := r.lock(game)
	l.Lock()
	defer l.Unlock()

	ledger, err := r.load(game)
	if err != nil {
		return 0, err
	}

	inserted := 0
	for _, draw := range draws {
		if ledger.HasDate(draw.Date) {
			continue
		}
		ledger.Draws = append(ledger.Draws, draw)
		inserted++
	}
	if inserted == 0 {
		return 0, nil
	}

	sortDrawsNewestFirst(ledger.Draws)
	ledger.LastUpdated = time.Now()

	if err := r.store(game, ledger); err != nil {
		return 0, err
	}
	slog.Info("ledger merged", "game", game, "inserted", inserted, "total", len(ledger.Draws))
	return inserted, nil
}

// SetJackpot overwrites the jackpot annotation. lastUpdated moves only when
// the stored annotation actually changes.
func (r *LedgerRepository) SetJackpot(ctx context.Context, game models.Game, jackpot *models.Jackpot) error {
	if jackpot == nil {
		return nil
	}

	l := r.lock(game)
	l.Lock()
	defer l.Unlock()

	ledger, err := r.load(game)
	if err != nil {
		return err
	}

	changed := ledger.Jackpot == nil || !ledger.Jackpot.Equal(*jackpot)
	ledger.Jackpot = jackpot
	if changed {
		ledger.LastUpdated = time.Now()
	}
	return r.store(game, ledger)
}

// RemoveDraws deletes draws matched by the predicate, dedupes dates keeping
// the first occurrence, and re-sorts newest first.
func (r *LedgerRepository) RemoveDraws(ctx context.Context, game models.Game, remove func(models.Draw) bool) (int, error) {
	l := r.lock(game)
	l.Lock()
	defer l.Unlock()

	ledger, err := r.load(game)
	if err != nil {
		return 0, err
	}

	kept := make([]models.Draw, 0, len(ledger.Draws))
	seen := make(map[string]bool, len(ledger.Draws))
	removed := 0
	for _, draw := range ledger.Draws {
		if remove != nil && remove(draw) {
			removed++
			continue
		}
		if seen[draw.Date] {
			removed++
			continue
		}
		seen[draw.Date] = true
		kept = append(kept, draw)
	}

	sortDrawsNewestFirst(kept)
	ledger.Draws = kept
	if removed > 0 {
		ledger.LastUpdated = time.Now()
	}
	if err := r.store(game, ledger); err != nil {
		return 0, err
	}
	return removed, nil
}

// ISO dates compare correctly as strings.
func sortDrawsNewestFirst(draws []models.Draw) {
	sort.SliceStable(draws, func(i, j int) bool {
		return draws[i].Date > draws[j].Date
	})
}
