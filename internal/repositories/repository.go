package repositories

import (
	"context"
	"errors"

	"github.com/lottotrack/lottery-tracker-backend/internal/models"
)

// ErrStoreUnavailable marks a persistence layer that is unreachable or
// holding corrupt data. Callers must treat it as "no update this cycle",
// never as an empty history: a corrupt read must not masquerade as a
// legitimate wipe.
var ErrStoreUnavailable = errors.New("store unavailable")

// LedgerRepository defines the interface for draw history operations. It is
// the sole mutation point for ledgers; the refresh pipeline never touches
// the underlying files directly.
type LedgerRepository interface {
	// Latest returns the most recent draw for a game, or nil when the
	// ledger is empty.
	Latest(ctx context.Context, game models.Game) (*models.Draw, error)

	// History returns the full ledger, draws ordered most recent first.
	History(ctx context.Context, game models.Game) (*models.Ledger, error)

	// Merge inserts candidates whose dates are not yet in the ledger and
	// returns the inserted count. The write is all-or-nothing; re-merging
	// an already-merged set inserts zero records.
	Merge(ctx context.Context, game models.Game, draws []models.Draw) (int, error)

	// SetJackpot overwrites the jackpot annotation unconditionally.
	SetJackpot(ctx context.Context, game models.Game, jackpot *models.Jackpot) error

	// RemoveDraws deletes draws matched by the predicate and re-sorts the
	// ledger newest first. This is the explicit data-correction operation
	// used by the fix tooling, outside the refresh pipeline.
	RemoveDraws(ctx context.Context, game models.Game, remove func(models.Draw) bool) (int, error)
}
