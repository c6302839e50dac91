package services

import (
	"fmt"
	"time"

	"golang.org/x/exp/slog"

	"github.com/lottotrack/lottery-tracker-backend/internal/config"
	"github.com/lottotrack/lottery-tracker-backend/internal/models"
)

// ValidationError is the rejection returned for a candidate that fails a
// structural or range check. It names the offending field for diagnostics.
type ValidationError struct {
	Reason models.RejectionReason
	Field  string
	Detail string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (%s)", e.Reason, e.Field, e.Detail)
}

// Rejection converts the error into its report form for a candidate.
func (e *ValidationError) Rejection(date string) models.Rejection {
	return models.Rejection{Date: date, Reason: e.Reason, Field: e.Field, Detail: e.Detail}
}

// ValidateDraw checks a candidate against the game's configuration. Checks
// run in order and short-circuit on the first failure:
//
//  1. date parses and is not in the future relative to now
//  2. main has the configured count, all distinct, each in [1, MainMax]
//  3. bonus in [1, BonusMax]
//
// A draw date falling outside the game's scheduled weekdays is advisory
// only: holiday make-up draws exist, so it is logged but not rejected.
func ValidateDraw(candidate models.Draw, gc config.GameConfig, now time.Time) *ValidationError {
	date, err := time.ParseInLocation(models.DateLayout, candidate.Date, now.Location())
	if err != nil {
		return &ValidationError{
			Reason: models.RejectBadDate,
			Field:  "date",
			Detail: fmt.Sprintf("unparseable date %q", candidate.Date),
		}
	}
	if date.After(now) {
		return &ValidationError{
			Reason: models.RejectBadDate,
			Field:  "date",
			Detail: fmt.Sprintf("draw date %s is in the future", candidate.Date),
		}
	}

	if len(candidate.Main) != gc.MainCount {
		return &ValidationError{
			Reason: models.RejectWrongCount,
			Field:  "main",
			Detail: fmt.Sprintf("expected %d numbers, got %d", gc.MainCount, len(candidate.Main)),
		}
	}
	seen := make(map[int]bool, gc.MainCount)
	for _, n := range candidate.Main {
		if seen[n] {
			return &ValidationError{
				Reason: models.RejectDuplicateNumber,
				Field:  "main",
				Detail: fmt.Sprintf("number %d appears twice", n),
			}
		}
		seen[n] = true
		if n < 1 || n > gc.MainMax {
			return &ValidationError{
				Reason: models.RejectOutOfRange,
				Field:  "main",
				Detail: fmt.Sprintf("number %d outside [1, %d]", n, gc.MainMax),
			}
		}
	}

	if candidate.Bonus < 1 || candidate.Bonus > gc.BonusMax {
		return &ValidationError{
			Reason: models.RejectBonusOutOfRange,
			Field:  "bonus",
			Detail: fmt.Sprintf("bonus %d outside [1, %d]", candidate.Bonus, gc.BonusMax),
		}
	}

	if !gc.DrawsOn(date.Weekday()) {
		slog.Warn("draw date off schedule, accepting anyway",
			"game", gc.Game, "date", candidate.Date, "weekday", date.Weekday().String())
	}

	return nil
}
