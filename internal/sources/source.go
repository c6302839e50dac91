// Package sources contains one adapter per external feed format. Adapters
// locate the date and number fields inside their wire format and map them
// into candidate draws; they perform no semantic validation and never write
// to the store.
package sources

import (
	"context"
	"errors"
	"time"

	"github.com/lottotrack/lottery-tracker-backend/internal/config"
	"github.com/lottotrack/lottery-tracker-backend/internal/models"
)

var (
	// ErrSourceUnavailable marks network or timeout failures.
	ErrSourceUnavailable = errors.New("source unavailable")
	// ErrSourceFormatChanged marks payloads that arrived but no longer
	// match the expected shape. Schema drift must land here, not panic.
	ErrSourceFormatChanged = errors.New("source format changed")
)

// Getter fetches raw bytes from a URL. Satisfied by *fetch.Client.
type Getter interface {
	Get(ctx context.Context, url string) ([]byte, error)
}

// Source is implemented by each feed adapter. Fetch returns zero or more
// candidate draws, newest first where the feed defines an order.
type Source interface {
	Name() string
	Fetch(ctx context.Context) ([]models.Draw, error)
}

// lastScheduledDate walks back at most a week to the most recent scheduled
// draw weekday. Feeds that omit the draw date (Iowa, lotto.net) fall back to
// this.
func lastScheduledDate(gc config.GameConfig, now time.Time) string {
	for offset := 0; offset < 7; offset++ {
		check := now.AddDate(0, 0, -offset)
		if gc.DrawsOn(check.Weekday()) {
			return check.Format(models.DateLayout)
		}
	}
	return now.Format(models.DateLayout)
}
