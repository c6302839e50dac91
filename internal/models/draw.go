package models

import (
	"time"
)

// DateLayout is the calendar-date format used throughout the ledgers.
const DateLayout = "2006-01-02"

// Draw represents one official lottery drawing result. A draw is immutable
// once merged into a ledger; corrections happen only through the explicit
// data-fix tooling, never through the refresh pipeline.
type Draw struct {
	Date  string `json:"date"` // YYYY-MM-DD, unique within a game
	Main  []int  `json:"main"` // five distinct numbers
	Bonus int    `json:"bonus"`
}

// ParseDate returns the draw date as a time.Time in the given location.
func (d Draw) ParseDate(loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(DateLayout, d.Date, loc)
}

// SameNumbers reports whether two draws carry an identical number set.
func (d Draw) SameNumbers(other Draw) bool {
	if d.Bonus != other.Bonus || len(d.Main) != len(other.Main) {
		return false
	}
	for i := range d.Main {
		if d.Main[i] != other.Main[i] {
			return false
		}
	}
	return true
}

// Jackpot is the point-in-time jackpot annotation for a game. Jackpot values
// are estimates, not historical facts: they are always overwritten, never
// deduplicated against history.
type Jackpot struct {
	Amount    string    `json:"amount"`              // display string, e.g. "$149M"
	CashValue int64     `json:"cashValue,omitempty"` // lump-sum estimate in dollars
	NextDraw  time.Time `json:"nextDraw,omitempty"`
	UpdatedAt time.Time `json:"updatedAt,omitempty"`
}

// Equal compares the annotation content, ignoring UpdatedAt.
func (j Jackpot) Equal(other Jackpot) bool {
	return j.Amount == other.Amount &&
		j.CashValue == other.CashValue &&
		j.NextDraw.Equal(other.NextDraw)
}

// Ledger is the durable per-game collection of draws plus jackpot metadata.
// Draws are kept most-recent-first; LastUpdated moves only when a merge
// inserts new draws or the jackpot annotation changes.
type Ledger struct {
	Game        Game      `json:"game"`
	Name        string    `json:"name"`
	Draws       []Draw    `json:"draws"`
	LastUpdated time.Time `json:"lastUpdated"`
	Jackpot     *Jackpot  `json:"jackpot,omitempty"`
}

// Latest returns the most recent draw, or nil when the ledger is empty.
func (l *Ledger) Latest() *Draw {
	if l == nil || len(l.Draws) == 0 {
		return nil
	}
	return &l.Draws[0]
}

// HasDate reports whether a draw with the given date already exists.
func (l *Ledger) HasDate(date string) bool {
	for _, d := range l.Draws {
		if d.Date == date {
			return true
		}
	}
	return false
}
