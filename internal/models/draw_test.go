package models

import (
	"testing"
	"time"
)

func TestGameParsing(t *testing.T) {
	for _, game := range AllGames {
		parsed, err := ParseGame(string(game))
		if err != nil {
			t.Errorf("ParseGame(%s): %v", game, err)
		}
		if parsed != game {
			t.Errorf("ParseGame(%s) = %s", game, parsed)
		}
	}
	if _, err := ParseGame("XYZ"); err == nil {
		t.Error("expected error for unknown game code")
	}
}

func TestLedgerLatestAndHasDate(t *testing.T) {
	var empty *Ledger
	if empty.Latest() != nil {
		t.Error("nil ledger must report no latest draw")
	}

	l := &Ledger{
		Game: GamePowerball,
		Draws: []Draw{
			{Date: "2026-01-07", Main: []int{2, 16, 30, 51, 64}, Bonus: 12},
			{Date: "2026-01-05", Main: []int{7, 23, 24, 56, 60}, Bonus: 18},
		},
	}
	if latest := l.Latest(); latest == nil || latest.Date != "2026-01-07" {
		t.Errorf("Latest: %+v", latest)
	}
	if !l.HasDate("2026-01-05") {
		t.Error("HasDate missed an existing date")
	}
	if l.HasDate("2026-01-06") {
		t.Error("HasDate reported a date not in the ledger")
	}
}

func TestDrawSameNumbers(t *testing.T) {
	a := Draw{Date: "2026-01-07", Main: []int{2, 16, 30, 51, 64}, Bonus: 12}
	b := Draw{Date: "2026-01-08", Main: []int{2, 16, 30, 51, 64}, Bonus: 12}
	if !a.SameNumbers(b) {
		t.Error("identical number sets must match regardless of date")
	}
	b.Bonus = 13
	if a.SameNumbers(b) {
		t.Error("differing bonus must not match")
	}
}

func TestJackpotEqualIgnoresUpdatedAt(t *testing.T) {
	next := time.Date(2026, 1, 12, 21, 59, 0, 0, time.Local)
	a := Jackpot{Amount: "$149M", CashValue: 69900000, NextDraw: next, UpdatedAt: time.Now()}
	b := Jackpot{Amount: "$149M", CashValue: 69900000, NextDraw: next, UpdatedAt: time.Now().Add(time.Hour)}
	if !a.Equal(b) {
		t.Error("UpdatedAt must not affect equality")
	}
	b.Amount = "$162M"
	if a.Equal(b) {
		t.Error("differing amount must not be equal")
	}
}
