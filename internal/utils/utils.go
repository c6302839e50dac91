package utils

import (
	"strings"
	"time"

	"github.com/lottotrack/lottery-tracker-backend/internal/config"
)

// NextDrawTime returns the next scheduled draw time for a game, strictly
// after now. Games with an empty weekday list draw daily.
func NextDrawTime(gc config.GameConfig, now time.Time) time.Time {
	for offset := 0; offset <= 7; offset++ {
		day := now.AddDate(0, 0, offset)
		if !gc.DrawsOn(day.Weekday()) {
			continue
		}
		draw := time.Date(day.Year(), day.Month(), day.Day(), gc.DrawHour, gc.DrawMinute, 0, 0, now.Location())
		if draw.After(now) {
			return draw
		}
	}
	return now.AddDate(0, 0, 1)
}

// ParseWeekday converts a weekday name (case-insensitive) into a
// time.Weekday.
func ParseWeekday(dayStr string) (time.Weekday, bool) {
	switch strings.ToLower(dayStr) {
	case "sunday":
		return time.Sunday, true
	case "monday":
		return time.Monday, true
	case "tuesday":
		return time.Tuesday, true
	case "wednesday":
		return time.Wednesday, true
	case "thursday":
		return time.Thursday, true
	case "friday":
		return time.Friday, true
	case "saturday":
		return time.Saturday, true
	default:
		return 0, false
	}
}
