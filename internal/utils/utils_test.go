package utils

import (
	"testing"
	"time"

	"github.com/lottotrack/lottery-tracker-backend/internal/config"
)

func TestNextDrawTime(t *testing.T) {
	mws := config.GameConfig{
		DrawDays:   []time.Weekday{time.Monday, time.Wednesday, time.Saturday},
		DrawHour:   21,
		DrawMinute: 59,
	}
	daily := config.GameConfig{DrawHour: 21, DrawMinute: 38}

	cases := []struct {
		name string
		gc   config.GameConfig
		now  time.Time
		want time.Time
	}{
		{
			"before today's draw",
			mws,
			time.Date(2026, 1, 7, 12, 0, 0, 0, time.Local), // Wednesday noon
			time.Date(2026, 1, 7, 21, 59, 0, 0, time.Local),
		},
		{
			"after today's draw rolls forward",
			mws,
			time.Date(2026, 1, 7, 22, 30, 0, 0, time.Local),
			time.Date(2026, 1, 10, 21, 59, 0, 0, time.Local), // Saturday
		},
		{
			"off day skips to next scheduled",
			mws,
			time.Date(2026, 1, 8, 9, 0, 0, 0, time.Local), // Thursday
			time.Date(2026, 1, 10, 21, 59, 0, 0, time.Local),
		},
		{
			"daily game draws tomorrow after tonight's draw",
			daily,
			time.Date(2026, 1, 7, 21, 38, 0, 0, time.Local), // exactly draw time
			time.Date(2026, 1, 8, 21, 38, 0, 0, time.Local),
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := NextDrawTime(tc.gc, tc.now)
			if !got.Equal(tc.want) {
				t.Errorf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestParseWeekday(t *testing.T) {
	if day, ok := ParseWeekday("Wednesday"); !ok || day != time.Wednesday {
		t.Errorf("Wednesday: got %v, %v", day, ok)
	}
	if day, ok := ParseWeekday("saturday"); !ok || day != time.Saturday {
		t.Errorf("saturday: got %v, %v", day, ok)
	}
	if _, ok := ParseWeekday("someday"); ok {
		t.Error("expected failure for unknown weekday")
	}
}
