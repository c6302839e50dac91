package sources

import (
	"context"
	"errors"
	"testing"

	"github.com/lottotrack/lottery-tracker-backend/internal/config"
)

// fakeGetter serves a canned body or error regardless of URL.
type fakeGetter struct {
	body []byte
	err  error
}

func (g *fakeGetter) Get(ctx context.Context, url string) ([]byte, error) {
	return g.body, g.err
}

const ctFeed = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <title>CT Lottery Winning Numbers</title>
    <item>
      <title>Lucky For Life - 01/08/2026</title>
      <description>11-4-27-19-42 LB-7</description>
    </item>
    <item>
      <title>Lucky For Life Double Play - 01/08/2026</title>
      <description>2-9-15-31-44 LB-3</description>
    </item>
    <item>
      <title>Powerball - 01/07/2026</title>
      <description>2-16-30-51-64 PB-12</description>
    </item>
  </channel>
</rss>`

func luckyRSSConfig() config.SourceConfig {
	return config.SourceConfig{
		Kind:       config.SourceCTRSS,
		URL:        "https://example.test/rss",
		Keyword:    "lucky for life",
		BonusLabel: "LB",
	}
}

func TestCTRSSFetch(t *testing.T) {
	src := NewCTRSSSource(luckyRSSConfig(), &fakeGetter{body: []byte(ctFeed)})

	draws, err := src.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(draws) != 1 {
		t.Fatalf("expected 1 draw (Double Play and other games skipped), got %d", len(draws))
	}

	d := draws[0]
	if d.Date != "2026-01-08" {
		t.Errorf("date: got %s", d.Date)
	}
	want := []int{4, 11, 19, 27, 42}
	for i, n := range want {
		if d.Main[i] != n {
			t.Fatalf("main numbers not sorted: got %v", d.Main)
		}
	}
	if d.Bonus != 7 {
		t.Errorf("bonus: got %d", d.Bonus)
	}
}

func TestCTRSSFetchSelectsByBonusLabel(t *testing.T) {
	cfg := config.SourceConfig{
		Kind:       config.SourceCTRSS,
		URL:        "https://example.test/rss",
		Keyword:    "powerball",
		BonusLabel: "PB",
	}
	src := NewCTRSSSource(cfg, &fakeGetter{body: []byte(ctFeed)})

	draws, err := src.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(draws) != 1 || draws[0].Bonus != 12 || draws[0].Date != "2026-01-07" {
		t.Fatalf("unexpected draws: %+v", draws)
	}
}

func TestCTRSSFetchErrors(t *testing.T) {
	t.Run("network failure", func(t *testing.T) {
		src := NewCTRSSSource(luckyRSSConfig(), &fakeGetter{err: errors.New("dial tcp: timeout")})
		if _, err := src.Fetch(context.Background()); !errors.Is(err, ErrSourceUnavailable) {
			t.Fatalf("expected ErrSourceUnavailable, got %v", err)
		}
	})

	t.Run("not xml", func(t *testing.T) {
		src := NewCTRSSSource(luckyRSSConfig(), &fakeGetter{body: []byte("<html>maintenance</html")})
		if _, err := src.Fetch(context.Background()); !errors.Is(err, ErrSourceFormatChanged) {
			t.Fatalf("expected ErrSourceFormatChanged, got %v", err)
		}
	})

	t.Run("game missing from feed", func(t *testing.T) {
		cfg := luckyRSSConfig()
		cfg.Keyword = "lotto america"
		src := NewCTRSSSource(cfg, &fakeGetter{body: []byte(ctFeed)})
		if _, err := src.Fetch(context.Background()); !errors.Is(err, ErrSourceFormatChanged) {
			t.Fatalf("expected ErrSourceFormatChanged, got %v", err)
		}
	})
}
