package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/lottotrack/lottery-tracker-backend/internal/config"
	"github.com/lottotrack/lottery-tracker-backend/internal/models"
)

// JackpotFetcher retrieves current jackpot estimates. Jackpots are scraped
// opportunistically with a fallback URL per game; a failure here never
// affects draw processing.
type JackpotFetcher struct {
	client Getter
	now    func() time.Time
}

// NewJackpotFetcher creates a JackpotFetcher using the given HTTP getter.
func NewJackpotFetcher(client Getter) *JackpotFetcher {
	return &JackpotFetcher{client: client, now: time.Now}
}

var (
	millionsRe    = regexp.MustCompile(`(?i)\$(\d+(?:\.\d+)?)\s*(Million|Billion|M\b)`)
	prizeAmountRe = regexp.MustCompile(`(?i)\$(\d+(?:,\d+)*)\s*(?:Million|M\b)`)
)

// estimates is the shape of the powerball.com estimates API.
type estimates []struct {
	FieldPrizeAmount string `json:"field_prize_amount"`
}

// Fetch returns the current jackpot annotation for one game. Fixed-amount
// games are answered locally; the rest try the configured URL, then the
// fallback.
func (f *JackpotFetcher) Fetch(ctx context.Context, gc config.GameConfig, nextDraw time.Time) (*models.Jackpot, error) {
	if gc.Jackpot.Fixed {
		return &models.Jackpot{
			Amount:    gc.Jackpot.Amount,
			CashValue: gc.Jackpot.CashValue,
			NextDraw:  nextDraw,
			UpdatedAt: f.now(),
		}, nil
	}

	jp, err := f.scrape(ctx, gc, gc.Jackpot.URL, nextDraw)
	if err == nil {
		return jp, nil
	}
	if gc.Jackpot.FallbackURL == "" {
		return nil, err
	}
	return f.scrape(ctx, gc, gc.Jackpot.FallbackURL, nextDraw)
}

func (f *JackpotFetcher) scrape(ctx context.Context, gc config.GameConfig, url string, nextDraw time.Time) (*models.Jackpot, error) {
	raw, err := f.client.Get(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}

	// the powerball estimates endpoint is JSON; everything else is HTML
	if amount, ok := parseEstimatesJSON(raw); ok {
		return f.annotation(amount, nextDraw), nil
	}

	page := string(raw)
	if m := millionsRe.FindStringSubmatch(page); m != nil {
		amount, _ := strconv.ParseFloat(m[1], 64)
		if strings.EqualFold(m[2], "billion") {
			amount *= 1000
		}
		return f.annotation(amount, nextDraw), nil
	}
	if m := prizeAmountRe.FindStringSubmatch(page); m != nil {
		amount, _ := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", ""), 64)
		return f.annotation(amount, nextDraw), nil
	}

	return nil, fmt.Errorf("%w: no jackpot amount on page", ErrSourceFormatChanged)
}

func parseEstimatesJSON(raw []byte) (float64, bool) {
	var est estimates
	if err := json.Unmarshal(raw, &est); err != nil || len(est) == 0 {
		return 0, false
	}
	amount, err := strconv.ParseFloat(strings.ReplaceAll(est[0].FieldPrizeAmount, ",", ""), 64)
	if err != nil {
		return 0, false
	}
	return amount, true
}

func (f *JackpotFetcher) annotation(amountMillions float64, nextDraw time.Time) *models.Jackpot {
	display := fmt.Sprintf("$%dM", int(amountMillions))
	if amountMillions < 100 && amountMillions != float64(int(amountMillions)) {
		display = fmt.Sprintf("$%.2fM", amountMillions)
	}
	return &models.Jackpot{
		Amount: display,
		// lump-sum runs roughly 45% of the annuity estimate
		CashValue: int64(amountMillions * 450000),
		NextDraw:  nextDraw,
		UpdatedAt: f.now(),
	}
}
