package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/lottotrack/lottery-tracker-backend/internal/models"
	"github.com/lottotrack/lottery-tracker-backend/internal/repositories"
)

// stubRepo serves fixed ledgers, optionally failing for specific games.
type stubRepo struct {
	ledgers map[models.Game]*models.Ledger
	fail    map[models.Game]error
}

func (s *stubRepo) History(ctx context.Context, game models.Game) (*models.Ledger, error) {
	if err := s.fail[game]; err != nil {
		return nil, err
	}
	if l, ok := s.ledgers[game]; ok {
		return l, nil
	}
	return &models.Ledger{Game: game, Draws: []models.Draw{}}, nil
}

func (s *stubRepo) Latest(ctx context.Context, game models.Game) (*models.Draw, error) {
	l, err := s.History(ctx, game)
	if err != nil {
		return nil, err
	}
	return l.Latest(), nil
}

func (s *stubRepo) Merge(ctx context.Context, game models.Game, draws []models.Draw) (int, error) {
	return 0, nil
}

func (s *stubRepo) SetJackpot(ctx context.Context, game models.Game, jackpot *models.Jackpot) error {
	return nil
}

func (s *stubRepo) RemoveDraws(ctx context.Context, game models.Game, remove func(models.Draw) bool) (int, error) {
	return 0, nil
}

var _ repositories.LedgerRepository = (*stubRepo)(nil)

func newTestRouter(repo repositories.LedgerRepository) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewDrawHandler(repo)
	r := gin.New()
	r.GET("/draws/latest", h.GetLatest)
	r.GET("/draws/history/:game", h.GetHistory)
	return r
}

func TestGetLatest(t *testing.T) {
	repo := &stubRepo{
		ledgers: map[models.Game]*models.Ledger{
			models.GamePowerball: {
				Game: models.GamePowerball,
				Name: "Powerball",
				Draws: []models.Draw{
					{Date: "2026-01-07", Main: []int{2, 16, 30, 51, 64}, Bonus: 12},
				},
				LastUpdated: time.Date(2026, 1, 7, 22, 15, 0, 0, time.UTC),
				Jackpot:     &models.Jackpot{Amount: "$149M"},
			},
		},
	}
	router := newTestRouter(repo)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/draws/latest", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status %d: %s", w.Code, w.Body.String())
	}
	var body map[string]json.RawMessage
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	for _, game := range models.AllGames {
		if _, ok := body[string(game)]; !ok {
			t.Errorf("response missing game %s", game)
		}
	}
	if _, ok := body["lastUpdated"]; !ok {
		t.Error("response missing overall lastUpdated")
	}

	var pb struct {
		Name    string       `json:"name"`
		Latest  *models.Draw `json:"latest"`
		Jackpot *struct {
			Amount string `json:"amount"`
		} `json:"jackpot"`
	}
	if err := json.Unmarshal(body["PB"], &pb); err != nil {
		t.Fatalf("decode PB block: %v", err)
	}
	if pb.Latest == nil || pb.Latest.Date != "2026-01-07" {
		t.Errorf("PB latest: %+v", pb.Latest)
	}
	if pb.Jackpot == nil || pb.Jackpot.Amount != "$149M" {
		t.Errorf("PB jackpot: %+v", pb.Jackpot)
	}
}

func TestGetLatestServesReadableGamesOnPartialFailure(t *testing.T) {
	repo := &stubRepo{
		ledgers: map[models.Game]*models.Ledger{
			models.GamePowerball: {
				Game: models.GamePowerball,
				Name: "Powerball",
				Draws: []models.Draw{
					{Date: "2026-01-07", Main: []int{2, 16, 30, 51, 64}, Bonus: 12},
				},
			},
		},
		fail: map[models.Game]error{models.GameLuckyForLife: repositories.ErrStoreUnavailable},
	}
	router := newTestRouter(repo)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/draws/latest", nil))

	// one bad ledger must not take down the other games' last merged state
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var body map[string]json.RawMessage
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}

	var l4l struct {
		Error  string       `json:"error"`
		Latest *models.Draw `json:"latest"`
	}
	if err := json.Unmarshal(body["L4L"], &l4l); err != nil {
		t.Fatalf("decode L4L block: %v", err)
	}
	if l4l.Error == "" || l4l.Latest != nil {
		t.Errorf("unreadable game not marked: %+v", l4l)
	}

	var pb struct {
		Error  string       `json:"error"`
		Latest *models.Draw `json:"latest"`
	}
	if err := json.Unmarshal(body["PB"], &pb); err != nil {
		t.Fatalf("decode PB block: %v", err)
	}
	if pb.Error != "" || pb.Latest == nil || pb.Latest.Date != "2026-01-07" {
		t.Errorf("readable game not served: %+v", pb)
	}
}

func TestGetLatestAllGamesUnreadable(t *testing.T) {
	fail := make(map[models.Game]error, len(models.AllGames))
	for _, game := range models.AllGames {
		fail[game] = repositories.ErrStoreUnavailable
	}
	router := newTestRouter(&stubRepo{fail: fail})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/draws/latest", nil))

	// with nothing readable a bad store answers 503, never an empty result set
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d: %s", w.Code, w.Body.String())
	}
}

func TestGetHistory(t *testing.T) {
	repo := &stubRepo{
		ledgers: map[models.Game]*models.Ledger{
			models.GameMegaMillions: {
				Game: models.GameMegaMillions,
				Name: "Mega Millions",
				Draws: []models.Draw{
					{Date: "2026-01-06", Main: []int{5, 10, 22, 47, 70}, Bonus: 14},
					{Date: "2026-01-02", Main: []int{3, 18, 29, 33, 68}, Bonus: 9},
				},
			},
		},
	}
	router := newTestRouter(repo)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/draws/history/MM", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status %d: %s", w.Code, w.Body.String())
	}
	var ledger models.Ledger
	if err := json.Unmarshal(w.Body.Bytes(), &ledger); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(ledger.Draws) != 2 || ledger.Draws[0].Date != "2026-01-06" {
		t.Errorf("history: %+v", ledger.Draws)
	}
}

func TestGetHistoryUnknownGame(t *testing.T) {
	router := newTestRouter(&stubRepo{})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/draws/history/bingo", nil))

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestGetHistoryStoreUnavailable(t *testing.T) {
	repo := &stubRepo{
		fail: map[models.Game]error{models.GamePowerball: repositories.ErrStoreUnavailable},
	}
	router := newTestRouter(repo)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/draws/history/PB", nil))

	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", w.Code)
	}
}
