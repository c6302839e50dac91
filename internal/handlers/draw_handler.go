package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/lottotrack/lottery-tracker-backend/internal/models"
	"github.com/lottotrack/lottery-tracker-backend/internal/repositories"
)

// DrawHandler serves draw history and latest-result queries. Reads always
// reflect the last successfully merged state: a failed refresh run is never
// surfaced to the viewer.
type DrawHandler struct {
	ledgerRepo repositories.LedgerRepository
}

// NewDrawHandler creates a new DrawHandler.
func NewDrawHandler(ledgerRepo repositories.LedgerRepository) *DrawHandler {
	return &DrawHandler{ledgerRepo: ledgerRepo}
}

// gameSummary is the per-game block of the latest-results response. Error is
// set instead of the data fields when that game's ledger cannot be read.
type gameSummary struct {
	Name        string          `json:"name,omitempty"`
	Latest      *models.Draw    `json:"latest,omitempty"`
	Jackpot     *models.Jackpot `json:"jackpot,omitempty"`
	LastUpdated time.Time       `json:"lastUpdated,omitempty"`
	Error       string          `json:"error,omitempty"`
}

// GetLatest handles GET /draws/latest: latest draw and jackpot for all games
// plus an overall timestamp. Games are served independently: a game whose
// ledger cannot be read is marked with an error while the others still carry
// their last merged state. 503 only when no ledger is readable; store
// trouble never renders as an empty history.
func (h *DrawHandler) GetLatest(c *gin.Context) {
	result := make(map[string]any, len(models.AllGames)+2)
	var newest time.Time
	unreadable := 0

	for _, game := range models.AllGames {
		ledger, err := h.ledgerRepo.History(c.Request.Context(), game)
		if err != nil {
			result[string(game)] = gameSummary{Error: "results temporarily unavailable"}
			unreadable++
			continue
		}
		result[string(game)] = gameSummary{
			Name:        ledger.Name,
			Latest:      ledger.Latest(),
			Jackpot:     ledger.Jackpot,
			LastUpdated: ledger.LastUpdated,
		}
		if ledger.LastUpdated.After(newest) {
			newest = ledger.LastUpdated
		}
	}

	if unreadable == len(models.AllGames) {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "results temporarily unavailable"})
		return
	}

	result["lastUpdated"] = newest
	result["timestamp"] = time.Now()
	c.JSON(http.StatusOK, result)
}

// GetHistory handles GET /draws/history/:game. Returns the full ledger for
// one game, draws most recent first.
func (h *DrawHandler) GetHistory(c *gin.Context) {
	game, err := models.ParseGame(c.Param("game"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown game"})
		return
	}

	ledger, err := h.ledgerRepo.History(c.Request.Context(), game)
	if err != nil {
		if errors.Is(err, repositories.ErrStoreUnavailable) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "results temporarily unavailable"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load history"})
		return
	}
	c.JSON(http.StatusOK, ledger)
}
