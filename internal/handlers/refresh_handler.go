package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lottotrack/lottery-tracker-backend/internal/services"
)

// RefreshHandler exposes the on-demand refresh trigger.
type RefreshHandler struct {
	scheduler *services.Scheduler
}

// NewRefreshHandler creates a new RefreshHandler.
func NewRefreshHandler(scheduler *services.Scheduler) *RefreshHandler {
	return &RefreshHandler{scheduler: scheduler}
}

// TriggerRefresh handles POST /refresh. Runs one refresh synchronously and
// returns the per-game report. A trigger arriving mid-run is coalesced and
// answered with 409 rather than queued.
func (h *RefreshHandler) TriggerRefresh(c *gin.Context) {
	report, err := h.scheduler.TriggerNow(c.Request.Context())
	if err != nil {
		if errors.Is(err, services.ErrRunInProgress) {
			c.JSON(http.StatusConflict, gin.H{"error": "refresh already in progress"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "refresh failed to start"})
		return
	}
	c.JSON(http.StatusOK, report)
}
