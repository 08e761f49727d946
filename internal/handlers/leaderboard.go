package handlers

import (
	"log"
	"net/http"

	"github.com/dhbrrjudrvrjdhfv/ClickerCat/internal/services"

	"github.com/gin-gonic/gin"
)

type LeaderboardHandler struct {
	snapshots *services.SnapshotService
}

func NewLeaderboardHandler(snapshots *services.SnapshotService) *LeaderboardHandler {
	return &LeaderboardHandler{snapshots: snapshots}
}

// GetLeaderboard godoc
// @Summary      Today's top 100 plus the caller's own standing
// @Tags         game
// @Produce      json
// @Router       /api/leaderboard [get]
func (h *LeaderboardHandler) GetLeaderboard(c *gin.Context) {
	pid := playerID(c)

	shared, views, err := h.snapshots.Snapshot(c.Request.Context(), []string{pid})
	if err != nil {
		log.Printf("leaderboard: snapshot failed: %v", err)
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "storage unavailable, try again"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"leaderboard": shared.Leaderboard,
		"player":      views[pid],
	})
}
