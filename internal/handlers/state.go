package handlers

import (
	"log"
	"net/http"

	"github.com/dhbrrjudrvrjdhfv/ClickerCat/internal/services"
	"github.com/dhbrrjudrvrjdhfv/ClickerCat/internal/ws"

	"github.com/gin-gonic/gin"
)

type StateHandler struct {
	snapshots *services.SnapshotService
}

func NewStateHandler(snapshots *services.SnapshotService) *StateHandler {
	return &StateHandler{snapshots: snapshots}
}

// GetState godoc
// @Summary      Current game snapshot with the caller's personalized view
// @Tags         game
// @Produce      json
// @Success      200 {object} ws.Payload
// @Router       /api/state [get]
func (h *StateHandler) GetState(c *gin.Context) {
	pid := playerID(c)

	shared, views, err := h.snapshots.Snapshot(c.Request.Context(), []string{pid})
	if err != nil {
		log.Printf("state: snapshot failed: %v", err)
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "storage unavailable, try again"})
		return
	}

	c.JSON(http.StatusOK, ws.Payload{Snapshot: *shared, Player: views[pid]})
}
