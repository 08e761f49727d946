package handlers

import (
	"log"
	"net/http"

	"github.com/dhbrrjudrvrjdhfv/ClickerCat/internal/services"
	"github.com/dhbrrjudrvrjdhfv/ClickerCat/internal/ws"

	"github.com/gin-gonic/gin"
)

type DayHandler struct {
	cycle *services.DayCycleService
	hub   *ws.Hub
}

func NewDayHandler(cycle *services.DayCycleService, hub *ws.Hub) *DayHandler {
	return &DayHandler{cycle: cycle, hub: hub}
}

// DayEnd godoc
// @Summary      Apply the day-end rule now
// @Description  Win advances to the next (lower) day; loss is terminal until reset.
// @Tags         game
// @Produce      json
// @Success      200 {object} map[string]interface{}
// @Router       /api/day-end [post]
func (h *DayHandler) DayEnd(c *gin.Context) {
	outcome, err := h.cycle.Evaluate(c.Request.Context())
	if err != nil {
		log.Printf("daycycle: manual trigger failed: %v", err)
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "storage unavailable, try again"})
		return
	}

	h.hub.Kick()

	switch {
	case outcome.Lost:
		c.JSON(http.StatusOK, gin.H{"lost": true})
	case outcome.Complete:
		c.JSON(http.StatusOK, gin.H{"success": true, "complete": true, "newDay": outcome.NewDay})
	default:
		c.JSON(http.StatusOK, gin.H{"success": true, "newDay": outcome.NewDay})
	}
}
