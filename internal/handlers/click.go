package handlers

import (
	"log"
	"net/http"

	"github.com/dhbrrjudrvrjdhfv/ClickerCat/internal/models"
	"github.com/dhbrrjudrvrjdhfv/ClickerCat/internal/services"
	"github.com/dhbrrjudrvrjdhfv/ClickerCat/internal/ws"

	"github.com/gin-gonic/gin"
)

type ClickHandler struct {
	clock   *services.ClockService
	limiter *services.RateLimitService
	ledger  *services.LedgerService
	hub     *ws.Hub
}

func NewClickHandler(clock *services.ClockService, limiter *services.RateLimitService, ledger *services.LedgerService, hub *ws.Hub) *ClickHandler {
	return &ClickHandler{clock: clock, limiter: limiter, ledger: ledger, hub: hub}
}

// Click godoc
// @Summary      Register a click for the current day
// @Tags         game
// @Produce      json
// @Success      200 {object} map[string]bool
// @Failure      429 {object} ErrorResponse
// @Router       /api/click [post]
func (h *ClickHandler) Click(c *gin.Context) {
	pid := playerID(c)
	ctx := c.Request.Context()

	state := h.clock.Read(ctx)
	switch state.Status {
	case models.GameStatusLost:
		c.JSON(http.StatusConflict, gin.H{"lost": true})
		return
	case models.GameStatusComplete:
		c.JSON(http.StatusConflict, gin.H{"complete": true})
		return
	}

	if !h.limiter.Admit(pid) {
		c.JSON(http.StatusTooManyRequests, ErrorResponse{Error: "Too fast!"})
		return
	}

	// Admission without a ledger entry must never look like success.
	if err := h.ledger.Append(ctx, pid, state.Day); err != nil {
		log.Printf("click: append failed: %v", err)
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "storage unavailable, try again"})
		return
	}

	h.hub.Kick()
	c.JSON(http.StatusOK, gin.H{"success": true})
}
