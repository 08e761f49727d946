package handlers

import (
	"log"
	"net/http"

	"github.com/dhbrrjudrvrjdhfv/ClickerCat/internal/services"
	"github.com/dhbrrjudrvrjdhfv/ClickerCat/internal/ws"

	"github.com/gin-gonic/gin"
)

// AdminHandler exposes the accelerated-testing shortcuts. The shortcuts only
// perturb the day start; the periodic evaluation performs the actual
// transition, which leaves in-flight clicks a grace window.
type AdminHandler struct {
	admin   *services.AdminService
	clock   *services.ClockService
	cycle   *services.DayCycleService
	ledger  *services.LedgerService
	players *services.PlayerService
	limiter *services.RateLimitService
	hub     *ws.Hub
}

func NewAdminHandler(admin *services.AdminService, clock *services.ClockService, cycle *services.DayCycleService,
	ledger *services.LedgerService, players *services.PlayerService, limiter *services.RateLimitService, hub *ws.Hub) *AdminHandler {
	return &AdminHandler{admin: admin, clock: clock, cycle: cycle, ledger: ledger, players: players, limiter: limiter, hub: hub}
}

type AdminLoginRequest struct {
	Password string `json:"password" binding:"required"`
}

func (h *AdminHandler) Login(c *gin.Context) {
	var req AdminLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	token, err := h.admin.Login(req.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token})
}

// ForceMidnight leaves three seconds on the clock.
func (h *AdminHandler) ForceMidnight(c *gin.Context) {
	h.forceNear(c, 3)
}

// SkipDay leaves one second on the clock; the next poll evaluates the day.
func (h *AdminHandler) SkipDay(c *gin.Context) {
	h.forceNear(c, 1)
}

func (h *AdminHandler) forceNear(c *gin.Context, secondsLeft int) {
	if err := h.clock.ForceNear(c.Request.Context(), secondsLeft); err != nil {
		log.Printf("admin: force near failed: %v", err)
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "storage unavailable, try again"})
		return
	}
	h.hub.Kick()
	c.JSON(http.StatusOK, gin.H{"success": true, "secondsLeft": secondsLeft})
}

// Reset reinitializes the day cycle, clears the ledger and zeroes per-run
// stats. This is the only way out of the loss state.
func (h *AdminHandler) Reset(c *gin.Context) {
	ctx := c.Request.Context()

	if err := h.ledger.Truncate(ctx); err != nil {
		log.Printf("admin: ledger truncate failed: %v", err)
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "storage unavailable, try again"})
		return
	}
	if err := h.players.ResetStats(ctx); err != nil {
		log.Printf("admin: stats reset failed: %v", err)
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "storage unavailable, try again"})
		return
	}
	if err := h.clock.Reset(ctx); err != nil {
		log.Printf("admin: clock reset failed: %v", err)
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "storage unavailable, try again"})
		return
	}

	h.limiter.Reset()
	h.cycle.Resume()
	h.hub.Kick()

	log.Println("admin: game reset")
	c.JSON(http.StatusOK, gin.H{"success": true})
}
