package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/dhbrrjudrvrjdhfv/ClickerCat/internal/services"

	"github.com/gin-gonic/gin"
)

type NicknameHandler struct {
	players *services.PlayerService
}

func NewNicknameHandler(players *services.PlayerService) *NicknameHandler {
	return &NicknameHandler{players: players}
}

type SetNicknameRequest struct {
	Nickname string `json:"nickname" binding:"required"`
}

// SetNickname godoc
// @Summary      Claim a unique nickname (one-shot, required for the leaderboard)
// @Tags         player
// @Accept       json
// @Produce      json
// @Param        request body SetNicknameRequest true "Nickname"
// @Success      200 {object} map[string]bool
// @Failure      400 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Router       /api/set-nickname [post]
func (h *NicknameHandler) SetNickname(c *gin.Context) {
	var req SetNicknameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	err := h.players.SetNickname(c.Request.Context(), playerID(c), req.Nickname)
	switch {
	case errors.Is(err, services.ErrNicknameLength), errors.Is(err, services.ErrNicknameSet):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	case errors.Is(err, services.ErrNicknameTaken):
		c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
	case err != nil:
		log.Printf("nickname: set failed: %v", err)
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "storage unavailable, try again"})
	default:
		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}

func (h *NicknameHandler) CheckNickname(c *gin.Context) {
	has, err := h.players.HasNickname(c.Request.Context(), playerID(c))
	if err != nil {
		log.Printf("nickname: check failed: %v", err)
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "storage unavailable, try again"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"hasNickname": has})
}

// Me returns the caller's lifetime stats.
func (h *NicknameHandler) Me(c *gin.Context) {
	player, err := h.players.GetOrCreate(c.Request.Context(), playerID(c))
	if err != nil {
		log.Printf("player: load failed: %v", err)
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "storage unavailable, try again"})
		return
	}
	c.JSON(http.StatusOK, player)
}
