package handlers

import (
	"github.com/dhbrrjudrvrjdhfv/ClickerCat/internal/middleware"

	"github.com/gin-gonic/gin"
)

type ErrorResponse struct {
	Error string `json:"error" example:"something went wrong"`
}

type MessageResponse struct {
	Message string `json:"message" example:"operation successful"`
}

func playerID(c *gin.Context) string {
	return c.GetString(middleware.PlayerIDKey)
}
