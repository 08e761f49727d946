package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// PlayerCookie carries the opaque long-lived participant token.
	PlayerCookie = "player_id"

	// PlayerIDKey is the gin context key handlers read the token from.
	PlayerIDKey = "player_id"

	cookieMaxAge = 10 * 365 * 24 * 60 * 60
)

// Identity issues a participant token on first contact and makes it available
// to every handler. A malformed cookie is replaced rather than rejected.
func Identity() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := c.Cookie(PlayerCookie)
		if err != nil || uuid.Validate(id) != nil {
			id = uuid.NewString()
			c.SetSameSite(http.SameSiteNoneMode)
			c.SetCookie(PlayerCookie, id, cookieMaxAge, "/", "", true, true)
		}
		c.Set(PlayerIDKey, id)
		c.Next()
	}
}
