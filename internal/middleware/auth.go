package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/nass931808/EcoRide/internal/services"
)

// SessionCookie is the name of the cookie carrying the signed session token.
const SessionCookie = "ecoride_session"

// AuthMiddleware resolves the acting user from the session cookie, falling
// back to a Bearer header for non-browser clients, and exposes the user id
// to handlers via the context. No identity, no entry.
func AuthMiddleware(sessions services.Sessions) gin.HandlerFunc {
	return func(c *gin.Context) {
		var token string

		if cookie, err := c.Cookie(SessionCookie); err == nil {
			token = cookie
		}

		if token == "" {
			authHeader := c.GetHeader("Authorization")
			parts := strings.Split(authHeader, " ")
			if len(parts) == 2 && parts[0] == "Bearer" {
				token = parts[1]
			}
		}

		if token == "" {
			c.JSON(401, gin.H{"erreur": "Non authentifié"})
			c.Abort()
			return
		}

		userID, err := sessions.UserID(c.Request.Context(), token)
		if err != nil {
			c.JSON(401, gin.H{"erreur": "Non authentifié"})
			c.Abort()
			return
		}

		c.Set("userId", userID)
		c.Next()
	}
}
