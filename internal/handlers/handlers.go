package handlers

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/nass931808/EcoRide/internal/apperrors"
)

// respondError renders a domain error. Internal failures are logged with
// detail server-side and surface as a generic message.
func respondError(c *gin.Context, err error) {
	status := apperrors.StatusOf(err)
	if status == 500 {
		slog.Error("internal error", "method", c.Request.Method, "path", c.FullPath(), "error", err)
		c.JSON(500, gin.H{"erreur": "Erreur serveur"})
		return
	}
	c.JSON(status, gin.H{"erreur": err.Error()})
}
