package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/nass931808/EcoRide/internal/trips"
)

// History lists the acting user's past trips, as driver or passenger.
func History(svc *trips.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("userId")

		entries, err := svc.History(userID)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(200, entries)
	}
}
