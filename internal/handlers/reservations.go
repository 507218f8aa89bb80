package handlers

import (
	"context"
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/nass931808/EcoRide/internal/ledger"
	"github.com/nass931808/EcoRide/internal/models"
	"github.com/nass931808/EcoRide/internal/services"
)

type createReservationInput struct {
	RideID uint `json:"covoiturage_id"`
	Seats  int  `json:"nb_places"`
}

type reservationRef struct {
	RideID uint `json:"covoiturage_id"`
}

// CreateReservation places a pending hold on seats of a ride.
func CreateReservation(l *ledger.Ledger) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("userId")

		var input createReservationInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"erreur": err.Error()})
			return
		}
		if input.RideID == 0 || input.Seats == 0 {
			c.JSON(400, gin.H{"erreur": "covoiturage_id et nb_places requis"})
			return
		}

		quote, err := l.CreateReservation(input.RideID, userID, input.Seats)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(200, gin.H{
			"message":        "Réservation créée",
			"reservation_id": quote.Reservation.ID,
			"prix_total":     quote.TotalPrice,
			"statut":         quote.Reservation.Status,
		})
	}
}

// ConfirmReservation moves the caller's pending hold to confirmed, consuming
// capacity. The status change is published for interested consumers.
func ConfirmReservation(l *ledger.Ledger, events services.Events) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("userId")

		var input reservationRef
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"erreur": err.Error()})
			return
		}
		if input.RideID == 0 {
			c.JSON(400, gin.H{"erreur": "covoiturage_id requis"})
			return
		}

		if err := l.ConfirmReservation(input.RideID, userID); err != nil {
			respondError(c, err)
			return
		}

		if events != nil {
			go func(rideID, passengerID uint) {
				status := string(models.ReservationStatusConfirmed)
				if err := events.ReservationUpdated(context.Background(), rideID, passengerID, status); err != nil {
					slog.Warn("failed to publish reservation update", "rideId", rideID, "error", err)
				}
			}(input.RideID, userID)
		}

		c.JSON(200, gin.H{"message": "Réservation confirmée"})
	}
}

// CancelReservation cancels the caller's reservation on a ride.
func CancelReservation(l *ledger.Ledger, events services.Events) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("userId")

		var input reservationRef
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"erreur": err.Error()})
			return
		}
		if input.RideID == 0 {
			c.JSON(400, gin.H{"erreur": "covoiturage_id requis"})
			return
		}

		if err := l.CancelReservation(input.RideID, userID); err != nil {
			respondError(c, err)
			return
		}

		if events != nil {
			go func(rideID, passengerID uint) {
				status := string(models.ReservationStatusCancelled)
				if err := events.ReservationUpdated(context.Background(), rideID, passengerID, status); err != nil {
					slog.Warn("failed to publish reservation update", "rideId", rideID, "error", err)
				}
			}(input.RideID, userID)
		}

		c.JSON(200, gin.H{"message": "Réservation annulée"})
	}
}
