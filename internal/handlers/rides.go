package handlers

import (
	"encoding/json"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nass931808/EcoRide/internal/catalog"
	"github.com/nass931808/EcoRide/internal/models"
	"github.com/nass931808/EcoRide/internal/trips"
)

// ListRides handles the public ride search with optional filters.
func ListRides(cat *catalog.Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		filters := catalog.Filters{
			Origin:      c.Query("lieu_depart"),
			Destination: c.Query("lieu_arrivee"),
			Date:        c.Query("date_depart"),
			Energy:      c.Query("energie"),
		}

		if raw := c.Query("prix_max"); raw != "" {
			price, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				c.JSON(400, gin.H{"erreur": "prix_max invalide"})
				return
			}
			filters.MaxPrice = &price
		}
		if raw := c.Query("note_min"); raw != "" {
			rating, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				c.JSON(400, gin.H{"erreur": "note_min invalide"})
				return
			}
			filters.MinRating = &rating
		}

		rides, err := cat.ListRides(filters)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(200, rides)
	}
}

// RideDetail handles the public single-ride projection.
func RideDetail(cat *catalog.Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.Query("covoiturage_id")
		if raw == "" {
			c.JSON(400, gin.H{"erreur": "covoiturage_id requis"})
			return
		}
		rideID, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			c.JSON(400, gin.H{"erreur": "covoiturage_id invalide"})
			return
		}

		detail, err := cat.RideDetail(uint(rideID))
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(200, detail)
	}
}

type createRideInput struct {
	VehicleID     uint            `json:"vehicule_id"`
	DepartureDate string          `json:"date_depart"`
	DepartureTime string          `json:"heure_depart"`
	Origin        string          `json:"lieu_depart"`
	Destination   string          `json:"lieu_arrivee"`
	ArrivalDate   string          `json:"date_arrivee"`
	ArrivalTime   string          `json:"heure_arrivee"`
	SeatCount     int             `json:"nb_place"`
	PricePerSeat  float64         `json:"prix_personne"`
	Description   string          `json:"description"`
	Preferences   json.RawMessage `json:"preferences"`
}

func combineDateTime(date, hour string) (time.Time, error) {
	if hour == "" {
		return time.Parse("2006-01-02", date)
	}
	return time.Parse("2006-01-02 15:04", date+" "+hour)
}

// CreateRide publishes a ride offered by the acting user as driver.
func CreateRide(svc *trips.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("userId")

		var input createRideInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"erreur": err.Error()})
			return
		}

		if input.VehicleID == 0 || input.DepartureDate == "" || input.Origin == "" ||
			input.Destination == "" || input.SeatCount == 0 || input.PricePerSeat == 0 {
			c.JSON(400, gin.H{"erreur": "Champs obligatoires manquants"})
			return
		}

		departure, err := combineDateTime(input.DepartureDate, input.DepartureTime)
		if err != nil {
			c.JSON(400, gin.H{"erreur": "date_depart invalide"})
			return
		}

		var arrival *time.Time
		if input.ArrivalDate != "" {
			t, err := combineDateTime(input.ArrivalDate, input.ArrivalTime)
			if err != nil {
				c.JSON(400, gin.H{"erreur": "date_arrivee invalide"})
				return
			}
			arrival = &t
		}

		prefs, err := models.ParsePreferences(input.Preferences)
		if err != nil {
			c.JSON(400, gin.H{"erreur": "preferences invalides"})
			return
		}

		ride, err := svc.PublishRide(userID, trips.PublishInput{
			VehicleID:    input.VehicleID,
			Origin:       input.Origin,
			Destination:  input.Destination,
			Departure:    departure,
			Arrival:      arrival,
			SeatCount:    input.SeatCount,
			PricePerSeat: input.PricePerSeat,
			Description:  input.Description,
			Preferences:  prefs,
		})
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(200, gin.H{
			"message":        "Covoiturage créé avec succès",
			"covoiturage_id": ride.ID,
		})
	}
}
