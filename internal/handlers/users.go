package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/nass931808/EcoRide/internal/apperrors"
	"github.com/nass931808/EcoRide/internal/models"
)

// GetProfile returns the acting user's profile.
func GetProfile(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("userId")

		var user models.User
		if err := db.First(&user, userID).Error; err != nil {
			respondError(c, apperrors.ErrUserNotFound)
			return
		}

		c.JSON(200, gin.H{
			"utilisateur_id": user.ID,
			"pseudo":         user.Pseudo,
			"nom":            user.LastName,
			"prenom":         user.FirstName,
			"email":          user.Email,
			"telephone":      user.Phone,
			"adresse":        user.Address,
			"note_moyenne":   user.MeanRating,
		})
	}
}

// GetVehicles lists the acting user's vehicles.
func GetVehicles(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("userId")

		var vehicles []models.Vehicle
		if err := db.Where("owner_id = ?", userID).Find(&vehicles).Error; err != nil {
			respondError(c, err)
			return
		}

		out := make([]gin.H, 0, len(vehicles))
		for _, v := range vehicles {
			out = append(out, gin.H{
				"vehicule_id":     v.ID,
				"marque_libelle":  v.Brand,
				"modele":          v.ModelName,
				"couleur":         v.Color,
				"energie":         v.Energy,
				"immatriculation": v.Plate,
				"nb_place":        v.Seats,
			})
		}

		c.JSON(200, out)
	}
}

type createVehicleInput struct {
	Brand     string `json:"marque"`
	ModelName string `json:"modele"`
	Color     string `json:"couleur"`
	Energy    string `json:"energie"`
	Plate     string `json:"immatriculation"`
	Seats     int    `json:"nb_place"`
}

// CreateVehicle registers a vehicle for the acting user.
func CreateVehicle(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("userId")

		var input createVehicleInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"erreur": err.Error()})
			return
		}
		if input.ModelName == "" || input.Energy == "" || input.Plate == "" || input.Seats == 0 {
			c.JSON(400, gin.H{"erreur": "Champs obligatoires manquants"})
			return
		}
		if input.Seats < 1 {
			c.JSON(400, gin.H{"erreur": "nb_place doit être au moins 1"})
			return
		}
		if !models.ValidEnergy(input.Energy) {
			c.JSON(400, gin.H{"erreur": "energie invalide"})
			return
		}

		vehicle := models.Vehicle{
			OwnerID:   userID,
			Brand:     input.Brand,
			ModelName: input.ModelName,
			Color:     input.Color,
			Energy:    input.Energy,
			Plate:     input.Plate,
			Seats:     input.Seats,
		}

		if err := db.Create(&vehicle).Error; err != nil {
			respondError(c, err)
			return
		}

		c.JSON(201, gin.H{
			"message":     "Véhicule enregistré",
			"vehicule_id": vehicle.ID,
		})
	}
}

// DeleteVehicle removes a vehicle, unless a ride cites it: a cited vehicle
// is an immutable reference.
func DeleteVehicle(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("userId")

		vehicleID, err := strconv.ParseUint(c.Param("id"), 10, 32)
		if err != nil {
			c.JSON(400, gin.H{"erreur": "vehicule_id invalide"})
			return
		}

		var vehicle models.Vehicle
		if err := db.Where("id = ? AND owner_id = ?", vehicleID, userID).
			First(&vehicle).Error; err != nil {
			respondError(c, apperrors.ErrVehicleNotFound)
			return
		}

		var cited int64
		if err := db.Model(&models.Ride{}).Where("vehicle_id = ?", vehicle.ID).
			Count(&cited).Error; err != nil {
			respondError(c, err)
			return
		}
		if cited > 0 {
			respondError(c, apperrors.ErrVehicleInUse)
			return
		}

		if err := db.Delete(&vehicle).Error; err != nil {
			respondError(c, err)
			return
		}

		c.JSON(200, gin.H{"message": "Véhicule supprimé"})
	}
}
