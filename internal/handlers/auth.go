package handlers

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/nass931808/EcoRide/internal/apperrors"
	"github.com/nass931808/EcoRide/internal/middleware"
	"github.com/nass931808/EcoRide/internal/models"
	"github.com/nass931808/EcoRide/internal/services"
)

type RegisterInput struct {
	Pseudo    string `json:"pseudo"`
	LastName  string `json:"nom"`
	FirstName string `json:"prenom"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Phone     string `json:"telephone"`
	Address   string `json:"adresse"`
}

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func setSessionCookie(c *gin.Context, token string, ttl time.Duration) {
	c.SetCookie(middleware.SessionCookie, token, int(ttl.Seconds()), "/", "", false, true)
}

// Register creates the account and opens a session, as the original flow
// did: a fresh user is immediately logged in.
func Register(db *gorm.DB, sessions services.Sessions, sessionTTL time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input RegisterInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"erreur": err.Error()})
			return
		}

		if input.Pseudo == "" || input.Email == "" || input.Password == "" {
			c.JSON(400, gin.H{"erreur": "Pseudo, email et mot de passe obligatoires"})
			return
		}

		var existing int64
		if err := db.Model(&models.User{}).Where("email = ?", input.Email).
			Count(&existing).Error; err != nil {
			respondError(c, err)
			return
		}
		if existing > 0 {
			respondError(c, apperrors.ErrEmailTaken)
			return
		}

		user := models.User{
			Pseudo:    input.Pseudo,
			LastName:  input.LastName,
			FirstName: input.FirstName,
			Email:     input.Email,
			Password:  input.Password,
			Phone:     input.Phone,
			Address:   input.Address,
		}
		if err := user.HashPassword(); err != nil {
			respondError(c, err)
			return
		}

		if err := db.Create(&user).Error; err != nil {
			respondError(c, err)
			return
		}

		token, err := sessions.Create(c.Request.Context(), user.ID)
		if err != nil {
			respondError(c, err)
			return
		}
		setSessionCookie(c, token, sessionTTL)

		c.JSON(200, gin.H{
			"message":        "Inscription réussie",
			"utilisateur_id": user.ID,
			"pseudo":         user.Pseudo,
		})
	}
}

func Login(db *gorm.DB, sessions services.Sessions, sessionTTL time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input LoginInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"erreur": err.Error()})
			return
		}

		if input.Email == "" || input.Password == "" {
			c.JSON(400, gin.H{"erreur": "Email et mot de passe requis"})
			return
		}

		var user models.User
		if err := db.Where("email = ?", input.Email).First(&user).Error; err != nil {
			respondError(c, apperrors.ErrInvalidCredentials)
			return
		}

		if err := user.CheckPassword(input.Password); err != nil {
			respondError(c, apperrors.ErrInvalidCredentials)
			return
		}

		token, err := sessions.Create(c.Request.Context(), user.ID)
		if err != nil {
			respondError(c, err)
			return
		}
		setSessionCookie(c, token, sessionTTL)

		c.JSON(200, gin.H{
			"message":        "Connexion réussie",
			"utilisateur_id": user.ID,
			"pseudo":         user.Pseudo,
		})
	}
}

func Logout(sessions services.Sessions) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, _ := c.Cookie(middleware.SessionCookie)
		if token == "" {
			parts := strings.Split(c.GetHeader("Authorization"), " ")
			if len(parts) == 2 && parts[0] == "Bearer" {
				token = parts[1]
			}
		}
		if token == "" {
			respondError(c, apperrors.ErrNotAuthenticated)
			return
		}

		if err := sessions.Destroy(c.Request.Context(), token); err != nil {
			c.JSON(500, gin.H{"erreur": "Erreur lors de la déconnexion"})
			return
		}

		c.SetCookie(middleware.SessionCookie, "", -1, "/", "", false, true)
		c.JSON(200, gin.H{"message": "Déconnexion réussie"})
	}
}
