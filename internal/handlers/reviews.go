package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/nass931808/EcoRide/internal/rating"
)

type createReviewInput struct {
	RideID    uint   `json:"covoiturage_id"`
	SubjectID uint   `json:"utilisateur_id"`
	Score     *int   `json:"note"`
	Comment   string `json:"commentaire"`
}

// CreateReview submits a review for a user met on a ride.
func CreateReview(agg *rating.Aggregator) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("userId")

		var input createReviewInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"erreur": err.Error()})
			return
		}
		if input.RideID == 0 || input.SubjectID == 0 || input.Score == nil {
			c.JSON(400, gin.H{"erreur": "Champs obligatoires manquants"})
			return
		}

		review, err := agg.SubmitReview(userID, rating.SubmitReviewInput{
			RideID:    input.RideID,
			SubjectID: input.SubjectID,
			Score:     *input.Score,
			Comment:   input.Comment,
		})
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(200, gin.H{
			"message": "Avis créé avec succès",
			"avis_id": review.ID,
		})
	}
}

// ListUserReviews lists the reviews addressed to a user, newest first.
func ListUserReviews(agg *rating.Aggregator) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.Query("utilisateur_id")
		if raw == "" {
			c.JSON(400, gin.H{"erreur": "utilisateur_id requis"})
			return
		}
		subjectID, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			c.JSON(400, gin.H{"erreur": "utilisateur_id invalide"})
			return
		}

		reviews, err := agg.ReviewsFor(uint(subjectID))
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(200, reviews)
	}
}
