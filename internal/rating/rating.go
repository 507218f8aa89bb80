// Package rating keeps User.mean_rating consistent with the set of reviews
// about that user.
package rating

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/nass931808/EcoRide/internal/apperrors"
	"github.com/nass931808/EcoRide/internal/models"
	"github.com/nass931808/EcoRide/internal/observability"
)

type Aggregator struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Aggregator {
	return &Aggregator{db: db}
}

type SubmitReviewInput struct {
	RideID    uint
	SubjectID uint
	Score     int
	Comment   string
}

// SubmitReview inserts the review and recomputes the subject's mean rating
// in one transaction: no reader ever sees the review without the updated
// mean. One review per (ride, author, subject).
func (a *Aggregator) SubmitReview(authorID uint, in SubmitReviewInput) (*models.Review, error) {
	if in.RideID == 0 || in.SubjectID == 0 {
		return nil, apperrors.Validationf("Champs obligatoires manquants")
	}
	if in.Score < 1 || in.Score > 5 {
		return nil, apperrors.ErrInvalidScore
	}

	var review models.Review
	err := a.db.Transaction(func(tx *gorm.DB) error {
		var ride models.Ride
		if err := tx.First(&ride, in.RideID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrRideNotFound
			}
			return err
		}

		var subject models.User
		if err := tx.First(&subject, in.SubjectID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrUserNotFound
			}
			return err
		}

		var existing int64
		if err := tx.Model(&models.Review{}).
			Where("ride_id = ? AND author_id = ? AND subject_id = ?",
				in.RideID, authorID, in.SubjectID).
			Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return apperrors.ErrDuplicateReview
		}

		review = models.Review{
			RideID:    in.RideID,
			AuthorID:  authorID,
			SubjectID: in.SubjectID,
			Score:     in.Score,
			Comment:   in.Comment,
		}
		if err := tx.Create(&review).Error; err != nil {
			return err
		}

		var mean float64
		if err := tx.Model(&models.Review{}).
			Where("subject_id = ?", in.SubjectID).
			Select("COALESCE(AVG(score), 0)").
			Scan(&mean).Error; err != nil {
			return err
		}

		return tx.Model(&models.User{}).
			Where("id = ?", in.SubjectID).
			Update("mean_rating", mean).Error
	})
	if err != nil {
		return nil, err
	}

	observability.ReviewsSubmitted.Inc()
	return &review, nil
}

// ReviewEntry is a review joined with its author's handle, as listed on a
// user's public page.
type ReviewEntry struct {
	ID        uint      `json:"avis_id" gorm:"column:id"`
	RideID    uint      `json:"covoiturage_id" gorm:"column:ride_id"`
	AuthorID  uint      `json:"auteur_id" gorm:"column:author_id"`
	SubjectID uint      `json:"utilisateur_id" gorm:"column:subject_id"`
	Score     int       `json:"note" gorm:"column:score"`
	Comment   string    `json:"commentaire" gorm:"column:comment"`
	CreatedAt time.Time `json:"date_avis" gorm:"column:created_at"`
	Pseudo    string    `json:"pseudo" gorm:"column:pseudo"`
}

// ReviewsFor returns the reviews addressed to a user, newest first.
func (a *Aggregator) ReviewsFor(subjectID uint) ([]ReviewEntry, error) {
	entries := []ReviewEntry{}
	err := a.db.Table("reviews").
		Select(`reviews.id, reviews.ride_id, reviews.author_id, reviews.subject_id,
			reviews.score, reviews.comment, reviews.created_at, users.pseudo`).
		Joins("JOIN users ON users.id = reviews.author_id").
		Where("reviews.subject_id = ? AND reviews.deleted_at IS NULL", subjectID).
		Order("reviews.created_at DESC, reviews.id DESC").
		Scan(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}
