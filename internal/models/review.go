package models

import (
	"gorm.io/gorm"
)

// Review is immutable once created. One review per (ride, author, subject).
type Review struct {
	gorm.Model
	RideID    uint   `json:"covoiturage_id" gorm:"not null;index"`
	Ride      Ride   `json:"-"`
	AuthorID  uint   `json:"auteur_id" gorm:"not null"`
	Author    User   `json:"-" gorm:"foreignKey:AuthorID"`
	SubjectID uint   `json:"utilisateur_id" gorm:"not null;index"`
	Subject   User   `json:"-" gorm:"foreignKey:SubjectID"`
	Score     int    `json:"note" gorm:"not null"`
	Comment   string `json:"commentaire"`
}
