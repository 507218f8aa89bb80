package models

import (
	"time"

	"gorm.io/gorm"
)

type Ride struct {
	gorm.Model
	DriverID     uint       `json:"conducteur_id" gorm:"not null;index"`
	Driver       User       `json:"-"`
	VehicleID    uint       `json:"vehicule_id" gorm:"not null"`
	Vehicle      Vehicle    `json:"-"`
	Origin       string     `json:"lieu_depart" gorm:"not null"`
	Destination  string     `json:"lieu_arrivee" gorm:"not null"`
	Departure    time.Time  `json:"date_depart" gorm:"not null;index"`
	Arrival      *time.Time `json:"date_arrivee"`
	SeatCount    int        `json:"nb_place" gorm:"not null"`
	PricePerSeat float64    `json:"prix_personne" gorm:"not null"`
	Description  string     `json:"description"`
	// Preferences holds the canonical JSON produced by Preferences.Encode.
	// It is normalized once on write, never parsed defensively on read.
	Preferences string `json:"-"`
}
