package models

import (
	"gorm.io/gorm"
)

type ReservationStatus string

const (
	ReservationStatusPending   ReservationStatus = "en_attente"
	ReservationStatusConfirmed ReservationStatus = "confirme"
	ReservationStatusCancelled ReservationStatus = "annule"
)

// Reservation is a passenger's claim on seats of a ride. A pending row is a
// provisional hold: capacity is only consumed once the row is confirmed.
type Reservation struct {
	gorm.Model
	RideID      uint              `json:"covoiturage_id" gorm:"not null;index"`
	Ride        Ride              `json:"-"`
	PassengerID uint              `json:"passager_id" gorm:"not null;index"`
	Passenger   User              `json:"-"`
	Seats       int               `json:"nb_places" gorm:"not null"`
	Status      ReservationStatus `json:"statut" gorm:"not null;default:'en_attente'"`
}

// CanTransition reports whether a status change is legal:
// pending -> confirmed, pending -> cancelled, confirmed -> cancelled.
// cancelled is terminal, and confirmed never reverts to pending.
func CanTransition(from, to ReservationStatus) bool {
	switch from {
	case ReservationStatusPending:
		return to == ReservationStatusConfirmed || to == ReservationStatusCancelled
	case ReservationStatusConfirmed:
		return to == ReservationStatusCancelled
	}
	return false
}
