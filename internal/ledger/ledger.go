// Package ledger is the seat-accounting core. It guarantees that the seats
// confirmed on a ride never exceed its capacity, and mediates the
// reservation lifecycle.
package ledger

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/nass931808/EcoRide/internal/apperrors"
	"github.com/nass931808/EcoRide/internal/models"
	"github.com/nass931808/EcoRide/internal/observability"
)

type Ledger struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Ledger {
	return &Ledger{db: db}
}

// Quote is what a passenger gets back when a reservation is created.
type Quote struct {
	Reservation *models.Reservation
	TotalPrice  float64
}

// RemainingSeats computes capacity minus confirmed seats from a single
// consistent read. Never negative.
func (l *Ledger) RemainingSeats(rideID uint) (int, error) {
	var remaining int
	err := l.db.Transaction(func(tx *gorm.DB) error {
		ride, err := findRide(tx, rideID, false)
		if err != nil {
			return err
		}
		remaining, err = remainingSeats(tx, ride)
		return err
	})
	return remaining, err
}

// CreateReservation inserts a pending hold for the passenger. Capacity is
// validated against confirmed seats but not consumed: only confirmation
// consumes seats. A passenger may hold at most one non-cancelled
// reservation per ride.
func (l *Ledger) CreateReservation(rideID, passengerID uint, seats int) (*Quote, error) {
	if seats < 1 {
		return nil, apperrors.Validationf("nb_places doit être au moins 1")
	}

	var quote Quote
	err := l.db.Transaction(func(tx *gorm.DB) error {
		ride, err := findRide(tx, rideID, true)
		if err != nil {
			return err
		}

		var active int64
		if err := tx.Model(&models.Reservation{}).
			Where("ride_id = ? AND passenger_id = ? AND status <> ?",
				rideID, passengerID, models.ReservationStatusCancelled).
			Count(&active).Error; err != nil {
			return err
		}
		if active > 0 {
			return apperrors.ErrDuplicateReservation
		}

		remaining, err := remainingSeats(tx, ride)
		if err != nil {
			return err
		}
		if seats > remaining {
			observability.CapacityConflicts.Inc()
			return apperrors.ErrInsufficientCapacity
		}

		reservation := models.Reservation{
			RideID:      rideID,
			PassengerID: passengerID,
			Seats:       seats,
			Status:      models.ReservationStatusPending,
		}
		if err := tx.Create(&reservation).Error; err != nil {
			return err
		}

		quote.Reservation = &reservation
		quote.TotalPrice = float64(seats) * ride.PricePerSeat
		return nil
	})
	if err != nil {
		return nil, err
	}

	observability.ReservationsCreated.Inc()
	return &quote, nil
}

// ConfirmReservation moves the passenger's pending hold to confirmed.
// Capacity is re-validated here, under a lock on the ride row: two pending
// holds may together exceed capacity, and only what still fits confirms.
func (l *Ledger) ConfirmReservation(rideID, passengerID uint) error {
	err := l.db.Transaction(func(tx *gorm.DB) error {
		ride, err := findRide(tx, rideID, true)
		if err != nil {
			return err
		}

		var reservation models.Reservation
		if err := tx.Where("ride_id = ? AND passenger_id = ? AND status = ?",
			rideID, passengerID, models.ReservationStatusPending).
			First(&reservation).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrReservationNotFound
			}
			return err
		}

		remaining, err := remainingSeats(tx, ride)
		if err != nil {
			return err
		}
		if reservation.Seats > remaining {
			observability.CapacityConflicts.Inc()
			return apperrors.ErrInsufficientCapacity
		}

		return tx.Model(&reservation).
			Update("status", models.ReservationStatusConfirmed).Error
	})
	if err != nil {
		return err
	}

	observability.ReservationsConfirmed.Inc()
	return nil
}

// CancelReservation moves the passenger's reservation to cancelled, freeing
// capacity if it was confirmed. Cancelling an already-cancelled reservation
// is a no-op; a reservation that never existed is NotFound.
func (l *Ledger) CancelReservation(rideID, passengerID uint) error {
	return l.db.Transaction(func(tx *gorm.DB) error {
		if _, err := findRide(tx, rideID, true); err != nil {
			return err
		}

		var reservation models.Reservation
		if err := tx.Where("ride_id = ? AND passenger_id = ?", rideID, passengerID).
			Order("id DESC").
			First(&reservation).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrReservationNotFound
			}
			return err
		}

		if reservation.Status == models.ReservationStatusCancelled {
			return nil
		}
		if !models.CanTransition(reservation.Status, models.ReservationStatusCancelled) {
			return apperrors.ErrReservationNotFound
		}

		return tx.Model(&reservation).
			Update("status", models.ReservationStatusCancelled).Error
	})
}

// findRide loads the ride, locking its row when the caller is about to
// change seat accounting. SQLite (used in tests) has no row locks; its
// single writer serializes the check-and-write instead.
func findRide(tx *gorm.DB, rideID uint, lock bool) (*models.Ride, error) {
	q := tx
	if lock && tx.Dialector.Name() == "postgres" {
		q = tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var ride models.Ride
	if err := q.First(&ride, rideID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrRideNotFound
		}
		return nil, err
	}
	return &ride, nil
}

func remainingSeats(tx *gorm.DB, ride *models.Ride) (int, error) {
	var confirmed int64
	if err := tx.Model(&models.Reservation{}).
		Where("ride_id = ? AND status = ?", ride.ID, models.ReservationStatusConfirmed).
		Select("COALESCE(SUM(seats), 0)").
		Scan(&confirmed).Error; err != nil {
		return 0, err
	}

	remaining := ride.SeatCount - int(confirmed)
	if remaining < 0 {
		remaining = 0
	}
	return remaining, nil
}
