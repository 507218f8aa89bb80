// Package trips models ride creation and the projection of past
// participation into history.
package trips

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/nass931808/EcoRide/internal/apperrors"
	"github.com/nass931808/EcoRide/internal/models"
	"github.com/nass931808/EcoRide/internal/observability"
)

type Service struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Service {
	return &Service{db: db}
}

type PublishInput struct {
	VehicleID    uint
	Origin       string
	Destination  string
	Departure    time.Time
	Arrival      *time.Time
	SeatCount    int
	PricePerSeat float64
	Description  string
	Preferences  models.Preferences
}

// PublishRide creates a ride offer. The cited vehicle must belong to the
// driver. Preferences are normalized here, once, on write.
func (s *Service) PublishRide(driverID uint, in PublishInput) (*models.Ride, error) {
	if in.VehicleID == 0 || in.Origin == "" || in.Destination == "" ||
		in.Departure.IsZero() || in.SeatCount == 0 || in.PricePerSeat == 0 {
		return nil, apperrors.Validationf("Champs obligatoires manquants")
	}
	if in.SeatCount < 1 {
		return nil, apperrors.Validationf("nb_place doit être au moins 1")
	}
	if in.PricePerSeat < 0 {
		return nil, apperrors.Validationf("prix_personne doit être positif")
	}

	var vehicle models.Vehicle
	if err := s.db.Where("id = ? AND owner_id = ?", in.VehicleID, driverID).
		First(&vehicle).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrVehicleNotFound
		}
		return nil, err
	}

	ride := models.Ride{
		DriverID:     driverID,
		VehicleID:    in.VehicleID,
		Origin:       in.Origin,
		Destination:  in.Destination,
		Departure:    in.Departure,
		Arrival:      in.Arrival,
		SeatCount:    in.SeatCount,
		PricePerSeat: in.PricePerSeat,
		Description:  in.Description,
		Preferences:  in.Preferences.Encode(),
	}

	if err := s.db.Create(&ride).Error; err != nil {
		return nil, err
	}

	observability.RidesPublished.Inc()
	return &ride, nil
}

// HistoryEntry is a read-only projection of a past ride for one user.
type HistoryEntry struct {
	RideID      uint      `json:"covoiturage_id" gorm:"column:id"`
	Origin      string    `json:"lieu_depart" gorm:"column:origin"`
	Destination string    `json:"lieu_arrivee" gorm:"column:destination"`
	TripDate    time.Time `json:"date_trajet" gorm:"column:departure"`
	Role        string    `json:"role" gorm:"column:role"`
}

// History lists past participation, as driver or confirmed passenger, most
// recent trip first. Derived on read; nothing writes history rows.
func (s *Service) History(userID uint) ([]HistoryEntry, error) {
	entries := []HistoryEntry{}
	err := s.db.Table("rides").
		Select(`rides.id, rides.origin, rides.destination, rides.departure,
			CASE WHEN rides.driver_id = ? THEN 'conducteur' ELSE 'passager' END AS role`, userID).
		Where("rides.deleted_at IS NULL AND rides.departure < ?", time.Now()).
		Where(`rides.driver_id = ? OR rides.id IN (
			SELECT r.ride_id FROM reservations r
			WHERE r.passenger_id = ? AND r.status = ? AND r.deleted_at IS NULL
		)`, userID, userID, models.ReservationStatusConfirmed).
		Order("rides.departure DESC, rides.id DESC").
		Scan(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}
