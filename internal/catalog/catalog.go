// Package catalog answers "which rides match these filters", with remaining
// seats and driver rating joined in.
package catalog

import (
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/nass931808/EcoRide/internal/apperrors"
	"github.com/nass931808/EcoRide/internal/models"
)

type Catalog struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Catalog {
	return &Catalog{db: db}
}

// Filters are independently optional: a zero value means "no constraint",
// never "match empty".
type Filters struct {
	Origin      string
	Destination string
	Date        string // exact departure date, 2006-01-02
	MaxPrice    *float64
	Energy      string
	MinRating   *float64
}

type RideSummary struct {
	ID             uint       `json:"covoiturage_id" gorm:"column:id"`
	DriverID       uint       `json:"conducteur_id" gorm:"column:driver_id"`
	DriverPseudo   string     `json:"conducteur_pseudo" gorm:"column:driver_pseudo"`
	DriverRating   float64    `json:"note_moyenne" gorm:"column:driver_rating"`
	Origin         string     `json:"lieu_depart" gorm:"column:origin"`
	Destination    string     `json:"lieu_arrivee" gorm:"column:destination"`
	Departure      time.Time  `json:"date_depart" gorm:"column:departure"`
	Arrival        *time.Time `json:"date_arrivee" gorm:"column:arrival"`
	SeatCount      int        `json:"nb_place" gorm:"column:seat_count"`
	PricePerSeat   float64    `json:"prix_personne" gorm:"column:price_per_seat"`
	Energy         string     `json:"energie" gorm:"column:energy"`
	RemainingSeats int        `json:"places_restantes" gorm:"column:remaining_seats"`
}

type RideDetail struct {
	RideSummary
	VehicleModel string             `json:"modele" gorm:"column:model_name"`
	VehicleColor string             `json:"couleur" gorm:"column:color"`
	Description  string             `json:"description" gorm:"column:description"`
	Preferences  models.Preferences `json:"preferences" gorm:"-"`

	RawPreferences string `json:"-" gorm:"column:preferences"`
}

const remainingSeatsExpr = `rides.seat_count - COALESCE((
	SELECT SUM(r.seats) FROM reservations r
	WHERE r.ride_id = rides.id AND r.status = 'confirme' AND r.deleted_at IS NULL
), 0) AS remaining_seats`

func (c *Catalog) baseQuery() *gorm.DB {
	return c.db.Table("rides").
		Select(`rides.id, rides.driver_id, users.pseudo AS driver_pseudo,
			users.mean_rating AS driver_rating, rides.origin, rides.destination,
			rides.departure, rides.arrival, rides.seat_count, rides.price_per_seat,
			vehicles.energy, `+remainingSeatsExpr).
		Joins("JOIN users ON users.id = rides.driver_id").
		Joins("JOIN vehicles ON vehicles.id = rides.vehicle_id").
		Where("rides.deleted_at IS NULL")
}

// ListRides returns matching rides in a stable order, so identical queries
// over unchanged data return identical sequences.
func (c *Catalog) ListRides(f Filters) ([]RideSummary, error) {
	query := c.baseQuery()

	if f.Origin != "" {
		query = query.Where("LOWER(rides.origin) LIKE ?", "%"+strings.ToLower(f.Origin)+"%")
	}
	if f.Destination != "" {
		query = query.Where("LOWER(rides.destination) LIKE ?", "%"+strings.ToLower(f.Destination)+"%")
	}
	if f.Date != "" {
		query = query.Where("DATE(rides.departure) = ?", f.Date)
	}
	if f.MaxPrice != nil {
		query = query.Where("rides.price_per_seat <= ?", *f.MaxPrice)
	}
	if f.Energy != "" {
		query = query.Where("vehicles.energy = ?", f.Energy)
	}
	if f.MinRating != nil {
		query = query.Where("users.mean_rating >= ?", *f.MinRating)
	}

	rides := []RideSummary{}
	if err := query.Order("rides.departure ASC, rides.id ASC").Scan(&rides).Error; err != nil {
		return nil, err
	}
	return rides, nil
}

// RideDetail returns the single-ride projection with driver, vehicle and
// normalized preference tags.
func (c *Catalog) RideDetail(rideID uint) (*RideDetail, error) {
	var detail RideDetail
	err := c.db.Table("rides").
		Select(`rides.id, rides.driver_id, users.pseudo AS driver_pseudo,
			users.mean_rating AS driver_rating, rides.origin, rides.destination,
			rides.departure, rides.arrival, rides.seat_count, rides.price_per_seat,
			rides.description, rides.preferences, vehicles.energy,
			vehicles.model_name, vehicles.color, `+remainingSeatsExpr).
		Joins("JOIN users ON users.id = rides.driver_id").
		Joins("JOIN vehicles ON vehicles.id = rides.vehicle_id").
		Where("rides.id = ? AND rides.deleted_at IS NULL", rideID).
		Scan(&detail).Error
	if err != nil {
		return nil, err
	}
	if detail.ID == 0 {
		return nil, apperrors.ErrRideNotFound
	}

	prefs, err := models.ParsePreferences([]byte(detail.RawPreferences))
	if err != nil {
		// Stored preferences are canonical; an unreadable value means
		// pre-normalization data. Treat it as no preferences.
		prefs = models.Preferences{}
	}
	detail.Preferences = prefs

	return &detail, nil
}
