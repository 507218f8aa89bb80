package ledger

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/nass931808/EcoRide/internal/apperrors"
	"github.com/nass931808/EcoRide/internal/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.ReplaceAll(t.Name(), "/", "_")
	db, err := gorm.Open(sqlite.Open("file:"+name+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Vehicle{},
		&models.Ride{},
		&models.Reservation{},
		&models.Review{},
	))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, pseudo string) *models.User {
	t.Helper()
	user := models.User{Pseudo: pseudo, Email: pseudo + "@test.fr", PasswordHash: "x"}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

func seedRide(t *testing.T, db *gorm.DB, driver *models.User, seats int, price float64) *models.Ride {
	t.Helper()
	vehicle := models.Vehicle{
		OwnerID:   driver.ID,
		ModelName: "Zoe",
		Energy:    "electrique",
		Plate:     fmt.Sprintf("%s-%d", driver.Pseudo, seats),
		Seats:     5,
	}
	require.NoError(t, db.Create(&vehicle).Error)

	ride := models.Ride{
		DriverID:     driver.ID,
		VehicleID:    vehicle.ID,
		Origin:       "Paris",
		Destination:  "Lyon",
		Departure:    time.Now().Add(48 * time.Hour),
		SeatCount:    seats,
		PricePerSeat: price,
		Preferences:  "{}",
	}
	require.NoError(t, db.Create(&ride).Error)
	return &ride
}

func TestRemainingSeats(t *testing.T) {
	db := newTestDB(t)
	l := New(db)

	driver := seedUser(t, db, "driver")
	passenger := seedUser(t, db, "passenger")
	ride := seedRide(t, db, driver, 3, 12)

	remaining, err := l.RemainingSeats(ride.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, remaining)

	_, err = l.CreateReservation(ride.ID, passenger.ID, 2)
	require.NoError(t, err)

	// Pending holds do not consume capacity.
	remaining, err = l.RemainingSeats(ride.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, remaining)

	require.NoError(t, l.ConfirmReservation(ride.ID, passenger.ID))

	remaining, err = l.RemainingSeats(ride.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, remaining)
}

func TestRemainingSeatsUnknownRide(t *testing.T) {
	db := newTestDB(t)
	l := New(db)

	_, err := l.RemainingSeats(999)
	assert.ErrorIs(t, err, apperrors.ErrRideNotFound)
}

func TestCreateReservation(t *testing.T) {
	db := newTestDB(t)
	l := New(db)

	driver := seedUser(t, db, "driver")
	passenger := seedUser(t, db, "passenger")
	ride := seedRide(t, db, driver, 2, 15)

	quote, err := l.CreateReservation(ride.ID, passenger.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, models.ReservationStatusPending, quote.Reservation.Status)
	assert.Equal(t, 30.0, quote.TotalPrice)
}

func TestCreateReservationUnknownRide(t *testing.T) {
	db := newTestDB(t)
	l := New(db)
	passenger := seedUser(t, db, "passenger")

	_, err := l.CreateReservation(999, passenger.ID, 1)
	assert.ErrorIs(t, err, apperrors.ErrRideNotFound)
}

func TestCreateReservationInsufficientCapacity(t *testing.T) {
	db := newTestDB(t)
	l := New(db)

	driver := seedUser(t, db, "driver")
	passenger := seedUser(t, db, "passenger")
	ride := seedRide(t, db, driver, 2, 10)

	_, err := l.CreateReservation(ride.ID, passenger.ID, 3)
	assert.ErrorIs(t, err, apperrors.ErrInsufficientCapacity)

	// The failed attempt must leave no row behind.
	var count int64
	require.NoError(t, db.Model(&models.Reservation{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestCreateReservationDuplicate(t *testing.T) {
	db := newTestDB(t)
	l := New(db)

	driver := seedUser(t, db, "driver")
	passenger := seedUser(t, db, "passenger")
	ride := seedRide(t, db, driver, 4, 10)

	_, err := l.CreateReservation(ride.ID, passenger.ID, 1)
	require.NoError(t, err)

	_, err = l.CreateReservation(ride.ID, passenger.ID, 1)
	assert.ErrorIs(t, err, apperrors.ErrDuplicateReservation)

	// A cancelled reservation frees the pair for a new booking.
	require.NoError(t, l.CancelReservation(ride.ID, passenger.ID))
	_, err = l.CreateReservation(ride.ID, passenger.ID, 1)
	assert.NoError(t, err)
}

// Scenario from the booking flow: two passengers fill a two-seat ride, then
// a third is rejected.
func TestFullBookingScenario(t *testing.T) {
	db := newTestDB(t)
	l := New(db)

	driver := seedUser(t, db, "driver")
	p1 := seedUser(t, db, "p1")
	p2 := seedUser(t, db, "p2")
	p3 := seedUser(t, db, "p3")
	ride := seedRide(t, db, driver, 2, 10)

	_, err := l.CreateReservation(ride.ID, p1.ID, 1)
	require.NoError(t, err)
	_, err = l.CreateReservation(ride.ID, p2.ID, 1)
	require.NoError(t, err)

	require.NoError(t, l.ConfirmReservation(ride.ID, p1.ID))
	require.NoError(t, l.ConfirmReservation(ride.ID, p2.ID))

	remaining, err := l.RemainingSeats(ride.ID)
	require.NoError(t, err)
	assert.Zero(t, remaining)

	_, err = l.CreateReservation(ride.ID, p3.ID, 1)
	assert.ErrorIs(t, err, apperrors.ErrInsufficientCapacity)
}

// Two pending holds may together exceed capacity; confirmation re-validates
// so only what still fits is confirmed.
func TestConfirmRevalidatesCapacity(t *testing.T) {
	db := newTestDB(t)
	l := New(db)

	driver := seedUser(t, db, "driver")
	p1 := seedUser(t, db, "p1")
	p2 := seedUser(t, db, "p2")
	ride := seedRide(t, db, driver, 3, 10)

	_, err := l.CreateReservation(ride.ID, p1.ID, 2)
	require.NoError(t, err)
	_, err = l.CreateReservation(ride.ID, p2.ID, 2)
	require.NoError(t, err)

	require.NoError(t, l.ConfirmReservation(ride.ID, p1.ID))

	err = l.ConfirmReservation(ride.ID, p2.ID)
	assert.ErrorIs(t, err, apperrors.ErrInsufficientCapacity)

	// The rejected hold stays pending, and confirmed seats never exceed
	// capacity.
	var res models.Reservation
	require.NoError(t, db.Where("ride_id = ? AND passenger_id = ?", ride.ID, p2.ID).First(&res).Error)
	assert.Equal(t, models.ReservationStatusPending, res.Status)

	remaining, err := l.RemainingSeats(ride.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, remaining)
}

func TestConfirmWithoutPendingReservation(t *testing.T) {
	db := newTestDB(t)
	l := New(db)

	driver := seedUser(t, db, "driver")
	passenger := seedUser(t, db, "passenger")
	ride := seedRide(t, db, driver, 2, 10)

	// Never created.
	err := l.ConfirmReservation(ride.ID, passenger.ID)
	assert.ErrorIs(t, err, apperrors.ErrReservationNotFound)

	_, err = l.CreateReservation(ride.ID, passenger.ID, 1)
	require.NoError(t, err)
	require.NoError(t, l.ConfirmReservation(ride.ID, passenger.ID))

	// Already confirmed.
	err = l.ConfirmReservation(ride.ID, passenger.ID)
	assert.ErrorIs(t, err, apperrors.ErrReservationNotFound)

	remaining, err := l.RemainingSeats(ride.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, remaining)

	// Cancelled.
	require.NoError(t, l.CancelReservation(ride.ID, passenger.ID))
	err = l.ConfirmReservation(ride.ID, passenger.ID)
	assert.ErrorIs(t, err, apperrors.ErrReservationNotFound)
}

func TestCancelReservation(t *testing.T) {
	db := newTestDB(t)
	l := New(db)

	driver := seedUser(t, db, "driver")
	passenger := seedUser(t, db, "passenger")
	ride := seedRide(t, db, driver, 2, 10)

	_, err := l.CreateReservation(ride.ID, passenger.ID, 2)
	require.NoError(t, err)
	require.NoError(t, l.ConfirmReservation(ride.ID, passenger.ID))

	remaining, err := l.RemainingSeats(ride.ID)
	require.NoError(t, err)
	assert.Zero(t, remaining)

	// Cancelling a confirmed reservation frees its seats.
	require.NoError(t, l.CancelReservation(ride.ID, passenger.ID))
	remaining, err = l.RemainingSeats(ride.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, remaining)

	// Cancelling again is a no-op.
	require.NoError(t, l.CancelReservation(ride.ID, passenger.ID))
}

func TestCancelReservationNotFound(t *testing.T) {
	db := newTestDB(t)
	l := New(db)

	driver := seedUser(t, db, "driver")
	passenger := seedUser(t, db, "passenger")
	ride := seedRide(t, db, driver, 2, 10)

	err := l.CancelReservation(ride.ID, passenger.ID)
	assert.ErrorIs(t, err, apperrors.ErrReservationNotFound)

	err = l.CancelReservation(999, passenger.ID)
	assert.ErrorIs(t, err, apperrors.ErrRideNotFound)
}

func TestStatusTransitions(t *testing.T) {
	cases := []struct {
		from, to models.ReservationStatus
		want     bool
	}{
		{models.ReservationStatusPending, models.ReservationStatusConfirmed, true},
		{models.ReservationStatusPending, models.ReservationStatusCancelled, true},
		{models.ReservationStatusConfirmed, models.ReservationStatusCancelled, true},
		{models.ReservationStatusConfirmed, models.ReservationStatusPending, false},
		{models.ReservationStatusCancelled, models.ReservationStatusPending, false},
		{models.ReservationStatusCancelled, models.ReservationStatusConfirmed, false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, models.CanTransition(tc.from, tc.to),
			"%s -> %s", tc.from, tc.to)
	}
}
