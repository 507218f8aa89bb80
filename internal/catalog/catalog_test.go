package catalog

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/nass931808/EcoRide/internal/apperrors"
	"github.com/nass931808/EcoRide/internal/ledger"
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

// Two drivers, two rides: Paris->Lyon in an electric car (driver rated 4.5,
// 10€, 3 seats) and Marseille->Nice in a petrol car (unrated, 25€, 2 seats).
func seedCatalog(t *testing.T, db *gorm.DB) (ride1, ride2 *models.Ride) {
	t.Helper()

	alice := models.User{Pseudo: "alice", Email: "alice@test.fr", PasswordHash: "x", MeanRating: 4.5}
	require.NoError(t, db.Create(&alice).Error)
	bob := models.User{Pseudo: "bob", Email: "bob@test.fr", PasswordHash: "x"}
	require.NoError(t, db.Create(&bob).Error)

	zoe := models.Vehicle{OwnerID: alice.ID, ModelName: "Zoe", Color: "bleu", Energy: "electrique", Plate: "EL-001-EC", Seats: 4}
	require.NoError(t, db.Create(&zoe).Error)
	clio := models.Vehicle{OwnerID: bob.ID, ModelName: "Clio", Color: "rouge", Energy: "essence", Plate: "ES-002-SE", Seats: 4}
	require.NoError(t, db.Create(&clio).Error)

	r1 := models.Ride{
		DriverID:     alice.ID,
		VehicleID:    zoe.ID,
		Origin:       "Paris",
		Destination:  "Lyon",
		Departure:    time.Date(2026, 9, 10, 8, 0, 0, 0, time.UTC),
		SeatCount:    3,
		PricePerSeat: 10,
		Description:  "Trajet direct",
		Preferences:  models.Preferences{Smoker: false, Animals: true}.Encode(),
	}
	require.NoError(t, db.Create(&r1).Error)

	r2 := models.Ride{
		DriverID:     bob.ID,
		VehicleID:    clio.ID,
		Origin:       "Marseille",
		Destination:  "Nice",
		Departure:    time.Date(2026, 9, 11, 9, 30, 0, 0, time.UTC),
		SeatCount:    2,
		PricePerSeat: 25,
		Preferences:  "{}",
	}
	require.NoError(t, db.Create(&r2).Error)

	return &r1, &r2
}

func TestListRidesNoFilters(t *testing.T) {
	db := newTestDB(t)
	cat := New(db)
	seedCatalog(t, db)

	rides, err := cat.ListRides(Filters{})
	require.NoError(t, err)
	require.Len(t, rides, 2)
	assert.Equal(t, "Paris", rides[0].Origin)
	assert.Equal(t, "Marseille", rides[1].Origin)
}

func TestListRidesFilters(t *testing.T) {
	db := newTestDB(t)
	cat := New(db)
	ride1, ride2 := seedCatalog(t, db)

	t.Run("origin substring is case-insensitive", func(t *testing.T) {
		rides, err := cat.ListRides(Filters{Origin: "par"})
		require.NoError(t, err)
		require.Len(t, rides, 1)
		assert.Equal(t, ride1.ID, rides[0].ID)
	})

	t.Run("destination substring", func(t *testing.T) {
		rides, err := cat.ListRides(Filters{Destination: "NICE"})
		require.NoError(t, err)
		require.Len(t, rides, 1)
		assert.Equal(t, ride2.ID, rides[0].ID)
	})

	t.Run("exact departure date", func(t *testing.T) {
		rides, err := cat.ListRides(Filters{Date: "2026-09-11"})
		require.NoError(t, err)
		require.Len(t, rides, 1)
		assert.Equal(t, ride2.ID, rides[0].ID)
	})

	t.Run("max price is inclusive", func(t *testing.T) {
		price := 10.0
		rides, err := cat.ListRides(Filters{MaxPrice: &price})
		require.NoError(t, err)
		require.Len(t, rides, 1)
		assert.Equal(t, ride1.ID, rides[0].ID)
	})

	t.Run("energy type is exact", func(t *testing.T) {
		rides, err := cat.ListRides(Filters{Energy: "electrique"})
		require.NoError(t, err)
		require.Len(t, rides, 1)
		assert.Equal(t, ride1.ID, rides[0].ID)
	})

	t.Run("min rating is inclusive", func(t *testing.T) {
		rating := 4.5
		rides, err := cat.ListRides(Filters{MinRating: &rating})
		require.NoError(t, err)
		require.Len(t, rides, 1)
		assert.Equal(t, ride1.ID, rides[0].ID)
	})

	t.Run("filters combine", func(t *testing.T) {
		rating := 4.0
		rides, err := cat.ListRides(Filters{Origin: "paris", Energy: "electrique", MinRating: &rating})
		require.NoError(t, err)
		require.Len(t, rides, 1)

		rides, err = cat.ListRides(Filters{Origin: "paris", Energy: "essence"})
		require.NoError(t, err)
		assert.Empty(t, rides)
	})
}

func TestListRidesAnnotations(t *testing.T) {
	db := newTestDB(t)
	cat := New(db)
	ride1, _ := seedCatalog(t, db)

	passenger := models.User{Pseudo: "carol", Email: "carol@test.fr", PasswordHash: "x"}
	require.NoError(t, db.Create(&passenger).Error)

	l := ledger.New(db)
	_, err := l.CreateReservation(ride1.ID, passenger.ID, 2)
	require.NoError(t, err)

	// Pending holds do not change the listed remaining seats.
	rides, err := cat.ListRides(Filters{Origin: "Paris"})
	require.NoError(t, err)
	require.Len(t, rides, 1)
	assert.Equal(t, 3, rides[0].RemainingSeats)
	assert.Equal(t, 4.5, rides[0].DriverRating)
	assert.Equal(t, "alice", rides[0].DriverPseudo)

	require.NoError(t, l.ConfirmReservation(ride1.ID, passenger.ID))

	rides, err = cat.ListRides(Filters{Origin: "Paris"})
	require.NoError(t, err)
	require.Len(t, rides, 1)
	assert.Equal(t, 1, rides[0].RemainingSeats)
}

// Identical filters over unchanged data return an identical ordered result.
func TestListRidesIdempotent(t *testing.T) {
	db := newTestDB(t)
	cat := New(db)
	seedCatalog(t, db)

	first, err := cat.ListRides(Filters{})
	require.NoError(t, err)
	second, err := cat.ListRides(Filters{})
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestRideDetail(t *testing.T) {
	db := newTestDB(t)
	cat := New(db)
	ride1, _ := seedCatalog(t, db)

	detail, err := cat.RideDetail(ride1.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", detail.DriverPseudo)
	assert.Equal(t, "Zoe", detail.VehicleModel)
	assert.Equal(t, "bleu", detail.VehicleColor)
	assert.Equal(t, "electrique", detail.Energy)
	assert.Equal(t, 3, detail.RemainingSeats)
	assert.Equal(t, "Trajet direct", detail.Description)
	assert.True(t, detail.Preferences.Animals)
	assert.False(t, detail.Preferences.Smoker)
}

func TestRideDetailNotFound(t *testing.T) {
	db := newTestDB(t)
	cat := New(db)
	seedCatalog(t, db)

	_, err := cat.RideDetail(999)
	assert.ErrorIs(t, err, apperrors.ErrRideNotFound)
}
