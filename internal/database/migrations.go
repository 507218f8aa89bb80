package database

import (
	"gorm.io/gorm"
)

// RunMigrations adds the constraints AutoMigrate cannot express. They back
// up the application-level checks: the database is the last line of defense
// for capacity and rating invariants.
func RunMigrations(db *gorm.DB) error {
	statements := []string{
		// A passenger holds at most one non-cancelled reservation per ride.
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_reservations_active_pair
		 ON reservations (ride_id, passenger_id)
		 WHERE status <> 'annule' AND deleted_at IS NULL`,

		// One review per (ride, author, subject) triple.
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_reviews_once_per_trip
		 ON reviews (ride_id, author_id, subject_id)
		 WHERE deleted_at IS NULL`,

		`ALTER TABLE rides DROP CONSTRAINT IF EXISTS rides_seat_count_check`,
		`ALTER TABLE rides ADD CONSTRAINT rides_seat_count_check CHECK (seat_count > 0)`,

		`ALTER TABLE reservations DROP CONSTRAINT IF EXISTS reservations_seats_check`,
		`ALTER TABLE reservations ADD CONSTRAINT reservations_seats_check CHECK (seats > 0)`,

		`ALTER TABLE reservations DROP CONSTRAINT IF EXISTS reservations_status_check`,
		`ALTER TABLE reservations ADD CONSTRAINT reservations_status_check
		 CHECK (status IN ('en_attente', 'confirme', 'annule'))`,

		`ALTER TABLE reviews DROP CONSTRAINT IF EXISTS reviews_score_check`,
		`ALTER TABLE reviews ADD CONSTRAINT reviews_score_check CHECK (score BETWEEN 1 AND 5)`,

		`ALTER TABLE users DROP CONSTRAINT IF EXISTS users_mean_rating_check`,
		`ALTER TABLE users ADD CONSTRAINT users_mean_rating_check
		 CHECK (mean_rating >= 0 AND mean_rating <= 5)`,
	}

	for _, stmt := range statements {
		if err := db.Exec(stmt).Error; err != nil {
			return err
		}
	}

	return nil
}
