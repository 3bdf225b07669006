package postgres

import (
	"database/sql"

	"parkspot-backend/internal/repository"

	_ "github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.SpotRepository
	repository.ImageRepository
	repository.AvailabilityRepository
	repository.BookingRepository
	repository.ReviewRepository
	repository.EventRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                     db,
		SpotRepository:         NewSpotRepository(db),
		ImageRepository:        NewImageRepository(db),
		AvailabilityRepository: NewAvailabilityRepository(db),
		BookingRepository:      NewBookingRepository(db),
		ReviewRepository:       NewReviewRepository(db),
		EventRepository:        NewEventRepository(db),
	}
}

// DB exposes the underlying handle for health checks
func (s *Store) DB() *sql.DB {
	return s.db
}
