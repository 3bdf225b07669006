package repository

import (
	"context"
	"time"

	"parkspot-backend/internal/domain"
)

type SpotRepository interface {
	// Create inserts the spot and links its amenities in one transaction
	Create(ctx context.Context, spot *domain.ParkingSpot, amenityIDs []string) error
	GetByID(ctx context.Context, id string) (*domain.ParkingSpot, error)
	// Update rewrites the spot row and replaces its amenity links
	Update(ctx context.Context, spot *domain.ParkingSpot, amenityIDs []string) error
	// Delete hard-deletes the spot; images, amenity links and availability
	// rows go with it
	Delete(ctx context.Context, id string) error
	Search(ctx context.Context, filter domain.SpotFilter) ([]domain.ParkingSpot, error)
	ListByOwner(ctx context.Context, ownerID string) ([]domain.ParkingSpot, error)
	ListAmenities(ctx context.Context, spotID string) ([]domain.Amenity, error)
	ListAllAmenities(ctx context.Context) ([]domain.Amenity, error)
	GetRatingSummary(ctx context.Context, spotID string) (avg float64, count int32, err error)
}

type ImageRepository interface {
	Create(ctx context.Context, img *domain.SpotImage) error
	GetByID(ctx context.Context, id string) (*domain.SpotImage, error)
	ListConfirmed(ctx context.Context, spotID string) ([]domain.SpotImage, error)
	// Confirm marks a pending image confirmed; a primary image demotes the
	// spot's other primaries
	Confirm(ctx context.Context, img *domain.SpotImage) error
	Delete(ctx context.Context, id string) error
	DeletePendingBefore(ctx context.Context, cutoff time.Time) ([]domain.SpotImage, error)
}

type AvailabilityRepository interface {
	// Create fails with domain.ErrAvailabilityExists when the spot already
	// has an override for the date
	Create(ctx context.Context, a *domain.Availability) error
	GetByID(ctx context.Context, id string) (*domain.Availability, error)
	// GetForDate returns nil, nil when no override exists
	GetForDate(ctx context.Context, spotID, date string) (*domain.Availability, error)
	Update(ctx context.Context, a *domain.Availability) error
	Delete(ctx context.Context, id string) error
	ListBySpot(ctx context.Context, spotID, from, to string) ([]domain.Availability, error)
}

type BookingRepository interface {
	// CreateWithinCapacity locks the spot row, counts pending and confirmed
	// bookings for the date and inserts only while below spaces_available.
	// Returns domain.ErrFullyBooked otherwise.
	CreateWithinCapacity(ctx context.Context, b *domain.Booking) error
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
	// TransitionStatus moves a booking to status only if its current status
	// is one of from. Returns domain.ErrBookingStateChanged when it is not.
	TransitionStatus(ctx context.Context, id string, from []domain.BookingStatus, to domain.BookingStatus) error
	ListByUser(ctx context.Context, userID string, statuses []domain.BookingStatus) ([]domain.Booking, error)
	ListByHost(ctx context.Context, hostID string, statuses []domain.BookingStatus) ([]domain.Booking, error)
	GetHostEarnings(ctx context.Context, hostID string) (*domain.Earnings, error)
	ListRecentPayouts(ctx context.Context, hostID string, limit int32) ([]domain.Booking, error)
	// CompleteEnded marks pending and confirmed bookings whose check-out is
	// before now as completed and returns their ids
	CompleteEnded(ctx context.Context, now time.Time) ([]string, error)
}

type ReviewRepository interface {
	// CreateForBooking flips the booking's has_review flag and inserts the
	// review atomically. Returns domain.ErrAlreadyReviewed when the flag was
	// already set.
	CreateForBooking(ctx context.Context, r *domain.Review) error
	ListBySpot(ctx context.Context, spotID string) ([]domain.Review, error)
	ListByHost(ctx context.Context, hostID string) ([]domain.Review, error)
}

type EventRepository interface {
	ListUpcoming(ctx context.Context, fromDate string) ([]domain.Event, error)
}
