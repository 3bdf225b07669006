package service

import (
	"context"
	"time"

	"parkspot-backend/internal/domain"
	"parkspot-backend/internal/logger"
)

type BookingService interface {
	// CreateBooking validates the guest's request, prices it from the
	// listing and inserts a pending booking within the spot's capacity
	CreateBooking(ctx context.Context, userID string, req domain.BookingRequest) (*domain.Booking, error)
	CancelBooking(ctx context.Context, userID, bookingID string) (*domain.Booking, error)
	GetBooking(ctx context.Context, userID, bookingID string) (*domain.Booking, error)
	ListMyBookings(ctx context.Context, userID string, scope domain.BookingScope) ([]domain.Booking, error)
	Quote(ctx context.Context, spotID, date string) (*domain.Quote, error)
}

type ReviewService interface {
	CreateReview(ctx context.Context, userID, bookingID string, rating int32, comment string) (*domain.Review, error)
	ListSpotReviews(ctx context.Context, spotID string) ([]domain.Review, error)
}

type AvailabilityService interface {
	CreateAvailability(ctx context.Context, ownerID string, a *domain.Availability) error
	UpdateAvailability(ctx context.Context, ownerID string, a *domain.Availability) error
	DeleteAvailability(ctx context.Context, ownerID, availabilityID string) error
	ListAvailability(ctx context.Context, ownerID, spotID, from, to string) ([]domain.Availability, error)
}

type ListingService interface {
	CreateListing(ctx context.Context, ownerID string, spot *domain.ParkingSpot, amenityIDs []string) error
	UpdateListing(ctx context.Context, ownerID string, spot *domain.ParkingSpot, amenityIDs []string) error
	DeleteListing(ctx context.Context, ownerID, spotID string) error
	GetListing(ctx context.Context, spotID string) (*domain.SpotDetail, error)
	SearchListings(ctx context.Context, filter domain.SpotFilter) ([]domain.ParkingSpot, error)
	ListMyListings(ctx context.Context, ownerID string) ([]domain.ParkingSpot, error)
	ListAmenities(ctx context.Context) ([]domain.Amenity, error)
	ListEvents(ctx context.Context) ([]domain.Event, error)
}

type HostService interface {
	ListHostBookings(ctx context.Context, hostID string, scope domain.BookingScope) ([]domain.Booking, error)
	GetEarnings(ctx context.Context, hostID string) (*domain.Earnings, error)
	ListHostReviews(ctx context.Context, hostID string) ([]domain.Review, error)
	ConfirmBooking(ctx context.Context, hostID, bookingID string) (*domain.Booking, error)
}

type ImageService interface {
	// RequestImageUpload returns the pending image, a presigned upload URL
	// and the URL's expiry
	RequestImageUpload(ctx context.Context, ownerID, spotID, contentType string, isPrimary bool) (*domain.SpotImage, string, time.Time, error)
	ConfirmImageUpload(ctx context.Context, ownerID, imageID string) (*domain.SpotImage, error)
	DeleteImage(ctx context.Context, ownerID, imageID string) error
}

// ListingCache holds public listing reads. Implementations must treat a
// miss as (nil, false, nil).
type ListingCache interface {
	GetListing(ctx context.Context, id string) (*domain.SpotDetail, bool, error)
	SetListing(ctx context.Context, detail *domain.SpotDetail) error
	InvalidateListing(ctx context.Context, id string) error
	GetSearch(ctx context.Context, filter domain.SpotFilter) ([]domain.ParkingSpot, bool, error)
	SetSearch(ctx context.Context, filter domain.SpotFilter, spots []domain.ParkingSpot) error
	InvalidateSearches(ctx context.Context) error
}

type noopCache struct{}

func (noopCache) GetListing(context.Context, string) (*domain.SpotDetail, bool, error) {
	return nil, false, nil
}
func (noopCache) SetListing(context.Context, *domain.SpotDetail) error { return nil }
func (noopCache) InvalidateListing(context.Context, string) error     { return nil }
func (noopCache) GetSearch(context.Context, domain.SpotFilter) ([]domain.ParkingSpot, bool, error) {
	return nil, false, nil
}
func (noopCache) SetSearch(context.Context, domain.SpotFilter, []domain.ParkingSpot) error {
	return nil
}
func (noopCache) InvalidateSearches(context.Context) error { return nil }

func cacheOrNoop(c ListingCache) ListingCache {
	if c == nil {
		return noopCache{}
	}
	return c
}

// invalidateListing drops the cached listing page. Failures are logged
// and never fail the write that triggered them.
func invalidateListing(ctx context.Context, c ListingCache, spotID string, searches bool) {
	if err := c.InvalidateListing(ctx, spotID); err != nil {
		logger.Warn("Failed to invalidate cached listing", "spotID", spotID, "error", err)
	}
	if searches {
		if err := c.InvalidateSearches(ctx); err != nil {
			logger.Warn("Failed to invalidate cached searches", "spotID", spotID, "error", err)
		}
	}
}
