package http

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"parkspot-backend/internal/domain"
)

type MockBookingService struct{ mock.Mock }

func (m *MockBookingService) CreateBooking(ctx context.Context, userID string, req domain.BookingRequest) (*domain.Booking, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingService) CancelBooking(ctx context.Context, userID, bookingID string) (*domain.Booking, error) {
	args := m.Called(ctx, userID, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingService) GetBooking(ctx context.Context, userID, bookingID string) (*domain.Booking, error) {
	args := m.Called(ctx, userID, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingService) ListMyBookings(ctx context.Context, userID string, scope domain.BookingScope) ([]domain.Booking, error) {
	args := m.Called(ctx, userID, scope)
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockBookingService) Quote(ctx context.Context, spotID, date string) (*domain.Quote, error) {
	args := m.Called(ctx, spotID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Quote), args.Error(1)
}

type MockReviewService struct{ mock.Mock }

func (m *MockReviewService) CreateReview(ctx context.Context, userID, bookingID string, rating int32, comment string) (*domain.Review, error) {
	args := m.Called(ctx, userID, bookingID, rating, comment)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Review), args.Error(1)
}

func (m *MockReviewService) ListSpotReviews(ctx context.Context, spotID string) ([]domain.Review, error) {
	args := m.Called(ctx, spotID)
	return args.Get(0).([]domain.Review), args.Error(1)
}

type MockAvailabilityService struct{ mock.Mock }

func (m *MockAvailabilityService) CreateAvailability(ctx context.Context, ownerID string, a *domain.Availability) error {
	return m.Called(ctx, ownerID, a).Error(0)
}

func (m *MockAvailabilityService) UpdateAvailability(ctx context.Context, ownerID string, a *domain.Availability) error {
	return m.Called(ctx, ownerID, a).Error(0)
}

func (m *MockAvailabilityService) DeleteAvailability(ctx context.Context, ownerID, availabilityID string) error {
	return m.Called(ctx, ownerID, availabilityID).Error(0)
}

func (m *MockAvailabilityService) ListAvailability(ctx context.Context, ownerID, spotID, from, to string) ([]domain.Availability, error) {
	args := m.Called(ctx, ownerID, spotID, from, to)
	return args.Get(0).([]domain.Availability), args.Error(1)
}

type MockListingService struct{ mock.Mock }

func (m *MockListingService) CreateListing(ctx context.Context, ownerID string, spot *domain.ParkingSpot, amenityIDs []string) error {
	return m.Called(ctx, ownerID, spot, amenityIDs).Error(0)
}

func (m *MockListingService) UpdateListing(ctx context.Context, ownerID string, spot *domain.ParkingSpot, amenityIDs []string) error {
	return m.Called(ctx, ownerID, spot, amenityIDs).Error(0)
}

func (m *MockListingService) DeleteListing(ctx context.Context, ownerID, spotID string) error {
	return m.Called(ctx, ownerID, spotID).Error(0)
}

func (m *MockListingService) GetListing(ctx context.Context, spotID string) (*domain.SpotDetail, error) {
	args := m.Called(ctx, spotID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SpotDetail), args.Error(1)
}

func (m *MockListingService) SearchListings(ctx context.Context, filter domain.SpotFilter) ([]domain.ParkingSpot, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.ParkingSpot), args.Error(1)
}

func (m *MockListingService) ListMyListings(ctx context.Context, ownerID string) ([]domain.ParkingSpot, error) {
	args := m.Called(ctx, ownerID)
	return args.Get(0).([]domain.ParkingSpot), args.Error(1)
}

func (m *MockListingService) ListAmenities(ctx context.Context) ([]domain.Amenity, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Amenity), args.Error(1)
}

func (m *MockListingService) ListEvents(ctx context.Context) ([]domain.Event, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Event), args.Error(1)
}

type MockHostService struct{ mock.Mock }

func (m *MockHostService) ListHostBookings(ctx context.Context, hostID string, scope domain.BookingScope) ([]domain.Booking, error) {
	args := m.Called(ctx, hostID, scope)
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockHostService) GetEarnings(ctx context.Context, hostID string) (*domain.Earnings, error) {
	args := m.Called(ctx, hostID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Earnings), args.Error(1)
}

func (m *MockHostService) ListHostReviews(ctx context.Context, hostID string) ([]domain.Review, error) {
	args := m.Called(ctx, hostID)
	return args.Get(0).([]domain.Review), args.Error(1)
}

func (m *MockHostService) ConfirmBooking(ctx context.Context, hostID, bookingID string) (*domain.Booking, error) {
	args := m.Called(ctx, hostID, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

type MockImageService struct{ mock.Mock }

func (m *MockImageService) RequestImageUpload(ctx context.Context, ownerID, spotID, contentType string, isPrimary bool) (*domain.SpotImage, string, time.Time, error) {
	args := m.Called(ctx, ownerID, spotID, contentType, isPrimary)
	if args.Get(0) == nil {
		return nil, "", time.Time{}, args.Error(3)
	}
	return args.Get(0).(*domain.SpotImage), args.String(1), args.Get(2).(time.Time), args.Error(3)
}

func (m *MockImageService) ConfirmImageUpload(ctx context.Context, ownerID, imageID string) (*domain.SpotImage, error) {
	args := m.Called(ctx, ownerID, imageID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SpotImage), args.Error(1)
}

func (m *MockImageService) DeleteImage(ctx context.Context, ownerID, imageID string) error {
	return m.Called(ctx, ownerID, imageID).Error(0)
}

type MockPinger struct{ mock.Mock }

func (m *MockPinger) PingContext(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}
