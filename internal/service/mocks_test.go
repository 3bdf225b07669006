package service_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"parkspot-backend/internal/domain"
)

// MockSpotRepo
type MockSpotRepo struct {
	mock.Mock
}

func (m *MockSpotRepo) Create(ctx context.Context, spot *domain.ParkingSpot, amenityIDs []string) error {
	args := m.Called(ctx, spot, amenityIDs)
	return args.Error(0)
}
func (m *MockSpotRepo) GetByID(ctx context.Context, id string) (*domain.ParkingSpot, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ParkingSpot), args.Error(1)
}
func (m *MockSpotRepo) Update(ctx context.Context, spot *domain.ParkingSpot, amenityIDs []string) error {
	args := m.Called(ctx, spot, amenityIDs)
	return args.Error(0)
}
func (m *MockSpotRepo) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockSpotRepo) Search(ctx context.Context, filter domain.SpotFilter) ([]domain.ParkingSpot, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.ParkingSpot), args.Error(1)
}
func (m *MockSpotRepo) ListByOwner(ctx context.Context, ownerID string) ([]domain.ParkingSpot, error) {
	args := m.Called(ctx, ownerID)
	return args.Get(0).([]domain.ParkingSpot), args.Error(1)
}
func (m *MockSpotRepo) ListAmenities(ctx context.Context, spotID string) ([]domain.Amenity, error) {
	args := m.Called(ctx, spotID)
	return args.Get(0).([]domain.Amenity), args.Error(1)
}
func (m *MockSpotRepo) ListAllAmenities(ctx context.Context) ([]domain.Amenity, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Amenity), args.Error(1)
}
func (m *MockSpotRepo) GetRatingSummary(ctx context.Context, spotID string) (float64, int32, error) {
	args := m.Called(ctx, spotID)
	return args.Get(0).(float64), args.Get(1).(int32), args.Error(2)
}

// MockImageRepo
type MockImageRepo struct {
	mock.Mock
}

func (m *MockImageRepo) Create(ctx context.Context, img *domain.SpotImage) error {
	args := m.Called(ctx, img)
	return args.Error(0)
}
func (m *MockImageRepo) GetByID(ctx context.Context, id string) (*domain.SpotImage, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SpotImage), args.Error(1)
}
func (m *MockImageRepo) ListConfirmed(ctx context.Context, spotID string) ([]domain.SpotImage, error) {
	args := m.Called(ctx, spotID)
	return args.Get(0).([]domain.SpotImage), args.Error(1)
}
func (m *MockImageRepo) Confirm(ctx context.Context, img *domain.SpotImage) error {
	args := m.Called(ctx, img)
	return args.Error(0)
}
func (m *MockImageRepo) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockImageRepo) DeletePendingBefore(ctx context.Context, cutoff time.Time) ([]domain.SpotImage, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).([]domain.SpotImage), args.Error(1)
}

// MockAvailabilityRepo
type MockAvailabilityRepo struct {
	mock.Mock
}

func (m *MockAvailabilityRepo) Create(ctx context.Context, a *domain.Availability) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}
func (m *MockAvailabilityRepo) GetByID(ctx context.Context, id string) (*domain.Availability, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Availability), args.Error(1)
}
func (m *MockAvailabilityRepo) GetForDate(ctx context.Context, spotID, date string) (*domain.Availability, error) {
	args := m.Called(ctx, spotID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Availability), args.Error(1)
}
func (m *MockAvailabilityRepo) Update(ctx context.Context, a *domain.Availability) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}
func (m *MockAvailabilityRepo) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockAvailabilityRepo) ListBySpot(ctx context.Context, spotID, from, to string) ([]domain.Availability, error) {
	args := m.Called(ctx, spotID, from, to)
	return args.Get(0).([]domain.Availability), args.Error(1)
}

// MockBookingRepo
type MockBookingRepo struct {
	mock.Mock
}

func (m *MockBookingRepo) CreateWithinCapacity(ctx context.Context, b *domain.Booking) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}
func (m *MockBookingRepo) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}
func (m *MockBookingRepo) TransitionStatus(ctx context.Context, id string, from []domain.BookingStatus, to domain.BookingStatus) error {
	args := m.Called(ctx, id, from, to)
	return args.Error(0)
}
func (m *MockBookingRepo) ListByUser(ctx context.Context, userID string, statuses []domain.BookingStatus) ([]domain.Booking, error) {
	args := m.Called(ctx, userID, statuses)
	return args.Get(0).([]domain.Booking), args.Error(1)
}
func (m *MockBookingRepo) ListByHost(ctx context.Context, hostID string, statuses []domain.BookingStatus) ([]domain.Booking, error) {
	args := m.Called(ctx, hostID, statuses)
	return args.Get(0).([]domain.Booking), args.Error(1)
}
func (m *MockBookingRepo) GetHostEarnings(ctx context.Context, hostID string) (*domain.Earnings, error) {
	args := m.Called(ctx, hostID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Earnings), args.Error(1)
}
func (m *MockBookingRepo) ListRecentPayouts(ctx context.Context, hostID string, limit int32) ([]domain.Booking, error) {
	args := m.Called(ctx, hostID, limit)
	return args.Get(0).([]domain.Booking), args.Error(1)
}
func (m *MockBookingRepo) CompleteEnded(ctx context.Context, now time.Time) ([]string, error) {
	args := m.Called(ctx, now)
	return args.Get(0).([]string), args.Error(1)
}

// MockReviewRepo
type MockReviewRepo struct {
	mock.Mock
}

func (m *MockReviewRepo) CreateForBooking(ctx context.Context, r *domain.Review) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}
func (m *MockReviewRepo) ListBySpot(ctx context.Context, spotID string) ([]domain.Review, error) {
	args := m.Called(ctx, spotID)
	return args.Get(0).([]domain.Review), args.Error(1)
}
func (m *MockReviewRepo) ListByHost(ctx context.Context, hostID string) ([]domain.Review, error) {
	args := m.Called(ctx, hostID)
	return args.Get(0).([]domain.Review), args.Error(1)
}

// MockEventRepo
type MockEventRepo struct {
	mock.Mock
}

func (m *MockEventRepo) ListUpcoming(ctx context.Context, fromDate string) ([]domain.Event, error) {
	args := m.Called(ctx, fromDate)
	return args.Get(0).([]domain.Event), args.Error(1)
}

// MockCache
type MockCache struct {
	mock.Mock
}

func (m *MockCache) GetListing(ctx context.Context, id string) (*domain.SpotDetail, bool, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*domain.SpotDetail), args.Bool(1), args.Error(2)
}
func (m *MockCache) SetListing(ctx context.Context, detail *domain.SpotDetail) error {
	args := m.Called(ctx, detail)
	return args.Error(0)
}
func (m *MockCache) InvalidateListing(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockCache) GetSearch(ctx context.Context, filter domain.SpotFilter) ([]domain.ParkingSpot, bool, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).([]domain.ParkingSpot), args.Bool(1), args.Error(2)
}
func (m *MockCache) SetSearch(ctx context.Context, filter domain.SpotFilter, spots []domain.ParkingSpot) error {
	args := m.Called(ctx, filter, spots)
	return args.Error(0)
}
func (m *MockCache) InvalidateSearches(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// MockStorage
type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) GeneratePresignedUploadURL(ctx context.Context, key string, contentType string, expiresIn time.Duration) (string, error) {
	args := m.Called(ctx, key, contentType, expiresIn)
	return args.String(0), args.Error(1)
}
func (m *MockStorage) GeneratePresignedDownloadURL(ctx context.Context, key string, expiresIn time.Duration) (string, error) {
	args := m.Called(ctx, key, expiresIn)
	return args.String(0), args.Error(1)
}
func (m *MockStorage) FileExists(ctx context.Context, key string) (bool, int64, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Get(1).(int64), args.Error(2)
}
func (m *MockStorage) DeleteFile(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}
