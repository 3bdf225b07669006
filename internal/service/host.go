package service

import (
	"context"

	"parkspot-backend/internal/domain"
	"parkspot-backend/internal/logger"
	"parkspot-backend/internal/repository"
)

const recentPayoutsLimit = 10

type hostService struct {
	bookingRepo repository.BookingRepository
	reviewRepo  repository.ReviewRepository
	spotRepo    repository.SpotRepository
	cache       ListingCache
}

func NewHostService(
	bookingRepo repository.BookingRepository,
	reviewRepo repository.ReviewRepository,
	spotRepo repository.SpotRepository,
	cache ListingCache,
) HostService {
	return &hostService{
		bookingRepo: bookingRepo,
		reviewRepo:  reviewRepo,
		spotRepo:    spotRepo,
		cache:       cacheOrNoop(cache),
	}
}

func (s *hostService) ListHostBookings(ctx context.Context, hostID string, scope domain.BookingScope) ([]domain.Booking, error) {
	if hostID == "" {
		return nil, domain.ErrUnauthenticated
	}
	return s.bookingRepo.ListByHost(ctx, hostID, scope.Statuses())
}

func (s *hostService) GetEarnings(ctx context.Context, hostID string) (*domain.Earnings, error) {
	if hostID == "" {
		return nil, domain.ErrUnauthenticated
	}
	earnings, err := s.bookingRepo.GetHostEarnings(ctx, hostID)
	if err != nil {
		return nil, err
	}
	payouts, err := s.bookingRepo.ListRecentPayouts(ctx, hostID, recentPayoutsLimit)
	if err != nil {
		return nil, err
	}
	earnings.RecentPayouts = payouts
	return earnings, nil
}

func (s *hostService) ListHostReviews(ctx context.Context, hostID string) ([]domain.Review, error) {
	if hostID == "" {
		return nil, domain.ErrUnauthenticated
	}
	return s.reviewRepo.ListByHost(ctx, hostID)
}

// ConfirmBooking moves a pending booking on one of the host's spots to
// confirmed
func (s *hostService) ConfirmBooking(ctx context.Context, hostID, bookingID string) (*domain.Booking, error) {
	logger.EnterMethod("hostService.ConfirmBooking", "hostID", hostID, "bookingID", bookingID)

	b, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if _, err := requireOwner(ctx, s.spotRepo, hostID, b.ParkingSpotID); err != nil {
		logger.ExitMethodRejected("hostService.ConfirmBooking", domain.Message(err), "hostID", hostID, "bookingID", bookingID)
		return nil, err
	}
	if b.Status != domain.BookingStatusPending {
		return nil, domain.ErrBookingNotPending
	}

	from := []domain.BookingStatus{domain.BookingStatusPending}
	if err := s.bookingRepo.TransitionStatus(ctx, b.ID, from, domain.BookingStatusConfirmed); err != nil {
		logger.ExitMethodWithError("hostService.ConfirmBooking", err, "bookingID", bookingID)
		return nil, err
	}
	b.Status = domain.BookingStatusConfirmed

	invalidateListing(ctx, s.cache, b.ParkingSpotID, false)
	logger.ExitMethod("hostService.ConfirmBooking", "bookingID", bookingID)
	return b, nil
}
