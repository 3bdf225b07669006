package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"parkspot-backend/internal/domain"
	"parkspot-backend/internal/logger"
	"parkspot-backend/internal/repository"
	"parkspot-backend/internal/utils"
)

type bookingService struct {
	bookingRepo      repository.BookingRepository
	spotRepo         repository.SpotRepository
	availabilityRepo repository.AvailabilityRepository
	cache            ListingCache
	loc              *time.Location
	now              func() time.Time
}

// NewBookingService wires the booking operations. loc is the zone booking
// dates and check-in times are interpreted in; now defaults to time.Now.
func NewBookingService(
	bookingRepo repository.BookingRepository,
	spotRepo repository.SpotRepository,
	availabilityRepo repository.AvailabilityRepository,
	cache ListingCache,
	loc *time.Location,
	now func() time.Time,
) BookingService {
	if loc == nil {
		loc = time.UTC
	}
	if now == nil {
		now = time.Now
	}
	return &bookingService{
		bookingRepo:      bookingRepo,
		spotRepo:         spotRepo,
		availabilityRepo: availabilityRepo,
		cache:            cacheOrNoop(cache),
		loc:              loc,
		now:              now,
	}
}

type bookingInput struct {
	date     utils.Date
	checkIn  utils.Clock
	checkOut utils.Clock
	// client amounts, display hint only
	totalCents int64
}

func parseBookingRequest(req domain.BookingRequest) (*bookingInput, error) {
	req.ParkingSpotID = strings.TrimSpace(req.ParkingSpotID)
	if req.ParkingSpotID == "" || req.BookingDate == "" || req.CheckInTime == "" || req.CheckOutTime == "" ||
		req.PricePerDay == "" || req.ServiceFee == "" || req.TotalPrice == "" {
		return nil, domain.ErrMissingFields
	}

	date, err := utils.ParseDate(req.BookingDate)
	if err != nil {
		return nil, domain.ErrInvalidDate
	}
	checkIn, err := utils.ParseClock(req.CheckInTime)
	if err != nil {
		return nil, domain.ErrInvalidTime
	}
	checkOut, err := utils.ParseClock(req.CheckOutTime)
	if err != nil {
		return nil, domain.ErrInvalidTime
	}

	in := &bookingInput{date: date, checkIn: checkIn, checkOut: checkOut}
	for i, amount := range []string{req.PricePerDay, req.ServiceFee, req.TotalPrice} {
		cents, err := utils.ParseAmountCents(amount)
		if errors.Is(err, utils.ErrNegativeAmount) {
			return nil, domain.ErrNegativePrice
		}
		if err != nil {
			return nil, domain.ErrInvalidPrice
		}
		if i == 2 {
			in.totalCents = cents
		}
	}
	return in, nil
}

func (s *bookingService) CreateBooking(ctx context.Context, userID string, req domain.BookingRequest) (*domain.Booking, error) {
	logger.EnterMethod("bookingService.CreateBooking", "userID", userID, "spotID", req.ParkingSpotID, "date", req.BookingDate)

	if userID == "" {
		return nil, domain.ErrUnauthenticated
	}
	in, err := parseBookingRequest(req)
	if err != nil {
		logger.ExitMethodRejected("bookingService.CreateBooking", domain.Message(err), "userID", userID)
		return nil, err
	}
	spotID := strings.TrimSpace(req.ParkingSpotID)

	spot, err := s.spotRepo.GetByID(ctx, spotID)
	if err != nil {
		if errors.Is(err, domain.ErrSpotNotFound) {
			return nil, domain.ErrSpotUnavailable
		}
		logger.ExitMethodWithError("bookingService.CreateBooking", err, "spotID", spotID)
		return nil, err
	}
	if !spot.IsActive {
		return nil, domain.ErrSpotUnavailable
	}
	if spot.OwnerID == userID {
		logger.ExitMethodRejected("bookingService.CreateBooking", "own spot", "userID", userID, "spotID", spotID)
		return nil, domain.ErrOwnSpot
	}

	price, err := s.priceFor(ctx, spot, in.date.String())
	if err != nil {
		logger.ExitMethodRejected("bookingService.CreateBooking", domain.Message(err), "spotID", spotID, "date", in.date.String())
		return nil, err
	}
	if in.totalCents != price.TotalCents {
		logger.Warn("Client booking total differs from listing price",
			"spotID", spotID, "date", in.date.String(),
			"clientTotal", utils.FormatCents(in.totalCents), "total", utils.FormatCents(price.TotalCents))
	}

	booking := &domain.Booking{
		UserID:           userID,
		ParkingSpotID:    spotID,
		SpotTitle:        spot.Title,
		BookingDate:      in.date.String(),
		CheckInTime:      in.checkIn.String(),
		CheckOutTime:     in.checkOut.String(),
		PricePerDayCents: price.PricePerDayCents,
		ServiceFeeCents:  price.ServiceFeeCents,
		TotalPriceCents:  price.TotalCents,
	}
	if err := s.bookingRepo.CreateWithinCapacity(ctx, booking); err != nil {
		return nil, err
	}

	invalidateListing(ctx, s.cache, spotID, false)
	logger.ExitMethod("bookingService.CreateBooking", "bookingID", booking.ID)
	return booking, nil
}

// priceFor resolves the override for date and prices one day at the spot.
// A date marked unavailable fails with ErrDateUnavailable.
func (s *bookingService) priceFor(ctx context.Context, spot *domain.ParkingSpot, date string) (utils.PriceBreakdown, error) {
	override, err := s.availabilityRepo.GetForDate(ctx, spot.ID, date)
	if err != nil {
		return utils.PriceBreakdown{}, err
	}
	effective := spot.PricePerDayCents
	if override != nil {
		if !override.IsAvailable {
			return utils.PriceBreakdown{}, domain.ErrDateUnavailable
		}
		effective = utils.EffectivePrice(spot.PricePerDayCents, override.IsAvailable, override.PriceOverrideCents)
	}
	return utils.CalculateBookingPrice(effective, domain.ServiceFeePercent), nil
}

func (s *bookingService) Quote(ctx context.Context, spotID, date string) (*domain.Quote, error) {
	d, err := utils.ParseDate(date)
	if err != nil {
		return nil, domain.ErrInvalidDate
	}
	spot, err := s.spotRepo.GetByID(ctx, spotID)
	if err != nil {
		return nil, err
	}
	if !spot.IsActive {
		return nil, domain.ErrSpotUnavailable
	}
	price, err := s.priceFor(ctx, spot, d.String())
	if err != nil {
		return nil, err
	}
	return &domain.Quote{
		ParkingSpotID:    spot.ID,
		Date:             d.String(),
		PricePerDayCents: price.PricePerDayCents,
		ServiceFeeCents:  price.ServiceFeeCents,
		TotalPriceCents:  price.TotalCents,
	}, nil
}

func (s *bookingService) CancelBooking(ctx context.Context, userID, bookingID string) (*domain.Booking, error) {
	logger.EnterMethod("bookingService.CancelBooking", "userID", userID, "bookingID", bookingID)

	if userID == "" {
		return nil, domain.ErrUnauthenticated
	}
	b, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b.UserID != userID {
		logger.ExitMethodRejected("bookingService.CancelBooking", "not owner", "userID", userID, "bookingID", bookingID)
		return nil, domain.ErrNotBookingOwner
	}
	switch b.Status {
	case domain.BookingStatusCancelled:
		return nil, domain.ErrAlreadyCancelled
	case domain.BookingStatusCompleted:
		return nil, domain.ErrCancelCompleted
	}

	start, err := s.startOf(b)
	if err != nil {
		return nil, domain.Backend(err)
	}
	if !utils.CancellationAllowed(s.now(), start, domain.CancellationWindow) {
		logger.ExitMethodRejected("bookingService.CancelBooking", "inside cancellation window", "bookingID", bookingID, "start", start)
		return nil, domain.ErrCancelTooLate
	}

	if err := s.bookingRepo.TransitionStatus(ctx, b.ID, domain.ActiveBookingStatuses, domain.BookingStatusCancelled); err != nil {
		logger.ExitMethodWithError("bookingService.CancelBooking", err, "bookingID", bookingID)
		return nil, err
	}
	b.Status = domain.BookingStatusCancelled

	invalidateListing(ctx, s.cache, b.ParkingSpotID, false)
	logger.ExitMethod("bookingService.CancelBooking", "bookingID", bookingID)
	return b, nil
}

func (s *bookingService) startOf(b *domain.Booking) (time.Time, error) {
	d, err := utils.ParseDate(b.BookingDate)
	if err != nil {
		return time.Time{}, err
	}
	c, err := utils.ParseClock(b.CheckInTime)
	if err != nil {
		return time.Time{}, err
	}
	return utils.At(d, c, s.loc), nil
}

func (s *bookingService) GetBooking(ctx context.Context, userID, bookingID string) (*domain.Booking, error) {
	if userID == "" {
		return nil, domain.ErrUnauthenticated
	}
	b, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b.UserID == userID {
		return b, nil
	}
	// The host of the spot may view bookings on it
	spot, err := s.spotRepo.GetByID(ctx, b.ParkingSpotID)
	if err != nil && !errors.Is(err, domain.ErrSpotNotFound) {
		return nil, err
	}
	if spot == nil || spot.OwnerID != userID {
		return nil, domain.ErrNotBookingParty
	}
	return b, nil
}

func (s *bookingService) ListMyBookings(ctx context.Context, userID string, scope domain.BookingScope) ([]domain.Booking, error) {
	return s.bookingRepo.ListByUser(ctx, userID, scope.Statuses())
}
