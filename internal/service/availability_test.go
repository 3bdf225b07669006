package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"parkspot-backend/internal/domain"
	"parkspot-backend/internal/service"
)

func TestAvailabilityService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("Owner creates override", func(t *testing.T) {
		availRepo := new(MockAvailabilityRepo)
		spotRepo := new(MockSpotRepo)
		svc := service.NewAvailabilityService(availRepo, spotRepo, nil)

		spotRepo.On("GetByID", ctx, "spot-1").Return(activeSpot(), nil)
		availRepo.On("Create", ctx, mock.AnythingOfType("*domain.Availability")).Return(nil)

		err := svc.CreateAvailability(ctx, "host-1", &domain.Availability{ParkingSpotID: "spot-1", Date: "2025-06-01", IsAvailable: false})
		assert.NoError(t, err)
		availRepo.AssertExpectations(t)
	})

	t.Run("Non-owner", func(t *testing.T) {
		availRepo := new(MockAvailabilityRepo)
		spotRepo := new(MockSpotRepo)
		svc := service.NewAvailabilityService(availRepo, spotRepo, nil)

		spotRepo.On("GetByID", ctx, "spot-1").Return(activeSpot(), nil)

		err := svc.CreateAvailability(ctx, "guest-1", &domain.Availability{ParkingSpotID: "spot-1", Date: "2025-06-01"})
		assert.ErrorIs(t, err, domain.ErrNotSpotOwner)
		availRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Duplicate date", func(t *testing.T) {
		availRepo := new(MockAvailabilityRepo)
		spotRepo := new(MockSpotRepo)
		svc := service.NewAvailabilityService(availRepo, spotRepo, nil)

		spotRepo.On("GetByID", ctx, "spot-1").Return(activeSpot(), nil)
		availRepo.On("Create", ctx, mock.AnythingOfType("*domain.Availability")).Return(domain.ErrAvailabilityExists)

		err := svc.CreateAvailability(ctx, "host-1", &domain.Availability{ParkingSpotID: "spot-1", Date: "2025-06-01"})
		assert.ErrorIs(t, err, domain.ErrAvailabilityExists)
		assert.Equal(t, domain.KindConflict, domain.KindOf(err))
	})

	t.Run("Invalid input", func(t *testing.T) {
		svc := service.NewAvailabilityService(new(MockAvailabilityRepo), new(MockSpotRepo), nil)
		negative := int64(-100)

		err := svc.CreateAvailability(ctx, "host-1", &domain.Availability{ParkingSpotID: "spot-1", Date: "June 1"})
		assert.ErrorIs(t, err, domain.ErrInvalidDate)

		err = svc.CreateAvailability(ctx, "host-1", &domain.Availability{ParkingSpotID: "spot-1", Date: "2025-06-01", PriceOverrideCents: &negative})
		assert.ErrorIs(t, err, domain.ErrNegativePrice)
	})
}

func TestAvailabilityService_UnavailableDateBlocksBooking(t *testing.T) {
	ctx := context.Background()
	availRepo := new(MockAvailabilityRepo)
	spotRepo := new(MockSpotRepo)
	bookingRepo := new(MockBookingRepo)

	var stored *domain.Availability
	spotRepo.On("GetByID", ctx, "spot-1").Return(activeSpot(), nil)
	availRepo.On("Create", ctx, mock.AnythingOfType("*domain.Availability")).
		Run(func(args mock.Arguments) { stored = args.Get(1).(*domain.Availability) }).
		Return(nil)

	availSvc := service.NewAvailabilityService(availRepo, spotRepo, nil)
	require.NoError(t, availSvc.CreateAvailability(ctx, "host-1", &domain.Availability{ParkingSpotID: "spot-1", Date: "2025-06-01", IsAvailable: false}))

	availRepo.On("GetForDate", ctx, "spot-1", "2025-06-01").Return(stored, nil)
	bookingSvc := service.NewBookingService(bookingRepo, spotRepo, availRepo, nil, time.UTC, nil)

	_, err := bookingSvc.CreateBooking(ctx, "guest-1", validRequest())
	assert.ErrorIs(t, err, domain.ErrDateUnavailable)
	bookingRepo.AssertNotCalled(t, "CreateWithinCapacity", mock.Anything, mock.Anything)
}

func TestAvailabilityService_UpdateDelete(t *testing.T) {
	ctx := context.Background()
	existing := &domain.Availability{ID: "a-1", ParkingSpotID: "spot-1", Date: "2025-06-01", IsAvailable: true}

	t.Run("Update keeps the stored spot", func(t *testing.T) {
		availRepo := new(MockAvailabilityRepo)
		spotRepo := new(MockSpotRepo)
		svc := service.NewAvailabilityService(availRepo, spotRepo, nil)

		availRepo.On("GetByID", ctx, "a-1").Return(existing, nil)
		spotRepo.On("GetByID", ctx, "spot-1").Return(activeSpot(), nil)
		availRepo.On("Update", ctx, mock.MatchedBy(func(a *domain.Availability) bool {
			return a.ID == "a-1" && a.ParkingSpotID == "spot-1" && !a.IsAvailable
		})).Return(nil)

		err := svc.UpdateAvailability(ctx, "host-1", &domain.Availability{ID: "a-1", ParkingSpotID: "other-spot", Date: "2025-06-01", IsAvailable: false})
		assert.NoError(t, err)
		availRepo.AssertExpectations(t)
	})

	t.Run("Delete by non-owner", func(t *testing.T) {
		availRepo := new(MockAvailabilityRepo)
		spotRepo := new(MockSpotRepo)
		svc := service.NewAvailabilityService(availRepo, spotRepo, nil)

		availRepo.On("GetByID", ctx, "a-1").Return(existing, nil)
		spotRepo.On("GetByID", ctx, "spot-1").Return(activeSpot(), nil)

		err := svc.DeleteAvailability(ctx, "guest-1", "a-1")
		assert.ErrorIs(t, err, domain.ErrNotSpotOwner)
		availRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("Delete by owner", func(t *testing.T) {
		availRepo := new(MockAvailabilityRepo)
		spotRepo := new(MockSpotRepo)
		svc := service.NewAvailabilityService(availRepo, spotRepo, nil)

		availRepo.On("GetByID", ctx, "a-1").Return(existing, nil)
		spotRepo.On("GetByID", ctx, "spot-1").Return(activeSpot(), nil)
		availRepo.On("Delete", ctx, "a-1").Return(nil)

		assert.NoError(t, svc.DeleteAvailability(ctx, "host-1", "a-1"))
	})
}

func TestAvailabilityService_List(t *testing.T) {
	ctx := context.Background()
	availRepo := new(MockAvailabilityRepo)
	spotRepo := new(MockSpotRepo)
	svc := service.NewAvailabilityService(availRepo, spotRepo, nil)

	spotRepo.On("GetByID", ctx, "spot-1").Return(activeSpot(), nil)
	availRepo.On("ListBySpot", ctx, "spot-1", "2025-06-01", "").Return([]domain.Availability{{ID: "a-1"}}, nil)

	list, err := svc.ListAvailability(ctx, "host-1", "spot-1", "2025-06-01", "")
	require.NoError(t, err)
	assert.Len(t, list, 1)

	_, err = svc.ListAvailability(ctx, "host-1", "spot-1", "2025-06-01", "later")
	assert.ErrorIs(t, err, domain.ErrInvalidDate)
}
