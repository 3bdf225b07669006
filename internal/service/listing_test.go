package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"parkspot-backend/internal/domain"
	"parkspot-backend/internal/service"
)

type listingDeps struct {
	spots  *MockSpotRepo
	images *MockImageRepo
	events *MockEventRepo
	store  *MockStorage
	cache  *MockCache
}

func newListingService() (service.ListingService, listingDeps) {
	d := listingDeps{
		spots:  new(MockSpotRepo),
		images: new(MockImageRepo),
		events: new(MockEventRepo),
		store:  new(MockStorage),
		cache:  new(MockCache),
	}
	return service.NewListingService(d.spots, d.images, d.events, d.store, d.cache, time.UTC), d
}

func newSpotInput() *domain.ParkingSpot {
	return &domain.ParkingSpot{
		Title: " Garage by the arena ", Address: "1 Elm St", City: "Austin", State: "TX", ZipCode: "78701",
		Type: domain.SpotTypeGarage, PricePerDayCents: 2500, SpacesAvailable: 2, IsActive: true,
	}
}

func TestListingService_CreateListing(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		svc, d := newListingService()
		d.spots.On("Create", ctx, mock.AnythingOfType("*domain.ParkingSpot"), []string{"am-1"}).
			Run(func(args mock.Arguments) { args.Get(1).(*domain.ParkingSpot).ID = "spot-9" }).
			Return(nil)
		d.cache.On("InvalidateListing", ctx, "spot-9").Return(nil)
		d.cache.On("InvalidateSearches", ctx).Return(nil)

		spot := newSpotInput()
		spot.OwnerID = "someone-else"
		err := svc.CreateListing(ctx, "host-1", spot, []string{"am-1"})
		require.NoError(t, err)
		assert.Equal(t, "host-1", spot.OwnerID)
		assert.Equal(t, "Garage by the arena", spot.Title)
		d.cache.AssertExpectations(t)
	})

	invalid := []struct {
		name   string
		mutate func(s *domain.ParkingSpot)
		want   error
	}{
		{"missing title", func(s *domain.ParkingSpot) { s.Title = " " }, domain.ErrMissingFields},
		{"bad type", func(s *domain.ParkingSpot) { s.Type = "boat" }, domain.ErrInvalidSpotType},
		{"negative price", func(s *domain.ParkingSpot) { s.PricePerDayCents = -1 }, domain.ErrNegativePrice},
		{"no spaces", func(s *domain.ParkingSpot) { s.SpacesAvailable = 0 }, domain.ErrInvalidSpacesAvailable},
	}
	for _, tc := range invalid {
		t.Run(tc.name, func(t *testing.T) {
			svc, d := newListingService()
			spot := newSpotInput()
			tc.mutate(spot)

			err := svc.CreateListing(ctx, "host-1", spot, nil)
			assert.ErrorIs(t, err, tc.want)
			d.spots.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestListingService_UpdateDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("Update by non-owner", func(t *testing.T) {
		svc, d := newListingService()
		d.spots.On("GetByID", ctx, "spot-1").Return(activeSpot(), nil)

		spot := newSpotInput()
		spot.ID = "spot-1"
		err := svc.UpdateListing(ctx, "guest-1", spot, nil)
		assert.ErrorIs(t, err, domain.ErrNotSpotOwner)
		d.spots.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Delete removes stored images", func(t *testing.T) {
		svc, d := newListingService()
		d.spots.On("GetByID", ctx, "spot-1").Return(activeSpot(), nil)
		d.images.On("ListConfirmed", ctx, "spot-1").Return([]domain.SpotImage{
			{ID: "img-1", StorageKey: "spots/spot-1/img-1.jpg"},
			{ID: "img-2", StorageKey: "spots/spot-1/img-2.png"},
		}, nil)
		d.spots.On("Delete", ctx, "spot-1").Return(nil)
		d.store.On("DeleteFile", ctx, "spots/spot-1/img-1.jpg").Return(nil)
		d.store.On("DeleteFile", ctx, "spots/spot-1/img-2.png").Return(errors.New("disk busy"))
		d.cache.On("InvalidateListing", ctx, "spot-1").Return(nil)
		d.cache.On("InvalidateSearches", ctx).Return(nil)

		err := svc.DeleteListing(ctx, "host-1", "spot-1")
		assert.NoError(t, err)
		d.store.AssertExpectations(t)
	})
	t.Run("Delete refused while bookings exist", func(t *testing.T) {
		svc, d := newListingService()
		d.spots.On("GetByID", ctx, "spot-1").Return(activeSpot(), nil)
		d.images.On("ListConfirmed", ctx, "spot-1").Return([]domain.SpotImage{
			{ID: "img-1", StorageKey: "spots/spot-1/img-1.jpg"},
		}, nil)
		d.spots.On("Delete", ctx, "spot-1").Return(domain.ErrListingHasBookings)

		err := svc.DeleteListing(ctx, "host-1", "spot-1")
		assert.ErrorIs(t, err, domain.ErrListingHasBookings)
		d.store.AssertNotCalled(t, "DeleteFile", mock.Anything, mock.Anything)
		d.cache.AssertNotCalled(t, "InvalidateListing", mock.Anything, mock.Anything)
	})
}

func TestListingService_GetListing(t *testing.T) {
	ctx := context.Background()

	t.Run("Cache hit skips the database", func(t *testing.T) {
		svc, d := newListingService()
		cached := &domain.SpotDetail{Spot: *activeSpot(), ReviewCount: 3}
		d.cache.On("GetListing", ctx, "spot-1").Return(cached, true, nil)

		got, err := svc.GetListing(ctx, "spot-1")
		require.NoError(t, err)
		assert.Equal(t, cached, got)
		d.spots.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})

	t.Run("Miss loads and fills the cache", func(t *testing.T) {
		svc, d := newListingService()
		d.cache.On("GetListing", ctx, "spot-1").Return(nil, false, nil)
		d.spots.On("GetByID", ctx, "spot-1").Return(activeSpot(), nil)
		d.images.On("ListConfirmed", ctx, "spot-1").Return([]domain.SpotImage{{ID: "img-1", StorageKey: "spots/spot-1/img-1.jpg"}}, nil)
		d.store.On("GeneratePresignedDownloadURL", ctx, "spots/spot-1/img-1.jpg", time.Hour).Return("http://cdn/img-1", nil)
		d.spots.On("ListAmenities", ctx, "spot-1").Return([]domain.Amenity{{ID: "am-1", Name: "Covered"}}, nil)
		d.spots.On("GetRatingSummary", ctx, "spot-1").Return(4.5, int32(2), nil)
		d.cache.On("SetListing", ctx, mock.AnythingOfType("*domain.SpotDetail")).Return(nil)

		got, err := svc.GetListing(ctx, "spot-1")
		require.NoError(t, err)
		assert.Equal(t, "http://cdn/img-1", got.Images[0].URL)
		assert.Equal(t, int32(2), got.ReviewCount)
		assert.InDelta(t, 4.5, got.AverageRating, 0.001)
		d.cache.AssertExpectations(t)
	})

	t.Run("Cache errors fall through to the database", func(t *testing.T) {
		svc, d := newListingService()
		d.cache.On("GetListing", ctx, "spot-1").Return(nil, false, errors.New("redis down"))
		d.spots.On("GetByID", ctx, "spot-1").Return(nil, domain.ErrSpotNotFound)

		_, err := svc.GetListing(ctx, "spot-1")
		assert.ErrorIs(t, err, domain.ErrSpotNotFound)
	})
}

func TestListingService_SearchListings(t *testing.T) {
	ctx := context.Background()

	t.Run("Applies the default limit", func(t *testing.T) {
		svc, d := newListingService()
		want := domain.SpotFilter{City: "Austin", Limit: domain.DefaultSearchLimit}
		d.cache.On("GetSearch", ctx, want).Return(nil, false, nil)
		d.spots.On("Search", ctx, want).Return([]domain.ParkingSpot{*activeSpot()}, nil)
		d.cache.On("SetSearch", ctx, want, mock.Anything).Return(nil)

		spots, err := svc.SearchListings(ctx, domain.SpotFilter{City: "Austin"})
		require.NoError(t, err)
		assert.Len(t, spots, 1)
	})

	t.Run("Rejects unknown types", func(t *testing.T) {
		svc, _ := newListingService()
		_, err := svc.SearchListings(ctx, domain.SpotFilter{Types: []domain.SpotType{"boat"}})
		assert.ErrorIs(t, err, domain.ErrInvalidSpotType)
	})
}
