package service_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"parkspot-backend/internal/domain"
	"parkspot-backend/internal/service"
)

func TestImageService_RequestImageUpload(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		imageRepo := new(MockImageRepo)
		spotRepo := new(MockSpotRepo)
		store := new(MockStorage)
		svc := service.NewImageService(imageRepo, spotRepo, store, nil, 15*time.Minute)

		spotRepo.On("GetByID", ctx, "spot-1").Return(activeSpot(), nil)
		store.On("GeneratePresignedUploadURL", ctx, mock.AnythingOfType("string"), "image/png", 15*time.Minute).
			Return("http://localhost/upload/x", nil)
		imageRepo.On("Create", ctx, mock.AnythingOfType("*domain.SpotImage")).Return(nil)

		before := time.Now()
		img, url, expires, err := svc.RequestImageUpload(ctx, "host-1", "spot-1", "image/png", true)
		require.NoError(t, err)
		assert.Equal(t, "http://localhost/upload/x", url)
		assert.Equal(t, domain.ImageStatusPending, img.Status)
		assert.True(t, strings.HasPrefix(img.StorageKey, "spots/spot-1/"))
		assert.True(t, strings.HasSuffix(img.StorageKey, ".png"))
		assert.True(t, expires.After(before.Add(14*time.Minute)))
	})

	t.Run("Unsupported type", func(t *testing.T) {
		svc := service.NewImageService(new(MockImageRepo), new(MockSpotRepo), new(MockStorage), nil, time.Minute)
		_, _, _, err := svc.RequestImageUpload(ctx, "host-1", "spot-1", "application/pdf", false)
		assert.ErrorIs(t, err, domain.ErrUnsupportedImageType)
	})

	t.Run("Non-owner", func(t *testing.T) {
		spotRepo := new(MockSpotRepo)
		svc := service.NewImageService(new(MockImageRepo), spotRepo, new(MockStorage), nil, time.Minute)
		spotRepo.On("GetByID", ctx, "spot-1").Return(activeSpot(), nil)

		_, _, _, err := svc.RequestImageUpload(ctx, "guest-1", "spot-1", "image/jpeg", false)
		assert.ErrorIs(t, err, domain.ErrNotSpotOwner)
	})
}

func TestImageService_ConfirmImageUpload(t *testing.T) {
	ctx := context.Background()
	pendingImage := func() *domain.SpotImage {
		return &domain.SpotImage{ID: "img-1", ParkingSpotID: "spot-1", StorageKey: "spots/spot-1/img-1.jpg", Status: domain.ImageStatusPending}
	}

	t.Run("Object present", func(t *testing.T) {
		imageRepo := new(MockImageRepo)
		spotRepo := new(MockSpotRepo)
		store := new(MockStorage)
		cache := new(MockCache)
		svc := service.NewImageService(imageRepo, spotRepo, store, cache, time.Minute)

		imageRepo.On("GetByID", ctx, "img-1").Return(pendingImage(), nil)
		spotRepo.On("GetByID", ctx, "spot-1").Return(activeSpot(), nil)
		store.On("FileExists", ctx, "spots/spot-1/img-1.jpg").Return(true, int64(2048), nil)
		imageRepo.On("Confirm", ctx, mock.AnythingOfType("*domain.SpotImage")).Return(nil)
		cache.On("InvalidateListing", ctx, "spot-1").Return(nil)
		cache.On("InvalidateSearches", ctx).Return(nil)

		_, err := svc.ConfirmImageUpload(ctx, "host-1", "img-1")
		assert.NoError(t, err)
		imageRepo.AssertExpectations(t)
		cache.AssertExpectations(t)
	})

	t.Run("Object missing", func(t *testing.T) {
		imageRepo := new(MockImageRepo)
		spotRepo := new(MockSpotRepo)
		store := new(MockStorage)
		svc := service.NewImageService(imageRepo, spotRepo, store, nil, time.Minute)

		imageRepo.On("GetByID", ctx, "img-1").Return(pendingImage(), nil)
		spotRepo.On("GetByID", ctx, "spot-1").Return(activeSpot(), nil)
		store.On("FileExists", ctx, "spots/spot-1/img-1.jpg").Return(false, int64(0), nil)

		_, err := svc.ConfirmImageUpload(ctx, "host-1", "img-1")
		assert.ErrorIs(t, err, domain.ErrImageNotUploaded)
		imageRepo.AssertNotCalled(t, "Confirm", mock.Anything, mock.Anything)
	})
}

func TestImageService_DeleteImage(t *testing.T) {
	ctx := context.Background()
	imageRepo := new(MockImageRepo)
	spotRepo := new(MockSpotRepo)
	store := new(MockStorage)
	svc := service.NewImageService(imageRepo, spotRepo, store, nil, time.Minute)

	imageRepo.On("GetByID", ctx, "img-1").Return(&domain.SpotImage{ID: "img-1", ParkingSpotID: "spot-1", StorageKey: "spots/spot-1/img-1.jpg"}, nil)
	spotRepo.On("GetByID", ctx, "spot-1").Return(activeSpot(), nil)
	store.On("DeleteFile", ctx, "spots/spot-1/img-1.jpg").Return(nil)
	imageRepo.On("Delete", ctx, "img-1").Return(nil)

	assert.NoError(t, svc.DeleteImage(ctx, "host-1", "img-1"))
	store.AssertExpectations(t)
	imageRepo.AssertExpectations(t)
}
