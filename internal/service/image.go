package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"parkspot-backend/internal/domain"
	"parkspot-backend/internal/logger"
	"parkspot-backend/internal/repository"
	"parkspot-backend/internal/storage"
)

var imageExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
}

type imageService struct {
	imageRepo    repository.ImageRepository
	spotRepo     repository.SpotRepository
	store        storage.StorageInterface
	cache        ListingCache
	uploadExpiry time.Duration
	now          func() time.Time
}

func NewImageService(
	imageRepo repository.ImageRepository,
	spotRepo repository.SpotRepository,
	store storage.StorageInterface,
	cache ListingCache,
	uploadExpiry time.Duration,
) ImageService {
	return &imageService{
		imageRepo:    imageRepo,
		spotRepo:     spotRepo,
		store:        store,
		cache:        cacheOrNoop(cache),
		uploadExpiry: uploadExpiry,
		now:          time.Now,
	}
}

func (s *imageService) RequestImageUpload(ctx context.Context, ownerID, spotID, contentType string, isPrimary bool) (*domain.SpotImage, string, time.Time, error) {
	logger.EnterMethod("imageService.RequestImageUpload", "ownerID", ownerID, "spotID", spotID, "contentType", contentType)

	ext, ok := imageExtensions[contentType]
	if !ok {
		return nil, "", time.Time{}, domain.ErrUnsupportedImageType
	}
	if _, err := requireOwner(ctx, s.spotRepo, ownerID, spotID); err != nil {
		logger.ExitMethodRejected("imageService.RequestImageUpload", domain.Message(err), "ownerID", ownerID, "spotID", spotID)
		return nil, "", time.Time{}, err
	}

	img := &domain.SpotImage{
		ID:            uuid.New().String(),
		ParkingSpotID: spotID,
		ContentType:   contentType,
		IsPrimary:     isPrimary,
		Status:        domain.ImageStatusPending,
	}
	img.StorageKey = fmt.Sprintf("spots/%s/%s%s", spotID, img.ID, ext)

	logger.ExternalServiceCall("storage", "GeneratePresignedUploadURL", "key", img.StorageKey)
	uploadURL, err := s.store.GeneratePresignedUploadURL(ctx, img.StorageKey, contentType, s.uploadExpiry)
	logger.ExternalServiceResult("storage", "GeneratePresignedUploadURL", err, "key", img.StorageKey)
	if err != nil {
		return nil, "", time.Time{}, domain.Backend(err)
	}

	if err := s.imageRepo.Create(ctx, img); err != nil {
		logger.ExitMethodWithError("imageService.RequestImageUpload", err, "spotID", spotID)
		return nil, "", time.Time{}, err
	}

	logger.ExitMethod("imageService.RequestImageUpload", "imageID", img.ID)
	return img, uploadURL, s.now().Add(s.uploadExpiry), nil
}

func (s *imageService) ConfirmImageUpload(ctx context.Context, ownerID, imageID string) (*domain.SpotImage, error) {
	logger.EnterMethod("imageService.ConfirmImageUpload", "ownerID", ownerID, "imageID", imageID)

	img, err := s.imageRepo.GetByID(ctx, imageID)
	if err != nil {
		return nil, err
	}
	if _, err := requireOwner(ctx, s.spotRepo, ownerID, img.ParkingSpotID); err != nil {
		return nil, err
	}
	if img.Status == domain.ImageStatusConfirmed {
		return img, nil
	}

	logger.ExternalServiceCall("storage", "FileExists", "key", img.StorageKey)
	exists, size, err := s.store.FileExists(ctx, img.StorageKey)
	logger.ExternalServiceResult("storage", "FileExists", err, "key", img.StorageKey, "exists", exists, "size", size)
	if err != nil {
		return nil, domain.Backend(err)
	}
	if !exists {
		logger.ExitMethodRejected("imageService.ConfirmImageUpload", "object missing", "imageID", imageID)
		return nil, domain.ErrImageNotUploaded
	}

	if err := s.imageRepo.Confirm(ctx, img); err != nil {
		return nil, err
	}

	invalidateListing(ctx, s.cache, img.ParkingSpotID, true)
	logger.ExitMethod("imageService.ConfirmImageUpload", "imageID", imageID)
	return img, nil
}

func (s *imageService) DeleteImage(ctx context.Context, ownerID, imageID string) error {
	img, err := s.imageRepo.GetByID(ctx, imageID)
	if err != nil {
		return err
	}
	if _, err := requireOwner(ctx, s.spotRepo, ownerID, img.ParkingSpotID); err != nil {
		return err
	}

	logger.ExternalServiceCall("storage", "DeleteFile", "key", img.StorageKey)
	err = s.store.DeleteFile(ctx, img.StorageKey)
	logger.ExternalServiceResult("storage", "DeleteFile", err, "key", img.StorageKey)
	if err != nil {
		return domain.Backend(err)
	}
	if err := s.imageRepo.Delete(ctx, imageID); err != nil {
		return err
	}

	invalidateListing(ctx, s.cache, img.ParkingSpotID, true)
	return nil
}
