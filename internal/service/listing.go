package service

import (
	"context"
	"strings"
	"time"

	"parkspot-backend/internal/domain"
	"parkspot-backend/internal/logger"
	"parkspot-backend/internal/repository"
	"parkspot-backend/internal/storage"
)

// Download URLs embedded in listing pages outlive the listing cache TTL
const imageURLExpiry = time.Hour

type listingService struct {
	spotRepo  repository.SpotRepository
	imageRepo repository.ImageRepository
	eventRepo repository.EventRepository
	store     storage.StorageInterface
	cache     ListingCache
	loc       *time.Location
	now       func() time.Time
}

func NewListingService(
	spotRepo repository.SpotRepository,
	imageRepo repository.ImageRepository,
	eventRepo repository.EventRepository,
	store storage.StorageInterface,
	cache ListingCache,
	loc *time.Location,
) ListingService {
	if loc == nil {
		loc = time.UTC
	}
	return &listingService{
		spotRepo:  spotRepo,
		imageRepo: imageRepo,
		eventRepo: eventRepo,
		store:     store,
		cache:     cacheOrNoop(cache),
		loc:       loc,
		now:       time.Now,
	}
}

func validateSpot(spot *domain.ParkingSpot) error {
	spot.Title = strings.TrimSpace(spot.Title)
	spot.Address = strings.TrimSpace(spot.Address)
	spot.City = strings.TrimSpace(spot.City)
	spot.State = strings.TrimSpace(spot.State)
	spot.ZipCode = strings.TrimSpace(spot.ZipCode)
	if spot.Title == "" || spot.Address == "" || spot.City == "" || spot.State == "" || spot.ZipCode == "" {
		return domain.ErrMissingFields
	}
	if !spot.Type.Valid() {
		return domain.ErrInvalidSpotType
	}
	if spot.PricePerDayCents < 0 {
		return domain.ErrNegativePrice
	}
	if spot.SpacesAvailable < 1 {
		return domain.ErrInvalidSpacesAvailable
	}
	return nil
}

func (s *listingService) CreateListing(ctx context.Context, ownerID string, spot *domain.ParkingSpot, amenityIDs []string) error {
	logger.EnterMethod("listingService.CreateListing", "ownerID", ownerID, "title", spot.Title)

	if ownerID == "" {
		return domain.ErrUnauthenticated
	}
	if err := validateSpot(spot); err != nil {
		logger.ExitMethodRejected("listingService.CreateListing", domain.Message(err), "ownerID", ownerID)
		return err
	}
	spot.ID = ""
	spot.OwnerID = ownerID
	if err := s.spotRepo.Create(ctx, spot, amenityIDs); err != nil {
		return err
	}

	invalidateListing(ctx, s.cache, spot.ID, true)
	logger.ExitMethod("listingService.CreateListing", "spotID", spot.ID)
	return nil
}

func (s *listingService) UpdateListing(ctx context.Context, ownerID string, spot *domain.ParkingSpot, amenityIDs []string) error {
	existing, err := requireOwner(ctx, s.spotRepo, ownerID, spot.ID)
	if err != nil {
		return err
	}
	if err := validateSpot(spot); err != nil {
		return err
	}
	spot.OwnerID = existing.OwnerID
	spot.CreatedAt = existing.CreatedAt
	if err := s.spotRepo.Update(ctx, spot, amenityIDs); err != nil {
		return err
	}

	invalidateListing(ctx, s.cache, spot.ID, true)
	return nil
}

// DeleteListing hard-deletes the spot. Stored image objects are removed on
// a best-effort basis after the rows are gone.
func (s *listingService) DeleteListing(ctx context.Context, ownerID, spotID string) error {
	logger.EnterMethod("listingService.DeleteListing", "ownerID", ownerID, "spotID", spotID)

	if _, err := requireOwner(ctx, s.spotRepo, ownerID, spotID); err != nil {
		return err
	}
	images, err := s.imageRepo.ListConfirmed(ctx, spotID)
	if err != nil {
		return err
	}
	if err := s.spotRepo.Delete(ctx, spotID); err != nil {
		logger.ExitMethodWithError("listingService.DeleteListing", err, "spotID", spotID)
		return err
	}
	for _, img := range images {
		if err := s.store.DeleteFile(ctx, img.StorageKey); err != nil {
			logger.Warn("Failed to delete image object", "spotID", spotID, "key", img.StorageKey, "error", err)
		}
	}

	invalidateListing(ctx, s.cache, spotID, true)
	logger.ExitMethod("listingService.DeleteListing", "spotID", spotID)
	return nil
}

func (s *listingService) GetListing(ctx context.Context, spotID string) (*domain.SpotDetail, error) {
	if detail, ok, err := s.cache.GetListing(ctx, spotID); err != nil {
		logger.Warn("Listing cache read failed", "spotID", spotID, "error", err)
	} else if ok {
		return detail, nil
	}

	spot, err := s.spotRepo.GetByID(ctx, spotID)
	if err != nil {
		return nil, err
	}
	images, err := s.imageRepo.ListConfirmed(ctx, spotID)
	if err != nil {
		return nil, err
	}
	for i := range images {
		url, err := s.store.GeneratePresignedDownloadURL(ctx, images[i].StorageKey, imageURLExpiry)
		if err != nil {
			return nil, domain.Backend(err)
		}
		images[i].URL = url
	}
	amenities, err := s.spotRepo.ListAmenities(ctx, spotID)
	if err != nil {
		return nil, err
	}
	avg, count, err := s.spotRepo.GetRatingSummary(ctx, spotID)
	if err != nil {
		return nil, err
	}

	detail := &domain.SpotDetail{
		Spot:          *spot,
		Images:        images,
		Amenities:     amenities,
		AverageRating: avg,
		ReviewCount:   count,
	}
	if err := s.cache.SetListing(ctx, detail); err != nil {
		logger.Warn("Listing cache write failed", "spotID", spotID, "error", err)
	}
	return detail, nil
}

func (s *listingService) SearchListings(ctx context.Context, filter domain.SpotFilter) ([]domain.ParkingSpot, error) {
	for _, t := range filter.Types {
		if !t.Valid() {
			return nil, domain.ErrInvalidSpotType
		}
	}
	if filter.MaxPriceCents < 0 {
		return nil, domain.ErrNegativePrice
	}
	if filter.Limit <= 0 {
		filter.Limit = domain.DefaultSearchLimit
	}
	if filter.Limit > domain.MaxSearchLimit {
		filter.Limit = domain.MaxSearchLimit
	}

	if spots, ok, err := s.cache.GetSearch(ctx, filter); err != nil {
		logger.Warn("Search cache read failed", "error", err)
	} else if ok {
		return spots, nil
	}

	spots, err := s.spotRepo.Search(ctx, filter)
	if err != nil {
		return nil, err
	}
	if err := s.cache.SetSearch(ctx, filter, spots); err != nil {
		logger.Warn("Search cache write failed", "error", err)
	}
	return spots, nil
}

func (s *listingService) ListMyListings(ctx context.Context, ownerID string) ([]domain.ParkingSpot, error) {
	if ownerID == "" {
		return nil, domain.ErrUnauthenticated
	}
	return s.spotRepo.ListByOwner(ctx, ownerID)
}

func (s *listingService) ListAmenities(ctx context.Context) ([]domain.Amenity, error) {
	return s.spotRepo.ListAllAmenities(ctx)
}

// ListEvents returns active events from today on, in the booking zone
func (s *listingService) ListEvents(ctx context.Context) ([]domain.Event, error) {
	today := s.now().In(s.loc).Format("2006-01-02")
	return s.eventRepo.ListUpcoming(ctx, today)
}
