package service

import (
	"context"

	"parkspot-backend/internal/domain"
	"parkspot-backend/internal/logger"
	"parkspot-backend/internal/repository"
	"parkspot-backend/internal/utils"
)

type availabilityService struct {
	availabilityRepo repository.AvailabilityRepository
	spotRepo         repository.SpotRepository
	cache            ListingCache
}

func NewAvailabilityService(availabilityRepo repository.AvailabilityRepository, spotRepo repository.SpotRepository, cache ListingCache) AvailabilityService {
	return &availabilityService{
		availabilityRepo: availabilityRepo,
		spotRepo:         spotRepo,
		cache:            cacheOrNoop(cache),
	}
}

// requireOwner loads the spot and checks that ownerID owns it
func requireOwner(ctx context.Context, spots repository.SpotRepository, ownerID, spotID string) (*domain.ParkingSpot, error) {
	if ownerID == "" {
		return nil, domain.ErrUnauthenticated
	}
	spot, err := spots.GetByID(ctx, spotID)
	if err != nil {
		return nil, err
	}
	if spot.OwnerID != ownerID {
		return nil, domain.ErrNotSpotOwner
	}
	return spot, nil
}

func validateAvailability(a *domain.Availability) error {
	d, err := utils.ParseDate(a.Date)
	if err != nil {
		return domain.ErrInvalidDate
	}
	a.Date = d.String()
	if a.PriceOverrideCents != nil && *a.PriceOverrideCents < 0 {
		return domain.ErrNegativePrice
	}
	return nil
}

func (s *availabilityService) CreateAvailability(ctx context.Context, ownerID string, a *domain.Availability) error {
	logger.EnterMethod("availabilityService.CreateAvailability", "ownerID", ownerID, "spotID", a.ParkingSpotID, "date", a.Date)

	if err := validateAvailability(a); err != nil {
		return err
	}
	if _, err := requireOwner(ctx, s.spotRepo, ownerID, a.ParkingSpotID); err != nil {
		logger.ExitMethodRejected("availabilityService.CreateAvailability", domain.Message(err), "ownerID", ownerID)
		return err
	}
	if err := s.availabilityRepo.Create(ctx, a); err != nil {
		return err
	}

	invalidateListing(ctx, s.cache, a.ParkingSpotID, false)
	logger.ExitMethod("availabilityService.CreateAvailability", "availabilityID", a.ID)
	return nil
}

// UpdateAvailability rewrites an existing override. The row's spot is taken
// from storage, never from the caller.
func (s *availabilityService) UpdateAvailability(ctx context.Context, ownerID string, a *domain.Availability) error {
	if err := validateAvailability(a); err != nil {
		return err
	}
	existing, err := s.availabilityRepo.GetByID(ctx, a.ID)
	if err != nil {
		return err
	}
	if _, err := requireOwner(ctx, s.spotRepo, ownerID, existing.ParkingSpotID); err != nil {
		return err
	}
	a.ParkingSpotID = existing.ParkingSpotID
	a.CreatedAt = existing.CreatedAt
	if err := s.availabilityRepo.Update(ctx, a); err != nil {
		return err
	}

	invalidateListing(ctx, s.cache, a.ParkingSpotID, false)
	return nil
}

func (s *availabilityService) DeleteAvailability(ctx context.Context, ownerID, availabilityID string) error {
	existing, err := s.availabilityRepo.GetByID(ctx, availabilityID)
	if err != nil {
		return err
	}
	if _, err := requireOwner(ctx, s.spotRepo, ownerID, existing.ParkingSpotID); err != nil {
		return err
	}
	if err := s.availabilityRepo.Delete(ctx, availabilityID); err != nil {
		return err
	}

	invalidateListing(ctx, s.cache, existing.ParkingSpotID, false)
	return nil
}

func (s *availabilityService) ListAvailability(ctx context.Context, ownerID, spotID, from, to string) ([]domain.Availability, error) {
	if _, err := requireOwner(ctx, s.spotRepo, ownerID, spotID); err != nil {
		return nil, err
	}
	for _, bound := range []string{from, to} {
		if bound == "" {
			continue
		}
		if _, err := utils.ParseDate(bound); err != nil {
			return nil, domain.ErrInvalidDate
		}
	}
	return s.availabilityRepo.ListBySpot(ctx, spotID, from, to)
}
