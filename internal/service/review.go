package service

import (
	"context"
	"strings"
	"unicode/utf8"

	"parkspot-backend/internal/domain"
	"parkspot-backend/internal/logger"
	"parkspot-backend/internal/repository"
)

type reviewService struct {
	reviewRepo  repository.ReviewRepository
	bookingRepo repository.BookingRepository
	cache       ListingCache
}

func NewReviewService(reviewRepo repository.ReviewRepository, bookingRepo repository.BookingRepository, cache ListingCache) ReviewService {
	return &reviewService{
		reviewRepo:  reviewRepo,
		bookingRepo: bookingRepo,
		cache:       cacheOrNoop(cache),
	}
}

// normalizeComment trims the comment, enforces the minimum length and
// truncates anything past the maximum.
func normalizeComment(comment string) (string, error) {
	comment = strings.TrimSpace(comment)
	if utf8.RuneCountInString(comment) < domain.MinReviewCommentLength {
		return "", domain.ErrCommentTooShort
	}
	if utf8.RuneCountInString(comment) > domain.MaxReviewCommentLength {
		comment = string([]rune(comment)[:domain.MaxReviewCommentLength])
	}
	return comment, nil
}

func (s *reviewService) CreateReview(ctx context.Context, userID, bookingID string, rating int32, comment string) (*domain.Review, error) {
	logger.EnterMethod("reviewService.CreateReview", "userID", userID, "bookingID", bookingID, "rating", rating)

	if userID == "" {
		return nil, domain.ErrUnauthenticated
	}
	if rating < 1 || rating > 5 {
		return nil, domain.ErrInvalidRating
	}
	comment, err := normalizeComment(comment)
	if err != nil {
		return nil, err
	}

	b, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b.UserID != userID {
		logger.ExitMethodRejected("reviewService.CreateReview", "not owner", "userID", userID, "bookingID", bookingID)
		return nil, domain.ErrNotReviewer
	}
	if b.Status != domain.BookingStatusCompleted {
		return nil, domain.ErrNotCompleted
	}
	if b.HasReview {
		return nil, domain.ErrAlreadyReviewed
	}

	review := &domain.Review{
		BookingID:     b.ID,
		UserID:        userID,
		ParkingSpotID: b.ParkingSpotID,
		Rating:        rating,
		Comment:       comment,
	}
	if err := s.reviewRepo.CreateForBooking(ctx, review); err != nil {
		logger.ExitMethodWithError("reviewService.CreateReview", err, "bookingID", bookingID)
		return nil, err
	}

	invalidateListing(ctx, s.cache, b.ParkingSpotID, false)
	logger.ExitMethod("reviewService.CreateReview", "reviewID", review.ID)
	return review, nil
}

func (s *reviewService) ListSpotReviews(ctx context.Context, spotID string) ([]domain.Review, error) {
	return s.reviewRepo.ListBySpot(ctx, spotID)
}
