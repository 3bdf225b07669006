package postgres

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"parkspot-backend/internal/domain"
	"parkspot-backend/internal/logger"
	"parkspot-backend/internal/repository"
)

type reviewRepository struct {
	db *sql.DB
}

func NewReviewRepository(db *sql.DB) repository.ReviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) CreateForBooking(ctx context.Context, rv *domain.Review) error {
	logger.EnterMethod("reviewRepository.CreateForBooking", "bookingID", rv.BookingID, "userID", rv.UserID)

	if rv.ID == "" {
		rv.ID = uuid.New().String()
	}
	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		// The conditional flag flip locks the booking row; a concurrent
		// duplicate finds has_review already true
		result, err := tx.ExecContext(ctx,
			`UPDATE bookings SET has_review = TRUE WHERE id = $1 AND has_review = FALSE AND status = 'completed'`,
			rv.BookingID)
		if err != nil {
			return domain.Backend(err)
		}
		rows, err := result.RowsAffected()
		if err != nil {
			return domain.Backend(err)
		}
		if rows == 0 {
			return domain.ErrAlreadyReviewed
		}

		query := `INSERT INTO reviews (id, booking_id, user_id, parking_spot_id, rating, comment)
		          VALUES ($1, $2, $3, $4, $5, $6) RETURNING created_at`
		logger.DatabaseCall("INSERT", "reviews", "reviewID", rv.ID)
		err = tx.QueryRowContext(ctx, query, rv.ID, rv.BookingID, rv.UserID, rv.ParkingSpotID, rv.Rating, rv.Comment).Scan(&rv.CreatedAt)
		logger.DatabaseResult("INSERT", 1, err, "reviewID", rv.ID)
		if err != nil {
			if isUniqueViolation(err) {
				return domain.ErrAlreadyReviewed
			}
			return domain.Backend(err)
		}
		return nil
	})

	if err != nil {
		logger.ExitMethodWithError("reviewRepository.CreateForBooking", err, "bookingID", rv.BookingID)
		return err
	}
	logger.ExitMethod("reviewRepository.CreateForBooking", "reviewID", rv.ID)
	return nil
}

func (r *reviewRepository) ListBySpot(ctx context.Context, spotID string) ([]domain.Review, error) {
	query := `SELECT id, booking_id, user_id, parking_spot_id, rating, comment, created_at
	          FROM reviews WHERE parking_spot_id = $1 ORDER BY created_at DESC`
	return r.list(ctx, query, spotID)
}

func (r *reviewRepository) ListByHost(ctx context.Context, hostID string) ([]domain.Review, error) {
	query := `SELECT rv.id, rv.booking_id, rv.user_id, rv.parking_spot_id, rv.rating, rv.comment, rv.created_at
	          FROM reviews rv JOIN parking_spots ps ON ps.id = rv.parking_spot_id
	          WHERE ps.owner_id = $1 ORDER BY rv.created_at DESC`
	return r.list(ctx, query, hostID)
}

func (r *reviewRepository) list(ctx context.Context, query string, args ...interface{}) ([]domain.Review, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, domain.Backend(err)
	}
	defer rows.Close()

	reviews := []domain.Review{}
	for rows.Next() {
		var rv domain.Review
		if err := rows.Scan(&rv.ID, &rv.BookingID, &rv.UserID, &rv.ParkingSpotID, &rv.Rating, &rv.Comment, &rv.CreatedAt); err != nil {
			return nil, domain.Backend(err)
		}
		reviews = append(reviews, rv)
	}
	return reviews, mapError(rows.Err(), nil)
}
