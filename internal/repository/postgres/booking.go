package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"parkspot-backend/internal/domain"
	"parkspot-backend/internal/logger"
	"parkspot-backend/internal/repository"
)

const bookingColumns = `b.id, b.user_id, b.parking_spot_id, ps.title, to_char(b.booking_date, 'YYYY-MM-DD'),
	to_char(b.check_in_time, 'HH24:MI'), to_char(b.check_out_time, 'HH24:MI'),
	b.price_per_day_cents, b.service_fee_cents, b.total_price_cents, b.status, b.has_review, b.created_at`

type bookingRepository struct {
	db *sql.DB
}

func NewBookingRepository(db *sql.DB) repository.BookingRepository {
	return &bookingRepository{db: db}
}

func scanBooking(row rowScanner, b *domain.Booking) error {
	return row.Scan(&b.ID, &b.UserID, &b.ParkingSpotID, &b.SpotTitle, &b.BookingDate, &b.CheckInTime, &b.CheckOutTime,
		&b.PricePerDayCents, &b.ServiceFeeCents, &b.TotalPriceCents, &b.Status, &b.HasReview, &b.CreatedAt)
}

func (r *bookingRepository) CreateWithinCapacity(ctx context.Context, b *domain.Booking) error {
	logger.EnterMethod("bookingRepository.CreateWithinCapacity", "spotID", b.ParkingSpotID, "date", b.BookingDate, "userID", b.UserID)

	if b.ID == "" {
		b.ID = uuid.New().String()
	}
	b.Status = domain.BookingStatusPending
	b.HasReview = false

	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		// Concurrent bookings for the same spot serialize on this row lock
		var spaces int32
		var active bool
		logger.DatabaseCall("SELECT FOR UPDATE", "parking_spots", "spotID", b.ParkingSpotID)
		err := tx.QueryRowContext(ctx,
			`SELECT spaces_available, is_active FROM parking_spots WHERE id = $1 FOR UPDATE`,
			b.ParkingSpotID).Scan(&spaces, &active)
		if err != nil {
			return mapError(err, domain.ErrSpotUnavailable)
		}
		if !active {
			return domain.ErrSpotUnavailable
		}

		var taken int32
		err = tx.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM bookings WHERE parking_spot_id = $1 AND booking_date = $2 AND status = ANY($3)`,
			b.ParkingSpotID, b.BookingDate, pq.Array(statusStrings(domain.ActiveBookingStatuses))).Scan(&taken)
		if err != nil {
			return domain.Backend(err)
		}
		if taken >= spaces {
			return domain.ErrFullyBooked
		}

		query := `INSERT INTO bookings (id, user_id, parking_spot_id, booking_date, check_in_time, check_out_time,
		          price_per_day_cents, service_fee_cents, total_price_cents, status, has_review)
		          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11) RETURNING created_at`
		logger.DatabaseCall("INSERT", "bookings", "bookingID", b.ID)
		err = tx.QueryRowContext(ctx, query, b.ID, b.UserID, b.ParkingSpotID, b.BookingDate, b.CheckInTime, b.CheckOutTime,
			b.PricePerDayCents, b.ServiceFeeCents, b.TotalPriceCents, b.Status, b.HasReview).Scan(&b.CreatedAt)
		logger.DatabaseResult("INSERT", 1, err, "bookingID", b.ID)
		return mapError(err, nil)
	})

	if err != nil {
		if domain.KindOf(err) == domain.KindBackend {
			logger.ExitMethodWithError("bookingRepository.CreateWithinCapacity", err, "spotID", b.ParkingSpotID)
		} else {
			logger.ExitMethodRejected("bookingRepository.CreateWithinCapacity", domain.Message(err), "spotID", b.ParkingSpotID)
		}
		return err
	}
	logger.ExitMethod("bookingRepository.CreateWithinCapacity", "bookingID", b.ID)
	return nil
}

func (r *bookingRepository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	b := &domain.Booking{}
	query := `SELECT ` + bookingColumns + ` FROM bookings b JOIN parking_spots ps ON ps.id = b.parking_spot_id WHERE b.id = $1`
	if err := scanBooking(r.db.QueryRowContext(ctx, query, id), b); err != nil {
		return nil, mapError(err, domain.ErrBookingNotFound)
	}
	return b, nil
}

func (r *bookingRepository) TransitionStatus(ctx context.Context, id string, from []domain.BookingStatus, to domain.BookingStatus) error {
	query := `UPDATE bookings SET status = $1 WHERE id = $2 AND status = ANY($3)`
	logger.DatabaseCall("UPDATE", "bookings", "bookingID", id, "to", to)
	result, err := r.db.ExecContext(ctx, query, to, id, pq.Array(statusStrings(from)))
	if err != nil {
		logger.DatabaseResult("UPDATE", 0, err, "bookingID", id)
		return domain.Backend(err)
	}
	rows, err := result.RowsAffected()
	logger.DatabaseResult("UPDATE", rows, err, "bookingID", id)
	if err != nil {
		return domain.Backend(err)
	}
	if rows == 0 {
		return domain.ErrBookingStateChanged
	}
	return nil
}

func (r *bookingRepository) ListByUser(ctx context.Context, userID string, statuses []domain.BookingStatus) ([]domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings b JOIN parking_spots ps ON ps.id = b.parking_spot_id WHERE b.user_id = $1`
	return r.listFiltered(ctx, query, userID, statuses)
}

func (r *bookingRepository) ListByHost(ctx context.Context, hostID string, statuses []domain.BookingStatus) ([]domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings b JOIN parking_spots ps ON ps.id = b.parking_spot_id WHERE ps.owner_id = $1`
	return r.listFiltered(ctx, query, hostID, statuses)
}

func (r *bookingRepository) listFiltered(ctx context.Context, query, ownerArg string, statuses []domain.BookingStatus) ([]domain.Booking, error) {
	args := []interface{}{ownerArg}
	if len(statuses) > 0 {
		args = append(args, pq.Array(statusStrings(statuses)))
		query += fmt.Sprintf(" AND b.status = ANY($%d)", len(args))
	}
	query += " ORDER BY b.booking_date DESC, b.created_at DESC"
	return r.list(ctx, query, args...)
}

func (r *bookingRepository) list(ctx context.Context, query string, args ...interface{}) ([]domain.Booking, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, domain.Backend(err)
	}
	defer rows.Close()

	bookings := []domain.Booking{}
	for rows.Next() {
		var b domain.Booking
		if err := scanBooking(rows, &b); err != nil {
			return nil, domain.Backend(err)
		}
		bookings = append(bookings, b)
	}
	return bookings, mapError(rows.Err(), nil)
}

// GetHostEarnings sums the host's share (total minus service fee) over the
// non-cancelled bookings of the host's spots
func (r *bookingRepository) GetHostEarnings(ctx context.Context, hostID string) (*domain.Earnings, error) {
	query := `SELECT
	            COALESCE(SUM(b.total_price_cents - b.service_fee_cents), 0),
	            COALESCE(SUM(b.total_price_cents - b.service_fee_cents) FILTER (WHERE b.status IN ('pending', 'confirmed')), 0),
	            COALESCE(SUM(b.total_price_cents - b.service_fee_cents) FILTER (WHERE b.status = 'completed'), 0)
	          FROM bookings b JOIN parking_spots ps ON ps.id = b.parking_spot_id
	          WHERE ps.owner_id = $1 AND b.status <> 'cancelled'`
	e := &domain.Earnings{}
	if err := r.db.QueryRowContext(ctx, query, hostID).Scan(&e.TotalCents, &e.PendingCents, &e.CompletedCents); err != nil {
		return nil, domain.Backend(err)
	}
	return e, nil
}

func (r *bookingRepository) ListRecentPayouts(ctx context.Context, hostID string, limit int32) ([]domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings b JOIN parking_spots ps ON ps.id = b.parking_spot_id
	          WHERE ps.owner_id = $1 AND b.status = 'completed'
	          ORDER BY b.booking_date DESC LIMIT $2`
	return r.list(ctx, query, hostID, limit)
}

func (r *bookingRepository) CompleteEnded(ctx context.Context, now time.Time) ([]string, error) {
	query := `UPDATE bookings SET status = 'completed'
	          WHERE status = ANY($1) AND (booking_date + check_out_time) < $2::timestamp
	          RETURNING id`
	wallClock := now.Format("2006-01-02 15:04:05")
	logger.DatabaseCall("UPDATE", "bookings", "before", wallClock)
	rows, err := r.db.QueryContext(ctx, query, pq.Array(statusStrings(domain.ActiveBookingStatuses)), wallClock)
	if err != nil {
		logger.DatabaseResult("UPDATE", 0, err)
		return nil, domain.Backend(err)
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, domain.Backend(err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.Backend(err)
	}
	logger.DatabaseResult("UPDATE", int64(len(ids)), nil)
	return ids, nil
}
