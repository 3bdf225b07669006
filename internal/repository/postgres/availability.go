package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"parkspot-backend/internal/domain"
	"parkspot-backend/internal/logger"
	"parkspot-backend/internal/repository"
)

const availabilityColumns = `id, parking_spot_id, to_char(date, 'YYYY-MM-DD'), is_available, price_override_cents, notes, created_at`

type availabilityRepository struct {
	db *sql.DB
}

func NewAvailabilityRepository(db *sql.DB) repository.AvailabilityRepository {
	return &availabilityRepository{db: db}
}

func scanAvailability(row rowScanner, a *domain.Availability) error {
	var price sql.NullInt64
	var notes sql.NullString
	if err := row.Scan(&a.ID, &a.ParkingSpotID, &a.Date, &a.IsAvailable, &price, &notes, &a.CreatedAt); err != nil {
		return err
	}
	a.PriceOverrideCents = nil
	if price.Valid {
		a.PriceOverrideCents = &price.Int64
	}
	a.Notes = nil
	if notes.Valid {
		a.Notes = &notes.String
	}
	return nil
}

func (r *availabilityRepository) Create(ctx context.Context, a *domain.Availability) error {
	logger.EnterMethod("availabilityRepository.Create", "spotID", a.ParkingSpotID, "date", a.Date)

	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	query := `INSERT INTO availability (id, parking_spot_id, date, is_available, price_override_cents, notes)
	          VALUES ($1, $2, $3, $4, $5, $6) RETURNING created_at`
	logger.DatabaseCall("INSERT", "availability", "spotID", a.ParkingSpotID, "date", a.Date)
	err := r.db.QueryRowContext(ctx, query, a.ID, a.ParkingSpotID, a.Date, a.IsAvailable, a.PriceOverrideCents, a.Notes).Scan(&a.CreatedAt)
	logger.DatabaseResult("INSERT", 1, err, "availabilityID", a.ID)

	if err != nil {
		if isUniqueViolation(err) {
			logger.ExitMethodRejected("availabilityRepository.Create", "duplicate date", "spotID", a.ParkingSpotID, "date", a.Date)
			return domain.ErrAvailabilityExists
		}
		logger.ExitMethodWithError("availabilityRepository.Create", err, "spotID", a.ParkingSpotID)
		return domain.Backend(err)
	}
	logger.ExitMethod("availabilityRepository.Create", "availabilityID", a.ID)
	return nil
}

func (r *availabilityRepository) GetByID(ctx context.Context, id string) (*domain.Availability, error) {
	a := &domain.Availability{}
	query := `SELECT ` + availabilityColumns + ` FROM availability WHERE id = $1`
	if err := scanAvailability(r.db.QueryRowContext(ctx, query, id), a); err != nil {
		return nil, mapError(err, domain.ErrAvailabilityNotFound)
	}
	return a, nil
}

func (r *availabilityRepository) GetForDate(ctx context.Context, spotID, date string) (*domain.Availability, error) {
	a := &domain.Availability{}
	query := `SELECT ` + availabilityColumns + ` FROM availability WHERE parking_spot_id = $1 AND date = $2`
	err := scanAvailability(r.db.QueryRowContext(ctx, query, spotID, date), a)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, domain.Backend(err)
	}
	return a, nil
}

func (r *availabilityRepository) Update(ctx context.Context, a *domain.Availability) error {
	query := `UPDATE availability SET date = $1, is_available = $2, price_override_cents = $3, notes = $4 WHERE id = $5`
	result, err := r.db.ExecContext(ctx, query, a.Date, a.IsAvailable, a.PriceOverrideCents, a.Notes, a.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrAvailabilityExists
		}
		return domain.Backend(err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return domain.Backend(err)
	}
	if rows == 0 {
		return domain.ErrAvailabilityNotFound
	}
	return nil
}

func (r *availabilityRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM availability WHERE id = $1`, id)
	if err != nil {
		return domain.Backend(err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return domain.Backend(err)
	}
	if rows == 0 {
		return domain.ErrAvailabilityNotFound
	}
	return nil
}

// ListBySpot returns overrides ordered by date. Empty from/to leave that
// side of the range open.
func (r *availabilityRepository) ListBySpot(ctx context.Context, spotID, from, to string) ([]domain.Availability, error) {
	query := `SELECT ` + availabilityColumns + ` FROM availability WHERE parking_spot_id = $1`
	args := []interface{}{spotID}
	if from != "" {
		args = append(args, from)
		query += fmt.Sprintf(" AND date >= $%d", len(args))
	}
	if to != "" {
		args = append(args, to)
		query += fmt.Sprintf(" AND date <= $%d", len(args))
	}
	query += " ORDER BY date"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, domain.Backend(err)
	}
	defer rows.Close()

	list := []domain.Availability{}
	for rows.Next() {
		var a domain.Availability
		if err := scanAvailability(rows, &a); err != nil {
			return nil, domain.Backend(err)
		}
		list = append(list, a)
	}
	return list, mapError(rows.Err(), nil)
}
