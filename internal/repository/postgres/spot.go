package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"parkspot-backend/internal/domain"
	"parkspot-backend/internal/logger"
	"parkspot-backend/internal/repository"
)

const spotColumns = `id, owner_id, title, description, address, city, state, zip_code, type, price_per_day_cents, spaces_available, is_active, created_at`

type spotRepository struct {
	db *sql.DB
}

func NewSpotRepository(db *sql.DB) repository.SpotRepository {
	return &spotRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSpot(row rowScanner, s *domain.ParkingSpot) error {
	return row.Scan(&s.ID, &s.OwnerID, &s.Title, &s.Description, &s.Address, &s.City, &s.State,
		&s.ZipCode, &s.Type, &s.PricePerDayCents, &s.SpacesAvailable, &s.IsActive, &s.CreatedAt)
}

func (r *spotRepository) Create(ctx context.Context, s *domain.ParkingSpot, amenityIDs []string) error {
	logger.EnterMethod("spotRepository.Create", "ownerID", s.OwnerID, "amenities", len(amenityIDs))

	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		query := `INSERT INTO parking_spots (id, owner_id, title, description, address, city, state, zip_code, type, price_per_day_cents, spaces_available, is_active)
		          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12) RETURNING created_at`
		logger.DatabaseCall("INSERT", "parking_spots", "spotID", s.ID)
		err := tx.QueryRowContext(ctx, query, s.ID, s.OwnerID, s.Title, s.Description, s.Address, s.City, s.State,
			s.ZipCode, s.Type, s.PricePerDayCents, s.SpacesAvailable, s.IsActive).Scan(&s.CreatedAt)
		logger.DatabaseResult("INSERT", 1, err, "spotID", s.ID)
		if err != nil {
			return domain.Backend(err)
		}
		return linkAmenities(ctx, tx, s.ID, amenityIDs)
	})

	if err != nil {
		logger.ExitMethodWithError("spotRepository.Create", err, "spotID", s.ID)
		return err
	}
	logger.ExitMethod("spotRepository.Create", "spotID", s.ID)
	return nil
}

func linkAmenities(ctx context.Context, tx *sql.Tx, spotID string, amenityIDs []string) error {
	for _, amenityID := range amenityIDs {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO parking_spot_amenities (parking_spot_id, amenity_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
			spotID, amenityID)
		if err != nil {
			return domain.Backend(err)
		}
	}
	return nil
}

func (r *spotRepository) GetByID(ctx context.Context, id string) (*domain.ParkingSpot, error) {
	s := &domain.ParkingSpot{}
	query := `SELECT ` + spotColumns + ` FROM parking_spots WHERE id = $1`
	if err := scanSpot(r.db.QueryRowContext(ctx, query, id), s); err != nil {
		return nil, mapError(err, domain.ErrSpotNotFound)
	}
	return s, nil
}

func (r *spotRepository) Update(ctx context.Context, s *domain.ParkingSpot, amenityIDs []string) error {
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		query := `UPDATE parking_spots SET title=$1, description=$2, address=$3, city=$4, state=$5, zip_code=$6, type=$7,
		          price_per_day_cents=$8, spaces_available=$9, is_active=$10 WHERE id=$11`
		result, err := tx.ExecContext(ctx, query, s.Title, s.Description, s.Address, s.City, s.State, s.ZipCode, s.Type,
			s.PricePerDayCents, s.SpacesAvailable, s.IsActive, s.ID)
		if err != nil {
			return domain.Backend(err)
		}
		rows, err := result.RowsAffected()
		if err != nil {
			return domain.Backend(err)
		}
		if rows == 0 {
			return domain.ErrSpotNotFound
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM parking_spot_amenities WHERE parking_spot_id = $1`, s.ID); err != nil {
			return domain.Backend(err)
		}
		return linkAmenities(ctx, tx, s.ID, amenityIDs)
	})
}

func (r *spotRepository) Delete(ctx context.Context, id string) error {
	logger.DatabaseCall("DELETE", "parking_spots", "spotID", id)
	result, err := r.db.ExecContext(ctx, `DELETE FROM parking_spots WHERE id = $1`, id)
	if err != nil {
		logger.DatabaseResult("DELETE", 0, err, "spotID", id)
		if isForeignKeyViolation(err) {
			return domain.ErrListingHasBookings
		}
		return mapError(err, domain.ErrSpotNotFound)
	}
	rows, err := result.RowsAffected()
	logger.DatabaseResult("DELETE", rows, err, "spotID", id)
	if err != nil {
		return domain.Backend(err)
	}
	if rows == 0 {
		return domain.ErrSpotNotFound
	}
	return nil
}

func (r *spotRepository) Search(ctx context.Context, f domain.SpotFilter) ([]domain.ParkingSpot, error) {
	query := `SELECT ` + spotColumns + ` FROM parking_spots WHERE is_active = TRUE`
	args := []interface{}{}
	argIdx := 1

	if len(f.Types) > 0 {
		types := make([]string, len(f.Types))
		for i, t := range f.Types {
			types[i] = string(t)
		}
		query += fmt.Sprintf(" AND type = ANY($%d)", argIdx)
		args = append(args, pq.Array(types))
		argIdx++
	}
	if f.MaxPriceCents > 0 {
		query += fmt.Sprintf(" AND price_per_day_cents <= $%d", argIdx)
		args = append(args, f.MaxPriceCents)
		argIdx++
	}
	if city := strings.TrimSpace(f.City); city != "" {
		query += fmt.Sprintf(" AND lower(city) = lower($%d)", argIdx)
		args = append(args, city)
		argIdx++
	}

	limit := f.Limit
	if limit <= 0 {
		limit = domain.DefaultSearchLimit
	}
	if limit > domain.MaxSearchLimit {
		limit = domain.MaxSearchLimit
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d", argIdx)
	args = append(args, limit)

	return r.list(ctx, query, args...)
}

func (r *spotRepository) ListByOwner(ctx context.Context, ownerID string) ([]domain.ParkingSpot, error) {
	query := `SELECT ` + spotColumns + ` FROM parking_spots WHERE owner_id = $1 ORDER BY created_at DESC`
	return r.list(ctx, query, ownerID)
}

func (r *spotRepository) list(ctx context.Context, query string, args ...interface{}) ([]domain.ParkingSpot, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, domain.Backend(err)
	}
	defer rows.Close()

	spots := []domain.ParkingSpot{}
	for rows.Next() {
		var s domain.ParkingSpot
		if err := scanSpot(rows, &s); err != nil {
			return nil, domain.Backend(err)
		}
		spots = append(spots, s)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.Backend(err)
	}
	return spots, nil
}

func (r *spotRepository) ListAmenities(ctx context.Context, spotID string) ([]domain.Amenity, error) {
	query := `SELECT a.id, a.name FROM amenities a
	          JOIN parking_spot_amenities psa ON psa.amenity_id = a.id
	          WHERE psa.parking_spot_id = $1 ORDER BY a.name`
	return r.listAmenities(ctx, query, spotID)
}

func (r *spotRepository) ListAllAmenities(ctx context.Context) ([]domain.Amenity, error) {
	return r.listAmenities(ctx, `SELECT id, name FROM amenities ORDER BY name`)
}

func (r *spotRepository) listAmenities(ctx context.Context, query string, args ...interface{}) ([]domain.Amenity, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, domain.Backend(err)
	}
	defer rows.Close()

	amenities := []domain.Amenity{}
	for rows.Next() {
		var a domain.Amenity
		if err := rows.Scan(&a.ID, &a.Name); err != nil {
			return nil, domain.Backend(err)
		}
		amenities = append(amenities, a)
	}
	return amenities, mapError(rows.Err(), nil)
}

func (r *spotRepository) GetRatingSummary(ctx context.Context, spotID string) (float64, int32, error) {
	var avg float64
	var count int32
	query := `SELECT COALESCE(AVG(rating), 0), COUNT(*) FROM reviews WHERE parking_spot_id = $1`
	if err := r.db.QueryRowContext(ctx, query, spotID).Scan(&avg, &count); err != nil {
		return 0, 0, domain.Backend(err)
	}
	return avg, count, nil
}
