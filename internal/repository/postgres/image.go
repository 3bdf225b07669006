package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"parkspot-backend/internal/domain"
	"parkspot-backend/internal/logger"
	"parkspot-backend/internal/repository"
)

const imageColumns = `id, parking_spot_id, storage_key, content_type, is_primary, status, created_at`

type imageRepository struct {
	db *sql.DB
}

func NewImageRepository(db *sql.DB) repository.ImageRepository {
	return &imageRepository{db: db}
}

func scanImage(row rowScanner, img *domain.SpotImage) error {
	return row.Scan(&img.ID, &img.ParkingSpotID, &img.StorageKey, &img.ContentType, &img.IsPrimary, &img.Status, &img.CreatedAt)
}

// Create inserts a new image record (pending until the upload is confirmed)
func (r *imageRepository) Create(ctx context.Context, img *domain.SpotImage) error {
	if img.ID == "" {
		img.ID = uuid.New().String()
	}
	if img.Status == "" {
		img.Status = domain.ImageStatusPending
	}
	query := `INSERT INTO parking_spot_images (id, parking_spot_id, storage_key, content_type, is_primary, status)
	          VALUES ($1, $2, $3, $4, $5, $6) RETURNING created_at`
	err := r.db.QueryRowContext(ctx, query, img.ID, img.ParkingSpotID, img.StorageKey, img.ContentType, img.IsPrimary, img.Status).Scan(&img.CreatedAt)
	return mapError(err, nil)
}

func (r *imageRepository) GetByID(ctx context.Context, id string) (*domain.SpotImage, error) {
	img := &domain.SpotImage{}
	query := `SELECT ` + imageColumns + ` FROM parking_spot_images WHERE id = $1`
	if err := scanImage(r.db.QueryRowContext(ctx, query, id), img); err != nil {
		return nil, mapError(err, domain.ErrImageNotFound)
	}
	return img, nil
}

// ListConfirmed retrieves all confirmed images for a spot, primary first
func (r *imageRepository) ListConfirmed(ctx context.Context, spotID string) ([]domain.SpotImage, error) {
	query := `SELECT ` + imageColumns + ` FROM parking_spot_images
	          WHERE parking_spot_id = $1 AND status = 'confirmed'
	          ORDER BY is_primary DESC, created_at ASC`
	return r.list(ctx, query, spotID)
}

func (r *imageRepository) list(ctx context.Context, query string, args ...interface{}) ([]domain.SpotImage, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, domain.Backend(err)
	}
	defer rows.Close()

	images := []domain.SpotImage{}
	for rows.Next() {
		var img domain.SpotImage
		if err := scanImage(rows, &img); err != nil {
			return nil, domain.Backend(err)
		}
		images = append(images, img)
	}
	return images, mapError(rows.Err(), nil)
}

// Confirm transitions a pending image to confirmed status
func (r *imageRepository) Confirm(ctx context.Context, img *domain.SpotImage) error {
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		if img.IsPrimary {
			_, err := tx.ExecContext(ctx,
				`UPDATE parking_spot_images SET is_primary = FALSE WHERE parking_spot_id = $1 AND id <> $2`,
				img.ParkingSpotID, img.ID)
			if err != nil {
				return domain.Backend(err)
			}
		}

		result, err := tx.ExecContext(ctx,
			`UPDATE parking_spot_images SET status = 'confirmed' WHERE id = $1 AND status = 'pending'`, img.ID)
		if err != nil {
			return domain.Backend(err)
		}
		rows, err := result.RowsAffected()
		if err != nil {
			return domain.Backend(err)
		}
		if rows == 0 {
			return domain.ErrImageNotFound
		}
		img.Status = domain.ImageStatusConfirmed
		return nil
	})
}

func (r *imageRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM parking_spot_images WHERE id = $1`, id)
	if err != nil {
		return domain.Backend(err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return domain.Backend(err)
	}
	if rows == 0 {
		return domain.ErrImageNotFound
	}
	return nil
}

// DeletePendingBefore removes pending images created before cutoff and
// returns them so their objects can be cleaned up
func (r *imageRepository) DeletePendingBefore(ctx context.Context, cutoff time.Time) ([]domain.SpotImage, error) {
	query := `DELETE FROM parking_spot_images WHERE status = 'pending' AND created_at < $1 RETURNING ` + imageColumns
	logger.DatabaseCall("DELETE", "parking_spot_images", "cutoff", cutoff)
	images, err := r.list(ctx, query, cutoff)
	logger.DatabaseResult("DELETE", int64(len(images)), err)
	return images, err
}
