package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"parkspot-backend/internal/domain"
)

const (
	pqUniqueViolation           = "23505"
	pqForeignKeyViolation       = "23503"
	pqInvalidTextRepresentation = "22P02"
)

// mapError converts driver errors into domain errors. sql.ErrNoRows and ids
// Postgres cannot parse as a UUID become notFound; everything else is a
// backend failure.
func mapError(err error, notFound error) error {
	if err == nil {
		return nil
	}
	if notFound != nil && (errors.Is(err, sql.ErrNoRows) || hasCode(err, pqInvalidTextRepresentation)) {
		return notFound
	}
	return domain.Backend(err)
}

func hasCode(err error, code pq.ErrorCode) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == code
}

func isUniqueViolation(err error) bool {
	return hasCode(err, pqUniqueViolation)
}

func isForeignKeyViolation(err error) bool {
	return hasCode(err, pqForeignKeyViolation)
}

// withTx runs fn in a transaction, committing only when fn succeeds
func withTx(ctx context.Context, db *sql.DB, fn func(tx *sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return domain.Backend(err)
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return domain.Backend(err)
	}
	return nil
}

func statusStrings(statuses []domain.BookingStatus) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}
