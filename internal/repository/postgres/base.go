package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	apperrors "github.com/pharmaflow/pharmacy-api/pkg/errors"
)

// BaseRepository provides common functionality for all repositories
type BaseRepository struct {
	db *sqlx.DB
}

// NewBaseRepository creates a new base repository
func NewBaseRepository(db *sqlx.DB) BaseRepository {
	return BaseRepository{db: db}
}

// GetDB returns the database instance
func (r *BaseRepository) GetDB() *sqlx.DB {
	return r.db
}

// WithTx executes a function within a transaction. The transaction is
// rolled back on error or panic and committed otherwise.
func (r *BaseRepository) WithTx(ctx context.Context, fn func(*sqlx.Tx) error) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return apperrors.Storage("begin transaction", err)
	}

	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return apperrors.Storage("commit transaction", err)
	}
	return nil
}

// Postgres error codes that map to the conflict class.
const (
	pqUniqueViolation     = "23505"
	pqForeignKeyViolation = "23503"
)

// wrapErr translates driver faults into the application error taxonomy,
// tagging storage faults with the failed operation name.
func wrapErr(op string, err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch string(pqErr.Code) {
		case pqUniqueViolation:
			return apperrors.Conflict("value violates a uniqueness constraint", err)
		case pqForeignKeyViolation:
			return apperrors.Conflict("referenced row does not exist", err)
		}
	}
	return apperrors.Storage(op, err)
}

// notFoundOr maps sql.ErrNoRows to an absence error for lookups.
func notFoundOr(op, resource string, err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return apperrors.NotFound(resource)
	}
	return wrapErr(op, err)
}
