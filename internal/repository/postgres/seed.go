package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/pharmaflow/pharmacy-api/internal/model"
)

// EnsureAdminAccount provisions the bootstrap admin identity. The insert
// is idempotent: an existing row with the same email is left untouched,
// so re-running initialization never overwrites a changed password.
func EnsureAdminAccount(ctx context.Context, db *sqlx.DB, email, passwordHash, displayName string) error {
	query := `
		INSERT INTO accounts (email, password_hash, display_name, phone, role)
		VALUES ($1, $2, $3, '', $4)
		ON CONFLICT (email) DO NOTHING
	`
	_, err := db.ExecContext(ctx, query, email, passwordHash, displayName, model.RoleAdmin)
	if err != nil {
		return wrapErr("seed admin account", err)
	}
	return nil
}
