package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/pharmaflow/pharmacy-api/internal/model"
	"github.com/pharmaflow/pharmacy-api/internal/repository"
)

type accountRepository struct {
	BaseRepository
}

func NewAccountRepository(base BaseRepository) repository.AccountRepository {
	return &accountRepository{base}
}

func (r *accountRepository) GetByEmail(ctx context.Context, email string) (*model.Account, error) {
	query := `
		SELECT id, email, password_hash, display_name, phone, role
		FROM accounts
		WHERE email = $1
	`
	var account model.Account
	err := r.db.GetContext(ctx, &account, query, email)
	if err != nil {
		return nil, notFoundOr("get account by email", "account", err)
	}
	return &account, nil
}

func (r *accountRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM accounts WHERE email = $1)`

	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, email); err != nil {
		return false, wrapErr("check account email", err)
	}
	return exists, nil
}

func (r *accountRepository) CreateTx(ctx context.Context, tx *sqlx.Tx, account *model.Account) (int64, error) {
	query := `
		INSERT INTO accounts (email, password_hash, display_name, phone, role)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	var id int64
	err := tx.QueryRowxContext(ctx, query,
		account.Email,
		account.PasswordHash,
		account.DisplayName,
		account.Phone,
		account.Role,
	).Scan(&id)
	if err != nil {
		return 0, wrapErr("insert account", err)
	}

	account.ID = id
	return id, nil
}

func (r *accountRepository) UpdatePassword(ctx context.Context, email, passwordHash string) (bool, error) {
	query := `UPDATE accounts SET password_hash = $1 WHERE email = $2`

	result, err := r.db.ExecContext(ctx, query, passwordHash, email)
	if err != nil {
		return false, wrapErr("update account password", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, wrapErr("update account password", err)
	}
	return rows > 0, nil
}
