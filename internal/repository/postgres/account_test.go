package postgres

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pharmaflow/pharmacy-api/internal/model"
	apperrors "github.com/pharmaflow/pharmacy-api/pkg/errors"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return sqlx.NewDb(db, "sqlmock"), mock
}

func TestAccountGetByEmail(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAccountRepository(NewBaseRepository(db))

	rows := sqlmock.NewRows([]string{"id", "email", "password_hash", "display_name", "phone", "role"}).
		AddRow(int64(7), "ana@example.com", "$2a$10$hash", "Ana", "555-0101", "patient")
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, email, password_hash, display_name, phone, role")).
		WithArgs("ana@example.com").
		WillReturnRows(rows)

	account, err := repo.GetByEmail(context.Background(), "ana@example.com")
	require.NoError(t, err)
	assert.Equal(t, int64(7), account.ID)
	assert.Equal(t, "$2a$10$hash", account.PasswordHash)
	assert.Equal(t, model.RolePatient, account.Role)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountGetByEmailUnknownReturnsAbsence(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAccountRepository(NewBaseRepository(db))

	mock.ExpectQuery("SELECT id, email").
		WithArgs("nobody@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	account, err := repo.GetByEmail(context.Background(), "nobody@example.com")
	assert.Nil(t, account)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestAccountCreateTxReturnsGeneratedID(t *testing.T) {
	db, mock := newMockDB(t)
	base := NewBaseRepository(db)
	repo := NewAccountRepository(base)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO accounts")).
		WithArgs("ana@example.com", "$2a$10$hash", "Ana", "555-0101", model.RolePatient).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(12)))
	mock.ExpectCommit()

	account := &model.Account{
		Email:        "ana@example.com",
		PasswordHash: "$2a$10$hash",
		DisplayName:  "Ana",
		Phone:        "555-0101",
		Role:         model.RolePatient,
	}

	err := base.WithTx(context.Background(), func(tx *sqlx.Tx) error {
		id, err := repo.CreateTx(context.Background(), tx, account)
		if err != nil {
			return err
		}
		assert.Equal(t, int64(12), id)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, int64(12), account.ID)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountCreateTxDuplicateEmailIsConflict(t *testing.T) {
	db, mock := newMockDB(t)
	base := NewBaseRepository(db)
	repo := NewAccountRepository(base)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO accounts")).
		WillReturnError(&pq.Error{Code: "23505"})
	mock.ExpectRollback()

	err := base.WithTx(context.Background(), func(tx *sqlx.Tx) error {
		_, err := repo.CreateTx(context.Background(), tx, &model.Account{
			Email: "ana@example.com",
			Role:  model.RolePatient,
		})
		return err
	})
	assert.True(t, apperrors.IsConflict(err))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountUpdatePassword(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAccountRepository(NewBaseRepository(db))

	mock.ExpectExec(regexp.QuoteMeta("UPDATE accounts SET password_hash = $1 WHERE email = $2")).
		WithArgs("$2a$10$newhash", "ana@example.com").
		WillReturnResult(sqlmock.NewResult(0, 1))

	ok, err := repo.UpdatePassword(context.Background(), "ana@example.com", "$2a$10$newhash")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestAccountUpdatePasswordUnknownEmail(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAccountRepository(NewBaseRepository(db))

	mock.ExpectExec("UPDATE accounts SET password_hash").
		WithArgs("$2a$10$newhash", "nobody@example.com").
		WillReturnResult(sqlmock.NewResult(0, 0))

	ok, err := repo.UpdatePassword(context.Background(), "nobody@example.com", "$2a$10$newhash")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestEnsureAdminAccountIsIdempotent(t *testing.T) {
	db, mock := newMockDB(t)

	// Second run hits ON CONFLICT DO NOTHING and affects zero rows.
	mock.ExpectExec(regexp.QuoteMeta("ON CONFLICT (email) DO NOTHING")).
		WithArgs("admin", "$2a$10$hash", "Administrator", model.RoleAdmin).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("ON CONFLICT (email) DO NOTHING")).
		WithArgs("admin", "$2a$10$hash", "Administrator", model.RoleAdmin).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, EnsureAdminAccount(context.Background(), db, "admin", "$2a$10$hash", "Administrator"))
	require.NoError(t, EnsureAdminAccount(context.Background(), db, "admin", "$2a$10$hash", "Administrator"))

	assert.NoError(t, mock.ExpectationsWereMet())
}
