package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/pharmaflow/pharmacy-api/internal/model"
)

// TxManager opens a transactional scope. The function owns the scope:
// returning nil commits, returning an error (or panicking) rolls back.
type TxManager interface {
	WithTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error
}

type AccountRepository interface {
	// GetByEmail returns the full account row, password hash included.
	GetByEmail(ctx context.Context, email string) (*model.Account, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	// CreateTx inserts within the caller's transaction and returns the
	// generated id.
	CreateTx(ctx context.Context, tx *sqlx.Tx, account *model.Account) (int64, error)
	UpdatePassword(ctx context.Context, email, passwordHash string) (bool, error)
}

type PatientRepository interface {
	GetByAccountID(ctx context.Context, accountID int64) (*model.Patient, error)
	List(ctx context.Context) ([]*model.Patient, error)
	CreateTx(ctx context.Context, tx *sqlx.Tx, patient *model.Patient) (int64, error)
	// UpdateContact edits the denormalized display copies; the linked
	// account is left untouched.
	UpdateContact(ctx context.Context, patient *model.Patient) (bool, error)
}

type FormulaRepository interface {
	List(ctx context.Context) ([]*model.Formula, error)
	Get(ctx context.Context, id int64) (*model.Formula, error)
	Insert(ctx context.Context, formula *model.Formula) (int64, error)
	Update(ctx context.Context, formula *model.Formula) (bool, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

type OrderRepository interface {
	Insert(ctx context.Context, order *model.Order) (int64, error)
	ListByPatient(ctx context.Context, patientID int64) ([]*model.OrderView, error)
	ListAll(ctx context.Context) ([]*model.OrderView, error)
	UpdateStatus(ctx context.Context, id int64, status model.OrderStatus) (bool, error)
}
