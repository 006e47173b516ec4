package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/pharmaflow/pharmacy-api/internal/model"
	"github.com/pharmaflow/pharmacy-api/internal/repository"
)

type patientRepository struct {
	BaseRepository
}

func NewPatientRepository(base BaseRepository) repository.PatientRepository {
	return &patientRepository{base}
}

func (r *patientRepository) GetByAccountID(ctx context.Context, accountID int64) (*model.Patient, error) {
	query := `
		SELECT id, account_id, display_name, phone, email
		FROM patients
		WHERE account_id = $1
	`
	var patient model.Patient
	err := r.db.GetContext(ctx, &patient, query, accountID)
	if err != nil {
		return nil, notFoundOr("get patient by account", "patient", err)
	}
	return &patient, nil
}

func (r *patientRepository) List(ctx context.Context) ([]*model.Patient, error) {
	query := `
		SELECT id, account_id, display_name, phone, email
		FROM patients
		ORDER BY display_name
	`
	var patients []*model.Patient
	if err := r.db.SelectContext(ctx, &patients, query); err != nil {
		return nil, wrapErr("list patients", err)
	}
	return patients, nil
}

func (r *patientRepository) CreateTx(ctx context.Context, tx *sqlx.Tx, patient *model.Patient) (int64, error) {
	query := `
		INSERT INTO patients (account_id, display_name, phone, email)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	var id int64
	err := tx.QueryRowxContext(ctx, query,
		patient.AccountID,
		patient.DisplayName,
		patient.Phone,
		patient.Email,
	).Scan(&id)
	if err != nil {
		return 0, wrapErr("insert patient", err)
	}

	patient.ID = id
	return id, nil
}

func (r *patientRepository) UpdateContact(ctx context.Context, patient *model.Patient) (bool, error) {
	query := `
		UPDATE patients
		SET display_name = $1, phone = $2, email = $3
		WHERE id = $4
	`
	result, err := r.db.ExecContext(ctx, query,
		patient.DisplayName,
		patient.Phone,
		patient.Email,
		patient.ID,
	)
	if err != nil {
		return false, wrapErr("update patient contact", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, wrapErr("update patient contact", err)
	}
	return rows > 0, nil
}
