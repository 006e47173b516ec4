package postgres

import (
	"context"

	"github.com/pharmaflow/pharmacy-api/internal/model"
	"github.com/pharmaflow/pharmacy-api/internal/repository"
)

type formulaRepository struct {
	BaseRepository
}

func NewFormulaRepository(base BaseRepository) repository.FormulaRepository {
	return &formulaRepository{base}
}

func (r *formulaRepository) List(ctx context.Context) ([]*model.Formula, error) {
	query := `
		SELECT id, name, description, price
		FROM formulas
		ORDER BY name ASC
	`
	var formulas []*model.Formula
	if err := r.db.SelectContext(ctx, &formulas, query); err != nil {
		return nil, wrapErr("list formulas", err)
	}
	return formulas, nil
}

func (r *formulaRepository) Get(ctx context.Context, id int64) (*model.Formula, error) {
	query := `SELECT id, name, description, price FROM formulas WHERE id = $1`

	var formula model.Formula
	if err := r.db.GetContext(ctx, &formula, query, id); err != nil {
		return nil, notFoundOr("get formula", "formula", err)
	}
	return &formula, nil
}

func (r *formulaRepository) Insert(ctx context.Context, formula *model.Formula) (int64, error) {
	query := `
		INSERT INTO formulas (name, description, price)
		VALUES ($1, $2, $3)
		RETURNING id
	`
	var id int64
	err := r.db.QueryRowxContext(ctx, query,
		formula.Name,
		formula.Description,
		formula.Price,
	).Scan(&id)
	if err != nil {
		return 0, wrapErr("insert formula", err)
	}

	formula.ID = id
	return id, nil
}

func (r *formulaRepository) Update(ctx context.Context, formula *model.Formula) (bool, error) {
	query := `
		UPDATE formulas
		SET name = $1, description = $2, price = $3
		WHERE id = $4
	`
	result, err := r.db.ExecContext(ctx, query,
		formula.Name,
		formula.Description,
		formula.Price,
		formula.ID,
	)
	if err != nil {
		return false, wrapErr("update formula", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, wrapErr("update formula", err)
	}
	return rows > 0, nil
}

func (r *formulaRepository) Delete(ctx context.Context, id int64) (bool, error) {
	query := `DELETE FROM formulas WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return false, wrapErr("delete formula", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, wrapErr("delete formula", err)
	}
	return rows > 0, nil
}
