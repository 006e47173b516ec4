package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/pharmaflow/pharmacy-api/internal/model"
	"github.com/pharmaflow/pharmacy-api/internal/repository"
)

type orderRepository struct {
	BaseRepository
}

func NewOrderRepository(base BaseRepository) repository.OrderRepository {
	return &orderRepository{base}
}

// orderRow is the raw join row before display-name resolution.
type orderRow struct {
	ID                int64          `db:"id"`
	PatientID         int64          `db:"patient_id"`
	PatientName       string         `db:"patient_name"`
	FormulaName       sql.NullString `db:"formula_name"`
	CustomFormulaName sql.NullString `db:"custom_formula_name"`
	Quantity          int            `db:"quantity"`
	Unit              string         `db:"unit"`
	Notes             string         `db:"notes"`
	CreatedAt         time.Time      `db:"created_at"`
	Status            string         `db:"status"`
}

const orderViewSelect = `
	SELECT o.id, o.patient_id, pat.display_name AS patient_name,
	       f.name AS formula_name, o.custom_formula_name,
	       o.quantity, o.unit, o.notes, o.created_at, o.status
	FROM orders o
	JOIN patients pat ON pat.id = o.patient_id
	LEFT JOIN formulas f ON f.id = o.formula_id
`

func (r *orderRepository) Insert(ctx context.Context, order *model.Order) (int64, error) {
	query := `
		INSERT INTO orders (patient_id, formula_id, custom_formula_name,
			quantity, unit, notes, created_at, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`
	order.CreatedAt = time.Now()

	var id int64
	err := r.db.QueryRowxContext(ctx, query,
		order.PatientID,
		order.FormulaID,
		order.CustomFormulaName,
		order.Quantity,
		order.Unit,
		order.Notes,
		order.CreatedAt,
		order.Status,
	).Scan(&id)
	if err != nil {
		return 0, wrapErr("insert order", err)
	}

	order.ID = id
	return id, nil
}

func (r *orderRepository) ListByPatient(ctx context.Context, patientID int64) ([]*model.OrderView, error) {
	query := orderViewSelect + `
		WHERE o.patient_id = $1
		ORDER BY o.created_at DESC, o.id DESC
	`
	var rows []orderRow
	if err := r.db.SelectContext(ctx, &rows, query, patientID); err != nil {
		return nil, wrapErr("list orders by patient", err)
	}
	return toOrderViews(rows), nil
}

func (r *orderRepository) ListAll(ctx context.Context) ([]*model.OrderView, error) {
	query := orderViewSelect + `
		ORDER BY o.created_at DESC, o.id DESC
	`
	var rows []orderRow
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, wrapErr("list orders", err)
	}
	return toOrderViews(rows), nil
}

func (r *orderRepository) UpdateStatus(ctx context.Context, id int64, status model.OrderStatus) (bool, error) {
	query := `UPDATE orders SET status = $1 WHERE id = $2`

	result, err := r.db.ExecContext(ctx, query, status, id)
	if err != nil {
		return false, wrapErr("update order status", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, wrapErr("update order status", err)
	}
	return rows > 0, nil
}

func toOrderViews(rows []orderRow) []*model.OrderView {
	views := make([]*model.OrderView, 0, len(rows))
	for _, row := range rows {
		views = append(views, &model.OrderView{
			ID:          row.ID,
			PatientID:   row.PatientID,
			PatientName: row.PatientName,
			FormulaName: model.ResolveFormulaName(row.FormulaName.String, row.CustomFormulaName.String),
			Quantity:    row.Quantity,
			Unit:        row.Unit,
			Notes:       row.Notes,
			CreatedAt:   row.CreatedAt,
			Status:      model.OrderStatus(row.Status),
		})
	}
	return views
}
