package order

import (
	"context"
	"strings"

	"github.com/pharmaflow/pharmacy-api/internal/model"
	"github.com/pharmaflow/pharmacy-api/internal/repository"
	apperrors "github.com/pharmaflow/pharmacy-api/pkg/errors"
)

// Service validates and creates orders and performs status transitions.
type Service struct {
	repo repository.OrderRepository
}

func NewService(repo repository.OrderRepository) *Service {
	return &Service{repo: repo}
}

// CreateCatalogOrder places an order for a catalog formula.
func (s *Service) CreateCatalogOrder(ctx context.Context, patientID, formulaID int64,
	quantity int, unit, notes string) (*model.Order, error) {
	if quantity <= 0 {
		return nil, apperrors.Validation("quantity must be greater than zero")
	}

	order := &model.Order{
		PatientID: patientID,
		FormulaID: &formulaID,
		Quantity:  quantity,
		Unit:      unit,
		Notes:     notes,
		Status:    model.OrderStatusPending,
	}
	if _, err := s.repo.Insert(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

// CreateCustomOrder places an order for a custom compounded formula.
func (s *Service) CreateCustomOrder(ctx context.Context, patientID int64, customName string,
	quantity int, unit, notes string) (*model.Order, error) {
	if quantity <= 0 {
		return nil, apperrors.Validation("quantity must be greater than zero")
	}
	customName = strings.TrimSpace(customName)
	if customName == "" {
		return nil, apperrors.Validation("custom formula name must not be empty")
	}

	order := &model.Order{
		PatientID:         patientID,
		CustomFormulaName: &customName,
		Quantity:          quantity,
		Unit:              unit,
		Notes:             notes,
		Status:            model.OrderStatusPending,
	}
	if _, err := s.repo.Insert(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

// ListByPatient returns a patient's orders, most recent first.
func (s *Service) ListByPatient(ctx context.Context, patientID int64) ([]*model.OrderView, error) {
	return s.repo.ListByPatient(ctx, patientID)
}

// ListAll returns every order, most recent first.
func (s *Service) ListAll(ctx context.Context) ([]*model.OrderView, error) {
	return s.repo.ListAll(ctx)
}

// SetStatus moves an order to any recognized state. The prior state is
// not consulted; staff may correct a status freely.
func (s *Service) SetStatus(ctx context.Context, orderID int64, status string) error {
	next := model.OrderStatus(strings.TrimSpace(status))
	if next == "" {
		return apperrors.Validation("status must not be empty")
	}
	if !next.Valid() {
		return apperrors.Validation("unrecognized order status")
	}

	updated, err := s.repo.UpdateStatus(ctx, orderID, next)
	if err != nil {
		return err
	}
	if !updated {
		return apperrors.NotFound("order")
	}
	return nil
}
