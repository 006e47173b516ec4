package patient

import (
	"context"
	"strings"

	"github.com/pharmaflow/pharmacy-api/internal/model"
	"github.com/pharmaflow/pharmacy-api/internal/repository"
	apperrors "github.com/pharmaflow/pharmacy-api/pkg/errors"
)

// Service exposes patient profiles. Profiles hold denormalized contact
// copies that may be edited without touching the linked account.
type Service struct {
	repo repository.PatientRepository
}

func NewService(repo repository.PatientRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) GetByAccount(ctx context.Context, accountID int64) (*model.Patient, error) {
	return s.repo.GetByAccountID(ctx, accountID)
}

func (s *Service) List(ctx context.Context) ([]*model.Patient, error) {
	return s.repo.List(ctx)
}

func (s *Service) UpdateContact(ctx context.Context, patient *model.Patient) error {
	if strings.TrimSpace(patient.DisplayName) == "" {
		return apperrors.Validation("display name must not be empty")
	}

	updated, err := s.repo.UpdateContact(ctx, patient)
	if err != nil {
		return err
	}
	if !updated {
		return apperrors.NotFound("patient")
	}
	return nil
}
