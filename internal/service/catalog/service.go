package catalog

import (
	"context"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/pharmaflow/pharmacy-api/internal/model"
	"github.com/pharmaflow/pharmacy-api/internal/repository"
	apperrors "github.com/pharmaflow/pharmacy-api/pkg/errors"
)

const (
	listCacheKey = "formulas:list"
	listCacheTTL = 30 * time.Second
)

// Service manages the formula catalog.
type Service struct {
	repo  repository.FormulaRepository
	cache *gocache.Cache
}

func NewService(repo repository.FormulaRepository) *Service {
	return &Service{
		repo:  repo,
		cache: gocache.New(listCacheTTL, time.Minute),
	}
}

// List returns all formulas ordered by name.
func (s *Service) List(ctx context.Context) ([]*model.Formula, error) {
	if cached, ok := s.cache.Get(listCacheKey); ok {
		return cached.([]*model.Formula), nil
	}

	formulas, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	s.cache.SetDefault(listCacheKey, formulas)
	return formulas, nil
}

// Save inserts a draft (id 0) back-filling the generated id, or updates
// the existing row in place.
func (s *Service) Save(ctx context.Context, formula *model.Formula) error {
	if strings.TrimSpace(formula.Name) == "" {
		return apperrors.Validation("formula name must not be empty")
	}
	if formula.Price < 0 {
		return apperrors.Validation("formula price must not be negative")
	}

	if formula.ID == 0 {
		if _, err := s.repo.Insert(ctx, formula); err != nil {
			return err
		}
	} else {
		updated, err := s.repo.Update(ctx, formula)
		if err != nil {
			return err
		}
		if !updated {
			return apperrors.NotFound("formula")
		}
	}

	s.cache.Delete(listCacheKey)
	return nil
}

// Delete removes a formula. Orders referencing it keep their rows; their
// display name falls back at read time.
func (s *Service) Delete(ctx context.Context, id int64) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return apperrors.NotFound("formula")
	}

	s.cache.Delete(listCacheKey)
	return nil
}
