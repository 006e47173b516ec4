package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"

	"github.com/pharmaflow/pharmacy-api/internal/model"
	"github.com/pharmaflow/pharmacy-api/internal/repository"
	apperrors "github.com/pharmaflow/pharmacy-api/pkg/errors"
	"github.com/pharmaflow/pharmacy-api/pkg/security"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

// Service implements the account boundary: credential verification,
// the registration transaction and password recovery.
type Service struct {
	accounts repository.AccountRepository
	patients repository.PatientRepository
	tx       repository.TxManager
	hasher   security.PasswordHasher
}

func NewService(accounts repository.AccountRepository, patients repository.PatientRepository,
	tx repository.TxManager, hasher security.PasswordHasher) *Service {
	return &Service{
		accounts: accounts,
		patients: patients,
		tx:       tx,
		hasher:   hasher,
	}
}

// Login returns the account iff the password verifies against the
// stored hash. Unknown emails and wrong passwords are indistinguishable
// to the caller. Nothing is mutated on failed attempts.
func (s *Service) Login(ctx context.Context, email, password string) (*model.Account, error) {
	account, err := s.accounts.GetByEmail(ctx, email)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, ErrInvalidCredentials
		}
		log.Error().Err(err).Msg("login lookup failed")
		return nil, err
	}

	if err := s.hasher.Compare(account.PasswordHash, password); err != nil {
		return nil, ErrInvalidCredentials
	}
	return account, nil
}

// Register creates an account with role patient plus its linked patient
// profile in a single transaction; either both rows exist afterwards or
// neither does. The duplicate pre-check is best-effort — the unique
// constraint on accounts.email is what settles concurrent registrations,
// surfacing as a conflict from the insert.
func (s *Service) Register(ctx context.Context, req *model.RegisterRequest) error {
	displayName := strings.TrimSpace(req.DisplayName)
	email := strings.TrimSpace(req.Email)
	if displayName == "" {
		return apperrors.Validation("display name must not be empty")
	}
	if email == "" {
		return apperrors.Validation("email must not be empty")
	}

	exists, err := s.accounts.ExistsByEmail(ctx, email)
	if err != nil {
		log.Error().Err(err).Msg("registration pre-check failed")
		return err
	}
	if exists {
		return apperrors.Conflict("email already registered", nil)
	}

	passwordHash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return apperrors.Validation(err.Error())
	}

	err = s.tx.WithTx(ctx, func(tx *sqlx.Tx) error {
		account := &model.Account{
			Email:        email,
			PasswordHash: passwordHash,
			DisplayName:  displayName,
			Phone:        req.Phone,
			Role:         model.RolePatient,
		}
		accountID, err := s.accounts.CreateTx(ctx, tx, account)
		if err != nil {
			return err
		}

		patient := &model.Patient{
			AccountID:   accountID,
			DisplayName: displayName,
			Phone:       req.Phone,
			Email:       email,
		}
		if _, err := s.patients.CreateTx(ctx, tx, patient); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		log.Error().Err(err).Str("email", email).Msg("registration failed")
		return err
	}
	return nil
}

// RecoverPassword replaces the stored hash for an existing account.
func (s *Service) RecoverPassword(ctx context.Context, email, newPassword string) error {
	exists, err := s.accounts.ExistsByEmail(ctx, email)
	if err != nil {
		log.Error().Err(err).Msg("password recovery lookup failed")
		return err
	}
	if !exists {
		return apperrors.NotFound("account")
	}

	passwordHash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return apperrors.Validation(err.Error())
	}

	updated, err := s.accounts.UpdatePassword(ctx, email, passwordHash)
	if err != nil {
		log.Error().Err(err).Msg("password update failed")
		return err
	}
	if !updated {
		return apperrors.NotFound("account")
	}
	return nil
}
