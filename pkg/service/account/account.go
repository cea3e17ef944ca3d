// Package account manages the user's accounts and their listing with the
// aggregate total balance.
package account

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/finbook/finbook/pkg/domain"
	"github.com/finbook/finbook/pkg/dto"
	"github.com/finbook/finbook/pkg/repository"
)

// Service manages accounts.
type Service struct {
	uow    repository.UnitOfWork
	logger *slog.Logger
}

// NewService creates an account service.
func NewService(uow repository.UnitOfWork, logger *slog.Logger) *Service {
	return &Service{uow: uow, logger: logger}
}

// Create adds an account. The initial balance may be any valid amount,
// including negative; only subsequent mutations go through the
// balance-adjustment machinery.
func (s *Service) Create(ctx context.Context, create dto.AccountCreate) (*domain.Account, error) {
	if create.ID == uuid.Nil {
		create.ID = uuid.New()
	}
	create.IsActive = true
	create.IsSystemAccount = false
	var created *domain.Account
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		accounts, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		if err := accounts.Create(ctx, create); err != nil {
			return err
		}
		created, err = accounts.Get(ctx, create.UserID, create.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("account created", "account_id", created.ID, "name", created.Name)
	return created, nil
}

// Get returns one of the user's accounts.
func (s *Service) Get(ctx context.Context, userID, id uuid.UUID) (*domain.Account, error) {
	accounts, err := s.uow.AccountRepository()
	if err != nil {
		return nil, err
	}
	return accounts.Get(ctx, userID, id)
}

// Update changes an account's name, balance or active flag. A balance set
// here is a manual correction, outside the adjustment protocol.
func (s *Service) Update(ctx context.Context, userID, id uuid.UUID, update dto.AccountUpdate) (*domain.Account, error) {
	var updated *domain.Account
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		accounts, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		if _, err := accounts.GetForUpdate(ctx, userID, id); err != nil {
			return err
		}
		if err := accounts.Update(ctx, userID, id, update); err != nil {
			return err
		}
		updated, err = accounts.Get(ctx, userID, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("account updated", "account_id", id)
	return updated, nil
}

// ToggleActive flips an account's active flag and returns the new state.
func (s *Service) ToggleActive(ctx context.Context, userID, id uuid.UUID) (*domain.Account, error) {
	var toggled *domain.Account
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		accounts, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		account, err := accounts.GetForUpdate(ctx, userID, id)
		if err != nil {
			return err
		}
		active := !account.IsActive
		if err := accounts.Update(ctx, userID, id, dto.AccountUpdate{IsActive: &active}); err != nil {
			return err
		}
		toggled, err = accounts.Get(ctx, userID, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("account toggled", "account_id", id, "is_active", toggled.IsActive)
	return toggled, nil
}

// Delete removes an account and, via the schema's cascades, every record and
// transfer that references it.
func (s *Service) Delete(ctx context.Context, userID, id uuid.UUID) error {
	accounts, err := s.uow.AccountRepository()
	if err != nil {
		return err
	}
	if err := accounts.Delete(ctx, userID, id); err != nil {
		return err
	}
	s.logger.Info("account deleted", "account_id", id)
	return nil
}

// List returns a page of the user's regular accounts, highest balance first,
// together with the total balance of the active ones.
func (s *Service) List(ctx context.Context, userID uuid.UUID, page dto.Page) (*dto.PageResult[dto.AccountRead], float64, error) {
	accounts, err := s.uow.AccountRepository()
	if err != nil {
		return nil, 0, err
	}
	rows, count, err := accounts.ListByUser(ctx, userID, page)
	if err != nil {
		return nil, 0, err
	}
	total, err := accounts.TotalActiveBalance(ctx, userID)
	if err != nil {
		return nil, 0, err
	}
	reads := make([]dto.AccountRead, 0, len(rows))
	for _, a := range rows {
		reads = append(reads, dto.AccountRead{
			ID:              a.ID,
			Name:            a.Name,
			Balance:         a.Balance.Float64(),
			IsActive:        a.IsActive,
			IsSystemAccount: a.IsSystemAccount,
			CreatedAt:       a.CreatedAt,
		})
	}
	return &dto.PageResult[dto.AccountRead]{Count: count, Results: reads}, total.Float64(), nil
}
