package ledger

import (
	"context"

	"github.com/google/uuid"

	"github.com/finbook/finbook/pkg/domain"
	"github.com/finbook/finbook/pkg/dto"
	"github.com/finbook/finbook/pkg/money"
	"github.com/finbook/finbook/pkg/repository"
)

// CreateTransfer moves an amount between two of the user's accounts. Both
// account rows are locked before the sufficiency check so a concurrent
// transfer cannot overdraw the source.
func (s *Service) CreateTransfer(ctx context.Context, userID uuid.UUID, create dto.TransferCreate) (*domain.Transfer, error) {
	if create.ID == uuid.Nil {
		create.ID = uuid.New()
	}
	var created *domain.Transfer
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		accounts, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		source, destination, err := repository.LockAccountPair(ctx, accounts, userID, create.SourceAccountID, create.DestinationAccountID)
		if err != nil {
			return err
		}
		if err := domain.ValidateTransfer(source, destination, create.Amount); err != nil {
			return err
		}
		source.Debit(create.Amount)
		destination.Credit(create.Amount)
		if err := accounts.SaveBalance(ctx, source.ID, source.Balance); err != nil {
			return err
		}
		if err := accounts.SaveBalance(ctx, destination.ID, destination.Balance); err != nil {
			return err
		}
		transfers, err := uow.TransferRepository()
		if err != nil {
			return err
		}
		if err := transfers.Create(ctx, create); err != nil {
			return err
		}
		created, err = transfers.Get(ctx, userID, create.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("transfer created",
		"transfer_id", created.ID,
		"source_account_id", created.SourceAccountID,
		"destination_account_id", created.DestinationAccountID,
		"amount", created.Amount.String(),
	)
	return created, nil
}

// UpdateTransfer changes a transfer's amount and reconciles both balances by
// the difference: the source gets back old minus new, the destination gives
// it up.
func (s *Service) UpdateTransfer(ctx context.Context, userID, id uuid.UUID, amount money.Money) (*domain.Transfer, error) {
	if !amount.IsPositive() {
		return nil, domain.ErrAmountMustBePositive
	}
	var updated *domain.Transfer
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		transfers, err := uow.TransferRepository()
		if err != nil {
			return err
		}
		transfer, err := transfers.GetForUpdate(ctx, userID, id)
		if err != nil {
			return err
		}
		delta := transfer.Amount.Sub(amount)
		if !delta.IsZero() {
			accounts, err := uow.AccountRepository()
			if err != nil {
				return err
			}
			source, destination, err := repository.LockAccountPair(ctx, accounts, userID, transfer.SourceAccountID, transfer.DestinationAccountID)
			if err != nil {
				return err
			}
			source.Credit(delta)
			destination.Debit(delta)
			if err := accounts.SaveBalance(ctx, source.ID, source.Balance); err != nil {
				return err
			}
			if err := accounts.SaveBalance(ctx, destination.ID, destination.Balance); err != nil {
				return err
			}
		}
		if err := transfers.SaveAmount(ctx, id, amount); err != nil {
			return err
		}
		updated, err = transfers.Get(ctx, userID, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("transfer updated", "transfer_id", id, "amount", amount.String())
	return updated, nil
}

// DeleteTransfer removes a transfer and reverses it in full.
func (s *Service) DeleteTransfer(ctx context.Context, userID, id uuid.UUID) error {
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		transfers, err := uow.TransferRepository()
		if err != nil {
			return err
		}
		transfer, err := transfers.GetForUpdate(ctx, userID, id)
		if err != nil {
			return err
		}
		accounts, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		source, destination, err := repository.LockAccountPair(ctx, accounts, userID, transfer.SourceAccountID, transfer.DestinationAccountID)
		if err != nil {
			return err
		}
		source.Credit(transfer.Amount)
		destination.Debit(transfer.Amount)
		if err := accounts.SaveBalance(ctx, source.ID, source.Balance); err != nil {
			return err
		}
		if err := accounts.SaveBalance(ctx, destination.ID, destination.Balance); err != nil {
			return err
		}
		return transfers.Delete(ctx, id)
	})
	if err != nil {
		return err
	}
	s.logger.Info("transfer deleted", "transfer_id", id)
	return nil
}

// GetTransfer returns one transfer where the user owns either side.
func (s *Service) GetTransfer(ctx context.Context, userID, id uuid.UUID) (*domain.Transfer, error) {
	transfers, err := s.uow.TransferRepository()
	if err != nil {
		return nil, err
	}
	return transfers.Get(ctx, userID, id)
}

// ListTransfers returns a page of the user's transfers between regular
// accounts, newest first.
func (s *Service) ListTransfers(ctx context.Context, userID uuid.UUID, page dto.Page) (*dto.PageResult[dto.TransferRead], error) {
	transfers, err := s.uow.TransferRepository()
	if err != nil {
		return nil, err
	}
	rows, count, err := transfers.ListByUser(ctx, userID, page)
	if err != nil {
		return nil, err
	}
	return &dto.PageResult[dto.TransferRead]{Count: count, Results: rows}, nil
}
