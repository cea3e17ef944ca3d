package debt

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/finbook/finbook/pkg/domain"
	"github.com/finbook/finbook/pkg/dto"
	"github.com/finbook/finbook/pkg/money"
	"github.com/finbook/finbook/pkg/repository"
)

// OpenInput is the input for opening a debt or lend.
type OpenInput struct {
	UserID              uuid.UUID
	AccountID           uuid.UUID
	Kind                domain.DebtKind
	Amount              money.Money
	BorrowerDescription string
	Date                time.Time
}

// EnsureSystemAccounts lazily creates the user's two synthetic debt accounts.
// Safe to call repeatedly; the (name, user) uniqueness constraint makes
// creation idempotent.
func (s *Service) EnsureSystemAccounts(ctx context.Context, userID uuid.UUID) ([]*domain.Account, error) {
	var created []*domain.Account
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		accounts, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		for _, name := range []string{domain.DebtAccountName, domain.LendAccountName} {
			account, err := accounts.GetOrCreateSystem(ctx, userID, name)
			if err != nil {
				return err
			}
			created = append(created, account)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// Open records a new debt: a transfer from the user's real account to the
// kind's synthetic account, annotated with the counterparty description.
// For kind "debt" the real account gains the amount (money was received),
// for kind "lend" it loses it.
func (s *Service) Open(ctx context.Context, in OpenInput) (*domain.Debt, error) {
	if err := domain.ValidateAmount(in.Amount); err != nil {
		return nil, err
	}
	transferID := uuid.New()
	var created *domain.Debt
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		accounts, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		system, err := accounts.GetOrCreateSystem(ctx, in.UserID, in.Kind.SystemAccountName())
		if err != nil {
			return err
		}
		account, system, err := repository.LockAccountPair(ctx, accounts, in.UserID, in.AccountID, system.ID)
		if err != nil {
			return err
		}
		adjust(in.Kind, account, system, in.Amount)
		if err := accounts.SaveBalance(ctx, account.ID, account.Balance); err != nil {
			return err
		}
		if err := accounts.SaveBalance(ctx, system.ID, system.Balance); err != nil {
			return err
		}
		transfers, err := uow.TransferRepository()
		if err != nil {
			return err
		}
		err = transfers.Create(ctx, dto.TransferCreate{
			ID:                   transferID,
			SourceAccountID:      account.ID,
			DestinationAccountID: system.ID,
			Amount:               in.Amount,
			Timestamp:            midnight(in.Date),
		})
		if err != nil {
			return err
		}
		debts, err := uow.DebtRepository()
		if err != nil {
			return err
		}
		if err := debts.Create(ctx, transferID, in.BorrowerDescription); err != nil {
			return err
		}
		created, err = debtByTransfer(ctx, uow, transferID)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("debt opened",
		"debt_id", created.ID,
		"kind", in.Kind,
		"amount", in.Amount.String(),
	)
	return created, nil
}

// Repay pays part or all of a debt's principal. The repayment is recorded as
// a second transfer with a negated amount between the same account pair, the
// balance adjustment of Open runs in reverse, and the principal on the debt's
// transfer is decremented. At exactly zero principal the debt is deleted; the
// zeroed transfer stays as history.
func (s *Service) Repay(ctx context.Context, userID, debtID uuid.UUID, amount money.Money) error {
	if err := domain.ValidateAmount(amount); err != nil {
		return err
	}
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		debts, err := uow.DebtRepository()
		if err != nil {
			return err
		}
		record, err := debts.Get(ctx, debtID)
		if err != nil {
			return err
		}
		transfers, err := uow.TransferRepository()
		if err != nil {
			return err
		}
		// Locking the transfer row first pins the principal; a concurrent
		// repayment of the same debt blocks here and then sees the
		// decremented amount.
		transfer, err := transfers.GetForUpdate(ctx, userID, record.TransferID)
		if err != nil {
			if errors.Is(err, domain.ErrTransferNotFound) {
				return domain.ErrNotOwner
			}
			return err
		}
		if transfer.Amount.LessThan(amount) {
			return domain.ErrRepayExceedsPrincipal
		}
		accounts, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		account, system, err := repository.LockAccountPair(ctx, accounts, userID, transfer.SourceAccountID, transfer.DestinationAccountID)
		if err != nil {
			if errors.Is(err, domain.ErrAccountNotFound) {
				return domain.ErrNotOwner
			}
			return err
		}
		kind := domain.KindDebt
		if system.Name == domain.LendAccountName {
			kind = domain.KindLend
		}
		adjust(kind, account, system, amount.Neg())
		if err := accounts.SaveBalance(ctx, account.ID, account.Balance); err != nil {
			return err
		}
		if err := accounts.SaveBalance(ctx, system.ID, system.Balance); err != nil {
			return err
		}
		err = transfers.Create(ctx, dto.TransferCreate{
			ID:                   uuid.New(),
			SourceAccountID:      account.ID,
			DestinationAccountID: system.ID,
			Amount:               amount.Neg(),
			Timestamp:            time.Now().UTC(),
		})
		if err != nil {
			return err
		}
		remaining := transfer.Amount.Sub(amount)
		if err := transfers.SaveAmount(ctx, transfer.ID, remaining); err != nil {
			return err
		}
		if remaining.IsZero() {
			return debts.Delete(ctx, debtID)
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.logger.Info("debt repaid", "debt_id", debtID, "amount", amount.String())
	return nil
}

// Get returns one debt the user is party to.
func (s *Service) Get(ctx context.Context, userID, debtID uuid.UUID) (*domain.Debt, *domain.Transfer, error) {
	debts, err := s.uow.DebtRepository()
	if err != nil {
		return nil, nil, err
	}
	record, err := debts.Get(ctx, debtID)
	if err != nil {
		return nil, nil, err
	}
	transfers, err := s.uow.TransferRepository()
	if err != nil {
		return nil, nil, err
	}
	transfer, err := transfers.Get(ctx, userID, record.TransferID)
	if err != nil {
		if errors.Is(err, domain.ErrTransferNotFound) {
			return nil, nil, domain.ErrNotOwner
		}
		return nil, nil, err
	}
	return record, transfer, nil
}

// List returns a page of the user's debts, optionally narrowed to one kind.
func (s *Service) List(ctx context.Context, userID uuid.UUID, kind domain.DebtKind, page dto.Page) (*dto.PageResult[dto.DebtRead], error) {
	debts, err := s.uow.DebtRepository()
	if err != nil {
		return nil, err
	}
	rows, count, err := debts.ListByUser(ctx, userID, kind, page)
	if err != nil {
		return nil, err
	}
	return &dto.PageResult[dto.DebtRead]{Count: count, Results: rows}, nil
}

// adjust applies the kind's balance direction. Opening a "debt" credits the
// real account and debits the synthetic one; "lend" mirrors it. Passing a
// negated amount runs the same movement in reverse, which is exactly a
// repayment.
func adjust(kind domain.DebtKind, account, system *domain.Account, amount money.Money) {
	if kind == domain.KindDebt {
		account.Credit(amount)
		system.Debit(amount)
		return
	}
	account.Debit(amount)
	system.Credit(amount)
}

// midnight truncates a date to 00:00 UTC so debts of the same day collate.
func midnight(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func debtByTransfer(ctx context.Context, uow repository.UnitOfWork, transferID uuid.UUID) (*domain.Debt, error) {
	debts, err := uow.DebtRepository()
	if err != nil {
		return nil, err
	}
	return debts.GetByTransfer(ctx, transferID)
}
