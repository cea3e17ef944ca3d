package ledger

import (
	"context"

	"github.com/google/uuid"

	"github.com/finbook/finbook/pkg/domain"
	"github.com/finbook/finbook/pkg/dto"
	"github.com/finbook/finbook/pkg/repository"
)

// CreateTransaction records a financial event and adjusts the target account
// balance by the signed amount in the same transaction. Income credits the
// account, expense debits it.
func (s *Service) CreateTransaction(ctx context.Context, create dto.TransactionCreate) (*domain.Transaction, error) {
	if err := domain.ValidateAmount(create.Amount); err != nil {
		return nil, err
	}
	if create.ID == uuid.Nil {
		create.ID = uuid.New()
	}
	var created *domain.Transaction
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		categories, err := uow.CategoryRepository()
		if err != nil {
			return err
		}
		category, err := categories.Get(ctx, create.UserID, create.CategoryID)
		if err != nil {
			return err
		}
		accounts, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		account, err := accounts.GetForUpdate(ctx, create.UserID, create.AccountID)
		if err != nil {
			return err
		}
		account.Credit(domain.SignedAmount(create.Amount, category.Type))
		if err := accounts.SaveBalance(ctx, account.ID, account.Balance); err != nil {
			return err
		}
		transactions, err := uow.TransactionRepository()
		if err != nil {
			return err
		}
		if err := transactions.Create(ctx, create); err != nil {
			return err
		}
		created, err = transactions.Get(ctx, create.UserID, create.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("transaction created",
		"transaction_id", created.ID,
		"account_id", created.AccountID,
		"amount", created.Amount.String(),
	)
	return created, nil
}

// UpdateTransaction applies field changes to a record and reconciles the
// balances it touched. When the account stays the same the balance moves by
// the signed delta; when the record moves between accounts the old amount is
// reversed on the old account and the new amount applied to the new one.
func (s *Service) UpdateTransaction(ctx context.Context, userID, id uuid.UUID, update dto.TransactionUpdate) (*domain.Transaction, error) {
	if update.Amount != nil {
		if err := domain.ValidateAmount(*update.Amount); err != nil {
			return nil, err
		}
	}
	var updated *domain.Transaction
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		transactions, err := uow.TransactionRepository()
		if err != nil {
			return err
		}
		record, err := transactions.GetForUpdate(ctx, userID, id)
		if err != nil {
			return err
		}
		categories, err := uow.CategoryRepository()
		if err != nil {
			return err
		}
		oldCategory, err := categories.Get(ctx, userID, record.CategoryID)
		if err != nil {
			return err
		}
		newCategory := oldCategory
		if update.CategoryID != nil && *update.CategoryID != record.CategoryID {
			if newCategory, err = categories.Get(ctx, userID, *update.CategoryID); err != nil {
				return err
			}
		}
		newAccountID := record.AccountID
		if update.AccountID != nil {
			newAccountID = *update.AccountID
		}
		newAmount := record.Amount
		if update.Amount != nil {
			newAmount = *update.Amount
		}
		oldSigned := domain.SignedAmount(record.Amount, oldCategory.Type)
		newSigned := domain.SignedAmount(newAmount, newCategory.Type)

		accounts, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		if newAccountID == record.AccountID {
			account, err := accounts.GetForUpdate(ctx, userID, record.AccountID)
			if err != nil {
				return err
			}
			account.Credit(newSigned.Sub(oldSigned))
			if err := accounts.SaveBalance(ctx, account.ID, account.Balance); err != nil {
				return err
			}
		} else {
			oldAccount, newAccount, err := repository.LockAccountPair(ctx, accounts, userID, record.AccountID, newAccountID)
			if err != nil {
				return err
			}
			oldAccount.Debit(oldSigned)
			newAccount.Credit(newSigned)
			if err := accounts.SaveBalance(ctx, oldAccount.ID, oldAccount.Balance); err != nil {
				return err
			}
			if err := accounts.SaveBalance(ctx, newAccount.ID, newAccount.Balance); err != nil {
				return err
			}
		}
		if err := transactions.Update(ctx, id, update); err != nil {
			return err
		}
		updated, err = transactions.Get(ctx, userID, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("transaction updated", "transaction_id", id)
	return updated, nil
}

// DeleteTransaction removes a record and reverses its balance effect.
func (s *Service) DeleteTransaction(ctx context.Context, userID, id uuid.UUID) error {
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		transactions, err := uow.TransactionRepository()
		if err != nil {
			return err
		}
		record, err := transactions.GetForUpdate(ctx, userID, id)
		if err != nil {
			return err
		}
		categories, err := uow.CategoryRepository()
		if err != nil {
			return err
		}
		category, err := categories.Get(ctx, userID, record.CategoryID)
		if err != nil {
			return err
		}
		accounts, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		account, err := accounts.GetForUpdate(ctx, userID, record.AccountID)
		if err != nil {
			return err
		}
		account.Debit(domain.SignedAmount(record.Amount, category.Type))
		if err := accounts.SaveBalance(ctx, account.ID, account.Balance); err != nil {
			return err
		}
		return transactions.Delete(ctx, id)
	})
	if err != nil {
		return err
	}
	s.logger.Info("transaction deleted", "transaction_id", id)
	return nil
}

// GetTransaction returns one of the user's records.
func (s *Service) GetTransaction(ctx context.Context, userID, id uuid.UUID) (*domain.Transaction, error) {
	transactions, err := s.uow.TransactionRepository()
	if err != nil {
		return nil, err
	}
	return transactions.Get(ctx, userID, id)
}

// ListTransactions returns a filtered page of the user's records.
func (s *Service) ListTransactions(ctx context.Context, userID uuid.UUID, filter dto.TransactionFilter, page dto.Page) (*dto.PageResult[dto.TransactionRead], error) {
	transactions, err := s.uow.TransactionRepository()
	if err != nil {
		return nil, err
	}
	rows, count, err := transactions.ListByUser(ctx, userID, filter, page)
	if err != nil {
		return nil, err
	}
	return &dto.PageResult[dto.TransactionRead]{Count: count, Results: rows}, nil
}
