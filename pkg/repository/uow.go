package repository

import "context"

// UnitOfWork is the transaction boundary for every balance-affecting
// operation. All repositories obtained inside Do share one database
// transaction, so the record mutation and the balance mutation commit or
// roll back together.
type UnitOfWork interface {
	// Do executes fn within a transaction. An error from fn rolls the
	// transaction back and is returned unchanged.
	Do(ctx context.Context, fn func(uow UnitOfWork) error) error

	AccountRepository() (AccountRepository, error)
	CategoryRepository() (CategoryRepository, error)
	TransactionRepository() (TransactionRepository, error)
	TransferRepository() (TransferRepository, error)
	DebtRepository() (DebtRepository, error)
	UserRepository() (UserRepository, error)
}
