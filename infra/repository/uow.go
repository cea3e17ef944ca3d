package repository

import (
	"context"

	repo "github.com/finbook/finbook/pkg/repository"
	"gorm.io/gorm"
)

// UoW binds the transaction boundary and repository access together: every
// repository handed out inside Do runs on the same *gorm.DB transaction, so
// a record mutation and its balance adjustments commit or roll back as one.
type UoW struct {
	db *gorm.DB
	tx *gorm.DB
}

// NewUoW creates a UnitOfWork over the given *gorm.DB.
func NewUoW(db *gorm.DB) *UoW {
	return &UoW{db: db}
}

// Do runs fn inside a database transaction, giving it a UoW whose
// repositories share that transaction. Nested calls reuse the session.
func (u *UoW) Do(ctx context.Context, fn func(uow repo.UnitOfWork) error) error {
	if u.tx != nil {
		return fn(u)
	}
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&UoW{db: u.db, tx: tx})
	})
}

// session returns the active transaction, or the base connection outside Do.
func (u *UoW) session() *gorm.DB {
	if u.tx != nil {
		return u.tx
	}
	return u.db
}

// AccountRepository returns an account repository bound to the current session.
func (u *UoW) AccountRepository() (repo.AccountRepository, error) {
	return NewAccountRepository(u.session()), nil
}

// CategoryRepository returns a category repository bound to the current session.
func (u *UoW) CategoryRepository() (repo.CategoryRepository, error) {
	return NewCategoryRepository(u.session()), nil
}

// TransactionRepository returns a financial-record repository bound to the
// current session.
func (u *UoW) TransactionRepository() (repo.TransactionRepository, error) {
	return NewTransactionRepository(u.session()), nil
}

// TransferRepository returns a transfer repository bound to the current session.
func (u *UoW) TransferRepository() (repo.TransferRepository, error) {
	return NewTransferRepository(u.session()), nil
}

// DebtRepository returns a debt repository bound to the current session.
func (u *UoW) DebtRepository() (repo.DebtRepository, error) {
	return NewDebtRepository(u.session()), nil
}

// UserRepository returns a user repository bound to the current session.
func (u *UoW) UserRepository() (repo.UserRepository, error) {
	return NewUserRepository(u.session()), nil
}
