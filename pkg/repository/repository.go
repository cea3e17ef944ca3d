// Package repository defines the persistence contracts consumed by the
// service layer. Implementations live in infra/repository.
package repository

import (
	"context"

	"github.com/finbook/finbook/pkg/domain"
	"github.com/finbook/finbook/pkg/dto"
	"github.com/finbook/finbook/pkg/money"
	"github.com/google/uuid"
)

// AccountRepository persists accounts. GetForUpdate must lock the row for
// the remainder of the enclosing transaction; every balance mutation goes
// through it.
type AccountRepository interface {
	Create(ctx context.Context, create dto.AccountCreate) error
	Get(ctx context.Context, userID, id uuid.UUID) (*domain.Account, error)
	// GetForUpdate returns the account row locked against concurrent
	// balance mutations (SELECT ... FOR UPDATE on backends that support it).
	GetForUpdate(ctx context.Context, userID, id uuid.UUID) (*domain.Account, error)
	// GetOrCreateSystem lazily creates a synthetic account; idempotent under
	// the (name, user) uniqueness constraint.
	GetOrCreateSystem(ctx context.Context, userID uuid.UUID, name string) (*domain.Account, error)
	SaveBalance(ctx context.Context, id uuid.UUID, balance money.Money) error
	Update(ctx context.Context, userID, id uuid.UUID, update dto.AccountUpdate) error
	Delete(ctx context.Context, userID, id uuid.UUID) error
	ListByUser(ctx context.Context, userID uuid.UUID, page dto.Page) ([]*domain.Account, int64, error)
	// TotalActiveBalance sums the balances of the user's active non-system
	// accounts.
	TotalActiveBalance(ctx context.Context, userID uuid.UUID) (money.Money, error)
}

// CategoryRepository persists categories.
type CategoryRepository interface {
	Create(ctx context.Context, create dto.CategoryCreate) error
	Get(ctx context.Context, userID, id uuid.UUID) (*domain.Category, error)
	// Exists reports whether the user already has a category with this name
	// and type.
	Exists(ctx context.Context, userID uuid.UUID, name string, t domain.CategoryType) (bool, error)
	Update(ctx context.Context, userID, id uuid.UUID, update dto.CategoryUpdate) error
	Delete(ctx context.Context, userID, id uuid.UUID) error
	// ListByUser returns the user's categories ordered by usage count then
	// name, optionally filtered by type.
	ListByUser(ctx context.Context, userID uuid.UUID, t domain.CategoryType, page dto.Page) ([]dto.CategoryRead, int64, error)
}

// TransactionRepository persists financial records.
type TransactionRepository interface {
	Create(ctx context.Context, create dto.TransactionCreate) error
	Get(ctx context.Context, userID, id uuid.UUID) (*domain.Transaction, error)
	// GetForUpdate returns the record locked against concurrent mutations.
	GetForUpdate(ctx context.Context, userID, id uuid.UUID) (*domain.Transaction, error)
	Update(ctx context.Context, id uuid.UUID, update dto.TransactionUpdate) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListByUser(ctx context.Context, userID uuid.UUID, filter dto.TransactionFilter, page dto.Page) ([]dto.TransactionRead, int64, error)
	// SumByCategory aggregates record amounts per category for one month.
	SumByCategory(ctx context.Context, userID uuid.UUID, year int, month int, t domain.CategoryType) ([]dto.CategorySum, error)
	// SumByMonth aggregates record amounts per month for one year.
	SumByMonth(ctx context.Context, userID uuid.UUID, year int, t domain.CategoryType) ([]dto.MonthSum, error)
}

// TransferRepository persists transfers.
type TransferRepository interface {
	Create(ctx context.Context, create dto.TransferCreate) error
	// Get returns a transfer where the user owns either side.
	Get(ctx context.Context, userID, id uuid.UUID) (*domain.Transfer, error)
	// GetForUpdate is Get with the transfer row locked, so the amount read
	// stays valid for the remainder of the transaction.
	GetForUpdate(ctx context.Context, userID, id uuid.UUID) (*domain.Transfer, error)
	SaveAmount(ctx context.Context, id uuid.UUID, amount money.Money) error
	Delete(ctx context.Context, id uuid.UUID) error
	// ListByUser returns the user's transfers, newest first, excluding those
	// touching system accounts.
	ListByUser(ctx context.Context, userID uuid.UUID, page dto.Page) ([]dto.TransferRead, int64, error)
}

// DebtRepository persists debt annotations.
type DebtRepository interface {
	Create(ctx context.Context, transferID uuid.UUID, description string) error
	Get(ctx context.Context, id uuid.UUID) (*domain.Debt, error)
	GetByTransfer(ctx context.Context, transferID uuid.UUID) (*domain.Debt, error)
	Delete(ctx context.Context, id uuid.UUID) error
	// ListByUser returns the user's debts, optionally narrowed to one kind.
	ListByUser(ctx context.Context, userID uuid.UUID, kind domain.DebtKind, page dto.Page) ([]dto.DebtRead, int64, error)
}

// UserRepository persists users.
type UserRepository interface {
	Create(ctx context.Context, create dto.UserCreate) error
	Get(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByIdentity(ctx context.Context, identity string) (*domain.User, error)
	ExistsByEmailOrUsername(ctx context.Context, email, username string) (bool, error)
}
