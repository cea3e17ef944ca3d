package domain

import (
	"time"

	"github.com/finbook/finbook/pkg/money"
	"github.com/google/uuid"
)

// Names of the per-user synthetic accounts backing the debt subsystem.
// They are created lazily, inactive, and excluded from user-facing listings.
const (
	DebtAccountName = "debt"
	LendAccountName = "lend"
)

// Account holds a user's running balance. The balance is authoritative
// state: it is never recomputed on read, only adjusted transactionally by
// the financial events that reference the account.
//
// Invariants:
//   - (Name, UserID) is unique.
//   - Every balance change happens together with the record that caused it,
//     in one database transaction, with the account row locked.
type Account struct {
	ID              uuid.UUID
	UserID          uuid.UUID
	Name            string
	Balance         money.Money
	IsActive        bool
	IsSystemAccount bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Owned reports whether the account belongs to the given user.
func (a *Account) Owned(userID uuid.UUID) bool {
	return a.UserID == userID
}

// Credit adds amount to the balance. A negative amount debits.
func (a *Account) Credit(amount money.Money) {
	a.Balance = a.Balance.Add(amount)
}

// Debit subtracts amount from the balance. A negative amount credits.
func (a *Account) Debit(amount money.Money) {
	a.Balance = a.Balance.Sub(amount)
}

// CanCover reports whether the balance is at least amount.
func (a *Account) CanCover(amount money.Money) bool {
	return !a.Balance.LessThan(amount)
}
