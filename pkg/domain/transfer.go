package domain

import (
	"time"

	"github.com/finbook/finbook/pkg/money"
	"github.com/google/uuid"
)

// Transfer moves an amount between two accounts of the same user. Debt
// repayments are recorded as transfers with a negative amount between the
// same pair of accounts as the debt's original transfer.
type Transfer struct {
	ID                   uuid.UUID
	SourceAccountID      uuid.UUID
	DestinationAccountID uuid.UUID
	Amount               money.Money
	Timestamp            time.Time
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// ValidateTransfer checks the invariants for creating a user-initiated
// transfer: distinct accounts, positive amount, sufficient source balance.
// Both accounts must already be loaded (and locked) by the caller.
func ValidateTransfer(source, destination *Account, amount money.Money) error {
	if source == nil || destination == nil {
		return ErrAccountNotFound
	}
	if source.ID == destination.ID {
		return ErrSameAccountTransfer
	}
	if !amount.IsPositive() {
		return ErrAmountMustBePositive
	}
	if !source.CanCover(amount) {
		return ErrInsufficientFunds
	}
	return nil
}
