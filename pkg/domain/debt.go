package domain

import (
	"time"

	"github.com/google/uuid"
)

// DebtKind selects which synthetic account a debt operation goes through:
// "debt" is money the user owes, "lend" is money owed to the user.
type DebtKind string

const (
	KindDebt DebtKind = "debt"
	KindLend DebtKind = "lend"
)

// ParseDebtKind validates a debt kind received from the API.
func ParseDebtKind(s string) (DebtKind, error) {
	switch DebtKind(s) {
	case KindDebt:
		return KindDebt, nil
	case KindLend:
		return KindLend, nil
	default:
		return "", ErrInvalidDebtKind
	}
}

// SystemAccountName returns the name of the synthetic account for the kind.
func (k DebtKind) SystemAccountName() string {
	if k == KindLend {
		return LendAccountName
	}
	return DebtAccountName
}

// Debt annotates a transfer with a counterparty description. The transfer's
// amount is the remaining principal; repayments decrement it and the debt is
// deleted when it reaches exactly zero.
type Debt struct {
	ID                  uuid.UUID
	TransferID          uuid.UUID
	BorrowerDescription string
	CreatedAt           time.Time
	UpdatedAt           time.Time
}
