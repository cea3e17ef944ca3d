package domain

import (
	"time"

	"github.com/finbook/finbook/pkg/money"
	"github.com/google/uuid"
)

// Transaction is a financial record: an amount applied to one account under
// one category. Whether it credits or debits the account follows from the
// category type.
type Transaction struct {
	ID         uuid.UUID
	UserID     uuid.UUID
	CategoryID uuid.UUID
	AccountID  uuid.UUID
	Amount     money.Money
	OccurredAt time.Time
	Comment    string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// SignedAmount returns the amount with the polarity of the category type
// applied: positive for income, negative for expense.
func SignedAmount(amount money.Money, t CategoryType) money.Money {
	if t.Sign() < 0 {
		return amount.Neg()
	}
	return amount
}

// ValidateAmount checks the shared amount invariant for financial records.
func ValidateAmount(amount money.Money) error {
	if !amount.IsPositive() {
		return ErrAmountMustBePositive
	}
	return nil
}
