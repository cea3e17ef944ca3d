package dto

import (
	"time"

	"github.com/finbook/finbook/pkg/domain"
	"github.com/finbook/finbook/pkg/money"
	"github.com/google/uuid"
)

// TransactionCreate is the input for creating a financial record.
type TransactionCreate struct {
	ID         uuid.UUID
	UserID     uuid.UUID
	CategoryID uuid.UUID
	AccountID  uuid.UUID
	Amount     money.Money
	OccurredAt time.Time
	Comment    string
}

// TransactionUpdate carries optional field updates for a financial record.
// Amount and account changes drive the balance-adjustment reversal logic.
type TransactionUpdate struct {
	CategoryID *uuid.UUID
	AccountID  *uuid.UUID
	Amount     *money.Money
	OccurredAt *time.Time
	Comment    *string
}

// TransactionRead is the read-optimized shape for record listings, with the
// category and account denormalized for display.
type TransactionRead struct {
	ID           uuid.UUID           `json:"id"`
	Amount       float64             `json:"amount"`
	CategoryID   uuid.UUID           `json:"category_id"`
	CategoryName string              `json:"category_name"`
	CategoryType domain.CategoryType `json:"category_type"`
	AccountID    uuid.UUID           `json:"account_id"`
	AccountName  string              `json:"account_name"`
	OccurredAt   time.Time           `json:"occurred_at"`
	Comment      string              `json:"comment,omitempty"`
}

// TransactionFilter narrows record listings. Zero values mean "no filter".
type TransactionFilter struct {
	Type         domain.CategoryType
	From         *time.Time
	To           *time.Time
	AccountName  string
	CategoryName string
	AmountMin    *money.Money
	AmountMax    *money.Money
}
