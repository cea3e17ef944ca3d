package dto

import (
	"time"

	"github.com/finbook/finbook/pkg/money"
	"github.com/google/uuid"
)

// AccountCreate is the input for creating an account.
type AccountCreate struct {
	ID              uuid.UUID
	UserID          uuid.UUID
	Name            string
	Balance         money.Money
	IsActive        bool
	IsSystemAccount bool
}

// AccountUpdate carries optional field updates for an account.
type AccountUpdate struct {
	Name     *string
	Balance  *money.Money
	IsActive *bool
}

// AccountRead is the read-optimized shape for account listings and details.
type AccountRead struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	Balance         float64   `json:"balance"`
	IsActive        bool      `json:"is_active"`
	IsSystemAccount bool      `json:"is_system_account"`
	CreatedAt       time.Time `json:"created_at"`
}

// AccountList is a page of accounts together with the total balance of the
// user's active non-system accounts.
type AccountList struct {
	Count        int64         `json:"count"`
	Results      []AccountRead `json:"results"`
	TotalBalance float64       `json:"total_balance"`
}
