package dto

import (
	"time"

	"github.com/finbook/finbook/pkg/money"
	"github.com/google/uuid"
)

// TransferCreate is the input for creating a transfer.
type TransferCreate struct {
	ID                   uuid.UUID
	SourceAccountID      uuid.UUID
	DestinationAccountID uuid.UUID
	Amount               money.Money
	Timestamp            time.Time
}

// TransferRead is the read-optimized shape for transfer listings.
type TransferRead struct {
	ID                     uuid.UUID `json:"id"`
	SourceAccountID        uuid.UUID `json:"source_account"`
	SourceAccountName      string    `json:"source_account_name"`
	DestinationAccountID   uuid.UUID `json:"destination_account"`
	DestinationAccountName string    `json:"destination_account_name"`
	Amount                 float64   `json:"amount"`
	Timestamp              time.Time `json:"timestamp"`
}
