package dto

import (
	"time"

	"github.com/google/uuid"
)

// DebtRead is the read-optimized shape for debt listings: the remaining
// principal plus the counterparty description.
type DebtRead struct {
	ID                  uuid.UUID `json:"id"`
	TransferID          uuid.UUID `json:"transfer_id"`
	BorrowerDescription string    `json:"borrower_description"`
	Amount              float64   `json:"amount"`
	AccountName         string    `json:"account_name"`
	Kind                string    `json:"type"`
	Timestamp           time.Time `json:"timestamp"`
}
