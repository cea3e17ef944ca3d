package transfer

import "time"

// CreateTransferRequest is the request body for moving money between two
// accounts. Timestamp is optional and defaults to the current time.
type CreateTransferRequest struct {
	SourceAccountID      string    `json:"source_account" validate:"required,uuid4"`
	DestinationAccountID string    `json:"destination_account" validate:"required,uuid4"`
	Amount               float64   `json:"amount" validate:"required,gt=0"`
	Timestamp            time.Time `json:"timestamp"`
}

// UpdateTransferRequest carries the new amount for a transfer.
type UpdateTransferRequest struct {
	Amount float64 `json:"amount" validate:"required,gt=0"`
}
