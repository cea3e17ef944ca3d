package transaction

import "time"

// CreateTransactionRequest is the request body for recording a financial
// event.
type CreateTransactionRequest struct {
	CategoryID string    `json:"category_id" validate:"required,uuid4"`
	AccountID  string    `json:"account_id" validate:"required,uuid4"`
	Amount     float64   `json:"amount" validate:"required,gt=0"`
	OccurredAt time.Time `json:"occurred_at"`
	Comment    string    `json:"comment" validate:"max=200"`
}

// UpdateTransactionRequest carries the optional fields of a record update.
type UpdateTransactionRequest struct {
	CategoryID *string    `json:"category_id" validate:"omitempty,uuid4"`
	AccountID  *string    `json:"account_id" validate:"omitempty,uuid4"`
	Amount     *float64   `json:"amount" validate:"omitempty,gt=0"`
	OccurredAt *time.Time `json:"occurred_at"`
	Comment    *string    `json:"comment" validate:"omitempty,max=200"`
}
