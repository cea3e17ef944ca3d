package debt

// CreateDebtRequest is the request body for opening a debt or lend.
type CreateDebtRequest struct {
	AccountID           string  `json:"account_id" validate:"required,uuid4"`
	Type                string  `json:"type" validate:"required,oneof=debt lend"`
	Amount              float64 `json:"amount" validate:"required,gt=0"`
	BorrowerDescription string  `json:"borrower_description" validate:"required,max=100"`
	Date                string  `json:"date" validate:"omitempty,datetime=2006-01-02"`
}

// RepayDebtRequest is the request body for paying down a debt.
type RepayDebtRequest struct {
	Amount float64 `json:"amount" validate:"required,gt=0"`
}
