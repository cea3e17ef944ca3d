package account

// CreateAccountRequest is the request body for creating an account.
type CreateAccountRequest struct {
	Name    string  `json:"name" validate:"required,max=50"`
	Balance float64 `json:"balance"`
}

// UpdateAccountRequest carries the optional fields of an account update.
type UpdateAccountRequest struct {
	Name     *string  `json:"name" validate:"omitempty,max=50"`
	Balance  *float64 `json:"balance"`
	IsActive *bool    `json:"is_active"`
}
