package domain

import "errors"

var (
	// ErrAccountNotFound is returned when an account cannot be found or does
	// not belong to the caller.
	ErrAccountNotFound = errors.New("account not found")

	// ErrCategoryNotFound is returned when a category cannot be found or does
	// not belong to the caller.
	ErrCategoryNotFound = errors.New("category not found")

	// ErrTransactionNotFound is returned when a financial record cannot be found.
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrTransferNotFound is returned when a transfer cannot be found.
	ErrTransferNotFound = errors.New("transfer not found")

	// ErrDebtNotFound is returned when a debt cannot be found.
	ErrDebtNotFound = errors.New("debt not found")

	// ErrUserNotFound is returned when a user cannot be found.
	ErrUserNotFound = errors.New("user not found")

	// ErrNotOwner is returned when a user acts on a record owned by someone else.
	ErrNotOwner = errors.New("not owner")

	// ErrAmountMustBePositive is returned when a financial record or transfer
	// amount is not strictly positive.
	ErrAmountMustBePositive = errors.New("amount must be positive")

	// ErrInsufficientFunds is returned when the source account balance does
	// not cover a transfer.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrSameAccountTransfer is returned when a transfer names the same
	// account on both sides.
	ErrSameAccountTransfer = errors.New("source and destination accounts must be different")

	// ErrDuplicateName is returned when a uniqueness constraint on a
	// user-scoped name is violated.
	ErrDuplicateName = errors.New("name already exists")

	// ErrInvalidCategoryType is returned for a category type other than
	// "income" or "expense".
	ErrInvalidCategoryType = errors.New("invalid category type")

	// ErrInvalidDebtKind is returned for a debt kind other than "debt" or "lend".
	ErrInvalidDebtKind = errors.New("invalid debt kind")

	// ErrRepayExceedsPrincipal is returned when a repayment is larger than
	// the remaining principal of a debt.
	ErrRepayExceedsPrincipal = errors.New("repayment exceeds remaining debt")

	// ErrInvalidCredentials is returned on a failed login.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrEmailAlreadyExists is returned when registering an email that is taken.
	ErrEmailAlreadyExists = errors.New("email already exists")
)
