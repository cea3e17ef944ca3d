// Package money provides the fixed-point monetary value object used by every
// balance-affecting operation.
//
// Invariants:
//   - Values carry at most 2 fractional digits and at most 10 digits total.
//   - Arithmetic is decimal-exact; float64 exists only at the API boundary.
package money

import (
	"errors"

	"github.com/shopspring/decimal"
)

var (
	// ErrInvalidAmount is returned when an amount cannot be parsed as a decimal.
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrTooManyDecimals is returned when an amount carries more than two
	// fractional digits.
	ErrTooManyDecimals = errors.New("amount must have at most two decimal places")

	// ErrAmountOutOfRange is returned when an amount does not fit in
	// decimal(10,2).
	ErrAmountOutOfRange = errors.New("amount out of range")
)

// maxAbs is the exclusive bound for decimal(10,2): eight integer digits.
var maxAbs = decimal.New(1, 8)

// Money is an immutable fixed-point amount with two fractional digits.
type Money struct {
	amount decimal.Decimal
}

// Zero is the zero amount.
var Zero = Money{}

// New creates a Money from a float64 received at the API boundary.
// The float must represent a value with at most two fractional digits.
func New(amount float64) (Money, error) {
	return FromDecimal(decimal.NewFromFloat(amount))
}

// Parse creates a Money from its decimal string form.
func Parse(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, ErrInvalidAmount
	}
	return FromDecimal(d)
}

// FromDecimal validates an arbitrary decimal against the scale and range
// invariants and wraps it.
func FromDecimal(d decimal.Decimal) (Money, error) {
	if !d.Equal(d.Round(2)) {
		return Money{}, ErrTooManyDecimals
	}
	if d.Abs().Cmp(maxAbs) >= 0 {
		return Money{}, ErrAmountOutOfRange
	}
	return Money{amount: d}, nil
}

// Decimal returns the underlying decimal value.
func (m Money) Decimal() decimal.Decimal { return m.amount }

// Float64 formats the amount for the presentation boundary. Internal
// arithmetic never goes through this.
func (m Money) Float64() float64 { return m.amount.InexactFloat64() }

// String returns the amount with exactly two fractional digits.
func (m Money) String() string { return m.amount.StringFixed(2) }

// Add returns m + other.
func (m Money) Add(other Money) Money {
	return Money{amount: m.amount.Add(other.amount)}
}

// Sub returns m - other.
func (m Money) Sub(other Money) Money {
	return Money{amount: m.amount.Sub(other.amount)}
}

// Neg returns the amount with its sign flipped.
func (m Money) Neg() Money { return Money{amount: m.amount.Neg()} }

// IsPositive reports whether the amount is strictly greater than zero.
func (m Money) IsPositive() bool { return m.amount.IsPositive() }

// IsNegative reports whether the amount is strictly less than zero.
func (m Money) IsNegative() bool { return m.amount.IsNegative() }

// IsZero reports whether the amount equals zero.
func (m Money) IsZero() bool { return m.amount.IsZero() }

// Equal reports whether two amounts are numerically equal.
func (m Money) Equal(other Money) bool { return m.amount.Equal(other.amount) }

// LessThan reports whether m < other.
func (m Money) LessThan(other Money) bool {
	return m.amount.LessThan(other.amount)
}
