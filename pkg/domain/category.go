package domain

import (
	"time"

	"github.com/google/uuid"
)

// CategoryType discriminates income from expense categories. The polarity of
// every balance adjustment for a financial record derives from it.
type CategoryType string

const (
	Income  CategoryType = "income"
	Expense CategoryType = "expense"
)

// ParseCategoryType validates a category type received from the API.
func ParseCategoryType(s string) (CategoryType, error) {
	switch CategoryType(s) {
	case Income:
		return Income, nil
	case Expense:
		return Expense, nil
	default:
		return "", ErrInvalidCategoryType
	}
}

// Sign returns +1 for income and -1 for expense.
func (t CategoryType) Sign() int {
	if t == Income {
		return 1
	}
	return -1
}

// Category is a user-scoped label for financial records, unique per
// (user, name, type).
type Category struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Name      string
	Type      CategoryType
	CreatedAt time.Time
	UpdatedAt time.Time
}
