package dto

import (
	"time"

	"github.com/finbook/finbook/pkg/domain"
	"github.com/google/uuid"
)

// CategoryCreate is the input for creating a category.
type CategoryCreate struct {
	ID     uuid.UUID
	UserID uuid.UUID
	Name   string
	Type   domain.CategoryType
}

// CategoryUpdate carries optional field updates for a category.
type CategoryUpdate struct {
	Name *string
}

// CategoryRead is the read-optimized shape for category listings, including
// how many financial records use the category.
type CategoryRead struct {
	ID         uuid.UUID           `json:"id"`
	Name       string              `json:"name"`
	Type       domain.CategoryType `json:"type"`
	UsageCount int64               `json:"usage_count"`
	CreatedAt  time.Time           `json:"created_at"`
}
