package domain

import (
	"time"

	"github.com/google/uuid"
)

// User owns accounts, categories and every financial record derived from them.
type User struct {
	ID           uuid.UUID
	Username     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
