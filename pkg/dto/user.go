package dto

import (
	"time"

	"github.com/google/uuid"
)

// UserCreate is the input for registering a user. PasswordHash is already
// hashed; plaintext never crosses the service boundary.
type UserCreate struct {
	ID           uuid.UUID
	Username     string
	Email        string
	PasswordHash string
}

// UserRead is the read-optimized shape for user responses.
type UserRead struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}
