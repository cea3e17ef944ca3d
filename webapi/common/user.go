package common

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenParser extracts the authenticated user from a verified JWT.
type TokenParser interface {
	GetCurrentUserID(token *jwt.Token) (uuid.UUID, error)
}

// ErrMissingUserContext means the route ran without the JWT middleware or the
// token was not stored on the context.
var ErrMissingUserContext = errors.New("missing user context")

// CurrentUserID resolves the authenticated user's ID from the request
// context populated by the JWT middleware.
func CurrentUserID(c *fiber.Ctx, parser TokenParser) (uuid.UUID, error) {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok {
		return uuid.Nil, ErrMissingUserContext
	}
	return parser.GetCurrentUserID(token)
}
