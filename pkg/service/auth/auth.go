// Package auth handles registration, login and JWT issuance.
package auth

import (
	"context"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/finbook/finbook/pkg/config"
	"github.com/finbook/finbook/pkg/domain"
	"github.com/finbook/finbook/pkg/dto"
	"github.com/finbook/finbook/pkg/repository"
)

// Service authenticates users and issues tokens.
type Service struct {
	uow    repository.UnitOfWork
	cfg    *config.Jwt
	logger *slog.Logger
}

// NewService creates an auth service.
func NewService(uow repository.UnitOfWork, cfg *config.Jwt, logger *slog.Logger) *Service {
	return &Service{uow: uow, cfg: cfg, logger: logger}
}

// RegisterInput is the input for registering a user.
type RegisterInput struct {
	Username string
	Email    string
	Password string
}

// Register creates a user with a bcrypt-hashed password.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*domain.User, error) {
	hash, err := HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	id := uuid.New()
	var created *domain.User
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		users, err := uow.UserRepository()
		if err != nil {
			return err
		}
		exists, err := users.ExistsByEmailOrUsername(ctx, in.Email, in.Username)
		if err != nil {
			return err
		}
		if exists {
			return domain.ErrEmailAlreadyExists
		}
		err = users.Create(ctx, dto.UserCreate{
			ID:           id,
			Username:     in.Username,
			Email:        in.Email,
			PasswordHash: hash,
		})
		if err != nil {
			return err
		}
		created, err = users.Get(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("user registered", "user_id", created.ID, "username", created.Username)
	return created, nil
}

// Login verifies the identity (email or username) and password and returns
// the user. The dummy hash comparison keeps the latency of the not-found path
// indistinguishable from a wrong password.
func (s *Service) Login(ctx context.Context, identity, password string) (*domain.User, error) {
	const dummyHash = "$2a$10$7zFqzDbD3RrlkMTczbXG9OWZ0FLOXjIxXzSZ.QZxkVXjXcx7QZQiC"

	users, err := s.uow.UserRepository()
	if err != nil {
		return nil, err
	}
	u, err := users.GetByIdentity(ctx, identity)
	if err != nil {
		_ = CheckPasswordHash(password, dummyHash)
		s.logger.Warn("login failed", "identity", identity)
		return nil, domain.ErrInvalidCredentials
	}
	if !CheckPasswordHash(password, u.PasswordHash) {
		s.logger.Warn("login failed", "identity", identity)
		return nil, domain.ErrInvalidCredentials
	}
	s.logger.Info("login successful", "user_id", u.ID)
	return u, nil
}

// GenerateToken signs a JWT for the user with HS256.
func (s *Service) GenerateToken(u *domain.User) (string, error) {
	token := jwt.New(jwt.SigningMethodHS256)
	claims := token.Claims.(jwt.MapClaims)
	claims["username"] = u.Username
	claims["email"] = u.Email
	claims["user_id"] = u.ID.String()
	claims["exp"] = time.Now().Add(s.cfg.Expiry).Unix()
	return token.SignedString([]byte(s.cfg.Secret))
}

// GetCurrentUserID extracts the authenticated user's ID from a verified
// token.
func (s *Service) GetCurrentUserID(token *jwt.Token) (uuid.UUID, error) {
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, domain.ErrInvalidCredentials
	}
	raw, ok := claims["user_id"].(string)
	if !ok {
		return uuid.Nil, domain.ErrInvalidCredentials
	}
	return uuid.Parse(raw)
}

// GetUser returns a user by ID.
func (s *Service) GetUser(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	users, err := s.uow.UserRepository()
	if err != nil {
		return nil, err
	}
	return users.Get(ctx, id)
}
