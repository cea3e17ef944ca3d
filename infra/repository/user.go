package repository

import (
	"context"

	"github.com/finbook/finbook/pkg/domain"
	"github.com/finbook/finbook/pkg/dto"
	repo "github.com/finbook/finbook/pkg/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a user repository on the given session.
func NewUserRepository(db *gorm.DB) repo.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, create dto.UserCreate) error {
	u := User{
		ID:           create.ID,
		Username:     create.Username,
		Email:        create.Email,
		PasswordHash: create.PasswordHash,
	}
	err := r.db.WithContext(ctx).Create(&u).Error
	if err != nil && isUniqueViolation(err) {
		return domain.ErrEmailAlreadyExists
	}
	return err
}

func (r *userRepository) Get(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	var u User
	err := r.db.WithContext(ctx).First(&u, "id = ?", id).Error
	if err != nil {
		return nil, translateNotFound(err, domain.ErrUserNotFound)
	}
	return mapUser(&u), nil
}

func (r *userRepository) GetByIdentity(ctx context.Context, identity string) (*domain.User, error) {
	var u User
	err := r.db.WithContext(ctx).
		First(&u, "email = ? OR username = ?", identity, identity).Error
	if err != nil {
		return nil, translateNotFound(err, domain.ErrUserNotFound)
	}
	return mapUser(&u), nil
}

func (r *userRepository) ExistsByEmailOrUsername(ctx context.Context, email, username string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&User{}).
		Where("email = ? OR username = ?", email, username).
		Count(&count).Error
	return count > 0, err
}

func mapUser(u *User) *domain.User {
	return &domain.User{
		ID:           u.ID,
		Username:     u.Username,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}
