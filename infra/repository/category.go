package repository

import (
	"context"

	"github.com/finbook/finbook/pkg/domain"
	"github.com/finbook/finbook/pkg/dto"
	repo "github.com/finbook/finbook/pkg/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type categoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository creates a category repository on the given session.
func NewCategoryRepository(db *gorm.DB) repo.CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) Create(ctx context.Context, create dto.CategoryCreate) error {
	cat := Category{
		ID:     create.ID,
		UserID: create.UserID,
		Name:   create.Name,
		Type:   string(create.Type),
	}
	err := r.db.WithContext(ctx).Create(&cat).Error
	if err != nil && isUniqueViolation(err) {
		return domain.ErrDuplicateName
	}
	return err
}

func (r *categoryRepository) Get(ctx context.Context, userID, id uuid.UUID) (*domain.Category, error) {
	var cat Category
	err := r.db.WithContext(ctx).
		First(&cat, "id = ? AND user_id = ?", id, userID).Error
	if err != nil {
		return nil, translateNotFound(err, domain.ErrCategoryNotFound)
	}
	return &domain.Category{
		ID:        cat.ID,
		UserID:    cat.UserID,
		Name:      cat.Name,
		Type:      domain.CategoryType(cat.Type),
		CreatedAt: cat.CreatedAt,
		UpdatedAt: cat.UpdatedAt,
	}, nil
}

func (r *categoryRepository) Exists(ctx context.Context, userID uuid.UUID, name string, t domain.CategoryType) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&Category{}).
		Where("user_id = ? AND name = ? AND type = ?", userID, name, string(t)).
		Count(&count).Error
	return count > 0, err
}

func (r *categoryRepository) Update(ctx context.Context, userID, id uuid.UUID, update dto.CategoryUpdate) error {
	if update.Name == nil {
		return nil
	}
	res := r.db.WithContext(ctx).Model(&Category{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("name", *update.Name)
	if res.Error != nil {
		if isUniqueViolation(res.Error) {
			return domain.ErrDuplicateName
		}
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrCategoryNotFound
	}
	return nil
}

func (r *categoryRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&Category{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrCategoryNotFound
	}
	return nil
}

func (r *categoryRepository) ListByUser(ctx context.Context, userID uuid.UUID, t domain.CategoryType, page dto.Page) ([]dto.CategoryRead, int64, error) {
	q := r.db.WithContext(ctx).Model(&Category{}).
		Where("categories.user_id = ?", userID)
	if t != "" {
		q = q.Where("categories.type = ?", string(t))
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return nil, 0, err
	}

	// Most used first, so the common picks surface at the top of the list.
	var rows []dto.CategoryRead
	err := q.
		Select("categories.id, categories.name, categories.type, categories.created_at, COUNT(transactions.id) AS usage_count").
		Joins("LEFT JOIN transactions ON transactions.category_id = categories.id").
		Group("categories.id, categories.name, categories.type, categories.created_at").
		Order("usage_count DESC, categories.name ASC").
		Offset(page.Offset()).Limit(page.Size).
		Scan(&rows).Error
	if err != nil {
		return nil, 0, err
	}
	return rows, count, nil
}
