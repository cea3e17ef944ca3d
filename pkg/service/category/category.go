// Package category manages the user's income and expense categories.
package category

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/finbook/finbook/pkg/domain"
	"github.com/finbook/finbook/pkg/dto"
	"github.com/finbook/finbook/pkg/repository"
)

// Service manages categories.
type Service struct {
	uow    repository.UnitOfWork
	logger *slog.Logger
}

// NewService creates a category service.
func NewService(uow repository.UnitOfWork, logger *slog.Logger) *Service {
	return &Service{uow: uow, logger: logger}
}

// Create adds a category. A user may not hold two categories with the same
// name and type.
func (s *Service) Create(ctx context.Context, create dto.CategoryCreate) (*domain.Category, error) {
	if create.ID == uuid.Nil {
		create.ID = uuid.New()
	}
	var created *domain.Category
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		categories, err := uow.CategoryRepository()
		if err != nil {
			return err
		}
		exists, err := categories.Exists(ctx, create.UserID, create.Name, create.Type)
		if err != nil {
			return err
		}
		if exists {
			return domain.ErrDuplicateName
		}
		if err := categories.Create(ctx, create); err != nil {
			return err
		}
		created, err = categories.Get(ctx, create.UserID, create.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("category created", "category_id", created.ID, "name", created.Name, "type", created.Type)
	return created, nil
}

// Get returns one of the user's categories.
func (s *Service) Get(ctx context.Context, userID, id uuid.UUID) (*domain.Category, error) {
	categories, err := s.uow.CategoryRepository()
	if err != nil {
		return nil, err
	}
	return categories.Get(ctx, userID, id)
}

// Update renames a category. The duplicate check covers the resulting
// (name, type) pair.
func (s *Service) Update(ctx context.Context, userID, id uuid.UUID, update dto.CategoryUpdate) (*domain.Category, error) {
	var updated *domain.Category
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		categories, err := uow.CategoryRepository()
		if err != nil {
			return err
		}
		category, err := categories.Get(ctx, userID, id)
		if err != nil {
			return err
		}
		if update.Name != nil && *update.Name != category.Name {
			exists, err := categories.Exists(ctx, userID, *update.Name, category.Type)
			if err != nil {
				return err
			}
			if exists {
				return domain.ErrDuplicateName
			}
		}
		if err := categories.Update(ctx, userID, id, update); err != nil {
			return err
		}
		updated, err = categories.Get(ctx, userID, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("category updated", "category_id", id)
	return updated, nil
}

// Delete removes a category and cascades to its records.
func (s *Service) Delete(ctx context.Context, userID, id uuid.UUID) error {
	categories, err := s.uow.CategoryRepository()
	if err != nil {
		return err
	}
	if err := categories.Delete(ctx, userID, id); err != nil {
		return err
	}
	s.logger.Info("category deleted", "category_id", id)
	return nil
}

// List returns a page of the user's categories, most used first, optionally
// filtered by type.
func (s *Service) List(ctx context.Context, userID uuid.UUID, t domain.CategoryType, page dto.Page) (*dto.PageResult[dto.CategoryRead], error) {
	categories, err := s.uow.CategoryRepository()
	if err != nil {
		return nil, err
	}
	rows, count, err := categories.ListByUser(ctx, userID, t, page)
	if err != nil {
		return nil, err
	}
	return &dto.PageResult[dto.CategoryRead]{Count: count, Results: rows}, nil
}
