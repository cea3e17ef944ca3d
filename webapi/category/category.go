// Package category exposes the category CRUD endpoints.
package category

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/finbook/finbook/pkg/config"
	"github.com/finbook/finbook/pkg/domain"
	"github.com/finbook/finbook/pkg/dto"
	"github.com/finbook/finbook/pkg/middleware"
	authsvc "github.com/finbook/finbook/pkg/service/auth"
	categorysvc "github.com/finbook/finbook/pkg/service/category"
	"github.com/finbook/finbook/webapi/common"
)

// Routes registers the category endpoints:
//   - POST   /categories     : Create a category.
//   - GET    /categories     : List categories, most used first. ?type filters.
//   - GET    /categories/:id : Category details.
//   - PUT|PATCH /categories/:id : Rename a category.
//   - DELETE /categories/:id : Delete a category and its records.
func Routes(app *fiber.App, categorySvc *categorysvc.Service, authSvc *authsvc.Service, cfg *config.App) {
	protected := middleware.Protected(cfg.Jwt)
	app.Post("/categories", protected, Create(categorySvc, authSvc))
	app.Get("/categories", protected, List(categorySvc, authSvc))
	app.Get("/categories/:id", protected, Get(categorySvc, authSvc))
	app.Put("/categories/:id", protected, Update(categorySvc, authSvc))
	app.Patch("/categories/:id", protected, Update(categorySvc, authSvc))
	app.Delete("/categories/:id", protected, Delete(categorySvc, authSvc))
}

// Create adds a category for the current user.
func Create(categorySvc *categorysvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.CurrentUserID(c, authSvc)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err, fiber.StatusUnauthorized)
		}
		input, err := common.BindAndValidate[CreateCategoryRequest](c)
		if input == nil {
			return err
		}
		t, err := domain.ParseCategoryType(input.Type)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid category type", err)
		}
		created, err := categorySvc.Create(c.Context(), dto.CategoryCreate{
			UserID: userID,
			Name:   input.Name,
			Type:   t,
		})
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to create category", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Category created", read(created, 0))
	}
}

// List returns a page of the user's categories.
func List(categorySvc *categorysvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.CurrentUserID(c, authSvc)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err, fiber.StatusUnauthorized)
		}
		var t domain.CategoryType
		if raw := c.Query("type"); raw != "" {
			if t, err = domain.ParseCategoryType(raw); err != nil {
				return common.ProblemDetailsJSON(c, "Invalid category type", err)
			}
		}
		page, err := categorySvc.List(c.Context(), userID, t, common.ParsePage(c))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to list categories", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Categories", page)
	}
}

// Get returns one category.
func Get(categorySvc *categorysvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, id, ok := userAndID(c, authSvc)
		if !ok {
			return nil
		}
		category, err := categorySvc.Get(c.Context(), userID, id)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to get category", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Category", read(category, 0))
	}
}

// Update renames a category.
func Update(categorySvc *categorysvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, id, ok := userAndID(c, authSvc)
		if !ok {
			return nil
		}
		input, err := common.BindAndValidate[UpdateCategoryRequest](c)
		if input == nil {
			return err
		}
		updated, err := categorySvc.Update(c.Context(), userID, id, dto.CategoryUpdate{Name: input.Name})
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to update category", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Category updated", read(updated, 0))
	}
}

// Delete removes a category.
func Delete(categorySvc *categorysvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, id, ok := userAndID(c, authSvc)
		if !ok {
			return nil
		}
		if err := categorySvc.Delete(c.Context(), userID, id); err != nil {
			return common.ProblemDetailsJSON(c, "Failed to delete category", err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

func userAndID(c *fiber.Ctx, authSvc *authsvc.Service) (userID, id uuid.UUID, ok bool) {
	userID, err := common.CurrentUserID(c, authSvc)
	if err != nil {
		_ = common.ProblemDetailsJSON(c, "Unauthorized", err, fiber.StatusUnauthorized)
		return uuid.Nil, uuid.Nil, false
	}
	id, err = uuid.Parse(c.Params("id"))
	if err != nil {
		_ = common.ProblemDetailsJSON(c, "Invalid category ID", err, fiber.StatusBadRequest)
		return uuid.Nil, uuid.Nil, false
	}
	return userID, id, true
}

func read(category *domain.Category, usage int64) dto.CategoryRead {
	return dto.CategoryRead{
		ID:         category.ID,
		Name:       category.Name,
		Type:       category.Type,
		UsageCount: usage,
		CreatedAt:  category.CreatedAt,
	}
}
