// Package account exposes the account CRUD endpoints.
package account

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/finbook/finbook/pkg/config"
	"github.com/finbook/finbook/pkg/domain"
	"github.com/finbook/finbook/pkg/dto"
	"github.com/finbook/finbook/pkg/middleware"
	"github.com/finbook/finbook/pkg/money"
	accountsvc "github.com/finbook/finbook/pkg/service/account"
	authsvc "github.com/finbook/finbook/pkg/service/auth"
	"github.com/finbook/finbook/webapi/common"
)

// Routes registers the account endpoints:
//   - POST   /accounts            : Create an account.
//   - GET    /accounts            : List accounts with the total active balance.
//   - GET    /accounts/:id        : Account details.
//   - PUT|PATCH /accounts/:id     : Update name, balance or active flag.
//   - PATCH  /accounts/:id/toggle : Flip the active flag.
//   - DELETE /accounts/:id        : Delete the account and cascade its history.
func Routes(app *fiber.App, accountSvc *accountsvc.Service, authSvc *authsvc.Service, cfg *config.App) {
	protected := middleware.Protected(cfg.Jwt)
	app.Post("/accounts", protected, Create(accountSvc, authSvc))
	app.Get("/accounts", protected, List(accountSvc, authSvc))
	app.Get("/accounts/:id", protected, Get(accountSvc, authSvc))
	app.Put("/accounts/:id", protected, Update(accountSvc, authSvc))
	app.Patch("/accounts/:id", protected, Update(accountSvc, authSvc))
	app.Patch("/accounts/:id/toggle", protected, Toggle(accountSvc, authSvc))
	app.Delete("/accounts/:id", protected, Delete(accountSvc, authSvc))
}

// Create adds an account for the current user.
func Create(accountSvc *accountsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.CurrentUserID(c, authSvc)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err, fiber.StatusUnauthorized)
		}
		input, err := common.BindAndValidate[CreateAccountRequest](c)
		if input == nil {
			return err
		}
		balance, err := money.New(input.Balance)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid balance", err, fiber.StatusBadRequest)
		}
		a, err := accountSvc.Create(c.Context(), dto.AccountCreate{
			UserID:  userID,
			Name:    input.Name,
			Balance: balance,
		})
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to create account", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Account created", read(a))
	}
}

// List returns a page of the user's accounts plus the total active balance.
func List(accountSvc *accountsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.CurrentUserID(c, authSvc)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err, fiber.StatusUnauthorized)
		}
		page, total, err := accountSvc.List(c.Context(), userID, common.ParsePage(c))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to list accounts", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Accounts", dto.AccountList{
			Count:        page.Count,
			Results:      page.Results,
			TotalBalance: total,
		})
	}
}

// Get returns one account.
func Get(accountSvc *accountsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, id, ok := userAndID(c, authSvc)
		if !ok {
			return nil
		}
		a, err := accountSvc.Get(c.Context(), userID, id)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to get account", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Account", read(a))
	}
}

// Update changes account fields.
func Update(accountSvc *accountsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, id, ok := userAndID(c, authSvc)
		if !ok {
			return nil
		}
		input, err := common.BindAndValidate[UpdateAccountRequest](c)
		if input == nil {
			return err
		}
		update := dto.AccountUpdate{Name: input.Name, IsActive: input.IsActive}
		if input.Balance != nil {
			balance, err := money.New(*input.Balance)
			if err != nil {
				return common.ProblemDetailsJSON(c, "Invalid balance", err, fiber.StatusBadRequest)
			}
			update.Balance = &balance
		}
		a, err := accountSvc.Update(c.Context(), userID, id, update)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to update account", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Account updated", read(a))
	}
}

// Toggle flips the account's active flag.
func Toggle(accountSvc *accountsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, id, ok := userAndID(c, authSvc)
		if !ok {
			return nil
		}
		a, err := accountSvc.ToggleActive(c.Context(), userID, id)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to toggle account", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Account toggled", read(a))
	}
}

// Delete removes an account.
func Delete(accountSvc *accountsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, id, ok := userAndID(c, authSvc)
		if !ok {
			return nil
		}
		if err := accountSvc.Delete(c.Context(), userID, id); err != nil {
			return common.ProblemDetailsJSON(c, "Failed to delete account", err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// userAndID resolves the current user and the :id path parameter. On failure
// the error response is already written and ok is false.
func userAndID(c *fiber.Ctx, authSvc *authsvc.Service) (userID, id uuid.UUID, ok bool) {
	userID, err := common.CurrentUserID(c, authSvc)
	if err != nil {
		_ = common.ProblemDetailsJSON(c, "Unauthorized", err, fiber.StatusUnauthorized)
		return uuid.Nil, uuid.Nil, false
	}
	id, err = uuid.Parse(c.Params("id"))
	if err != nil {
		_ = common.ProblemDetailsJSON(c, "Invalid account ID", err, fiber.StatusBadRequest)
		return uuid.Nil, uuid.Nil, false
	}
	return userID, id, true
}

func read(a *domain.Account) dto.AccountRead {
	return dto.AccountRead{
		ID:              a.ID,
		Name:            a.Name,
		Balance:         a.Balance.Float64(),
		IsActive:        a.IsActive,
		IsSystemAccount: a.IsSystemAccount,
		CreatedAt:       a.CreatedAt,
	}
}
