// Package debt exposes the debt endpoints: opening debts and lends against
// the synthetic system accounts, repaying principal, and listing what is
// outstanding.
package debt

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/finbook/finbook/pkg/config"
	"github.com/finbook/finbook/pkg/domain"
	"github.com/finbook/finbook/pkg/middleware"
	"github.com/finbook/finbook/pkg/money"
	authsvc "github.com/finbook/finbook/pkg/service/auth"
	debtsvc "github.com/finbook/finbook/pkg/service/debt"
	"github.com/finbook/finbook/webapi/common"
)

// Routes registers the debt endpoints:
//   - POST   /debts/accounts  : Ensure the two synthetic accounts exist.
//   - POST   /debts           : Open a debt or lend.
//   - POST   /debts/:id/repay : Pay down principal; the debt closes at zero.
//   - GET    /debts           : List outstanding debts. ?type filters by kind.
//   - GET    /debts/:id       : Debt details with the remaining principal.
func Routes(app *fiber.App, debtSvc *debtsvc.Service, authSvc *authsvc.Service, cfg *config.App) {
	protected := middleware.Protected(cfg.Jwt)
	app.Post("/debts/accounts", protected, CreateAccounts(debtSvc, authSvc))
	app.Post("/debts", protected, Create(debtSvc, authSvc))
	app.Post("/debts/:id/repay", protected, Repay(debtSvc, authSvc))
	app.Get("/debts", protected, List(debtSvc, authSvc))
	app.Get("/debts/:id", protected, Get(debtSvc, authSvc))
}

// CreateAccounts lazily creates the user's "debt" and "lend" accounts.
func CreateAccounts(debtSvc *debtsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.CurrentUserID(c, authSvc)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err, fiber.StatusUnauthorized)
		}
		accounts, err := debtSvc.EnsureSystemAccounts(c.Context(), userID)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to create debt accounts", err)
		}
		names := make([]string, 0, len(accounts))
		for _, a := range accounts {
			names = append(names, a.Name)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Debt accounts ready", fiber.Map{"accounts": names})
	}
}

// Create opens a debt or lend.
func Create(debtSvc *debtsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.CurrentUserID(c, authSvc)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err, fiber.StatusUnauthorized)
		}
		input, err := common.BindAndValidate[CreateDebtRequest](c)
		if input == nil {
			return err
		}
		kind, err := domain.ParseDebtKind(input.Type)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid debt type", err)
		}
		amount, err := money.New(input.Amount)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid amount", err, fiber.StatusBadRequest)
		}
		accountID, err := uuid.Parse(input.AccountID)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid account ID", err, fiber.StatusBadRequest)
		}
		date := time.Now().UTC()
		if input.Date != "" {
			if date, err = time.Parse("2006-01-02", input.Date); err != nil {
				return common.ProblemDetailsJSON(c, "Invalid date", err, fiber.StatusBadRequest)
			}
		}
		created, err := debtSvc.Open(c.Context(), debtsvc.OpenInput{
			UserID:              userID,
			AccountID:           accountID,
			Kind:                kind,
			Amount:              amount,
			BorrowerDescription: input.BorrowerDescription,
			Date:                date,
		})
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to create debt", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Debt created", fiber.Map{
			"id":                   created.ID,
			"transfer_id":          created.TransferID,
			"borrower_description": created.BorrowerDescription,
		})
	}
}

// Repay pays down a debt's principal.
func Repay(debtSvc *debtsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, id, ok := userAndID(c, authSvc)
		if !ok {
			return nil
		}
		input, err := common.BindAndValidate[RepayDebtRequest](c)
		if input == nil {
			return err
		}
		amount, err := money.New(input.Amount)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid amount", err, fiber.StatusBadRequest)
		}
		if err := debtSvc.Repay(c.Context(), userID, id, amount); err != nil {
			return common.ProblemDetailsJSON(c, "Failed to repay debt", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Debt repaid", nil)
	}
}

// List returns a page of the user's debts.
func List(debtSvc *debtsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.CurrentUserID(c, authSvc)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err, fiber.StatusUnauthorized)
		}
		var kind domain.DebtKind
		if raw := c.Query("type"); raw != "" {
			if kind, err = domain.ParseDebtKind(raw); err != nil {
				return common.ProblemDetailsJSON(c, "Invalid debt type", err)
			}
		}
		page, err := debtSvc.List(c.Context(), userID, kind, common.ParsePage(c))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to list debts", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Debts", page)
	}
}

// Get returns one debt with its remaining principal.
func Get(debtSvc *debtsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, id, ok := userAndID(c, authSvc)
		if !ok {
			return nil
		}
		record, transfer, err := debtSvc.Get(c.Context(), userID, id)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to get debt", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Debt", fiber.Map{
			"id":                   record.ID,
			"transfer_id":          record.TransferID,
			"borrower_description": record.BorrowerDescription,
			"amount":               transfer.Amount.Float64(),
			"timestamp":            transfer.Timestamp,
		})
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
		_ = common.ProblemDetailsJSON(c, "Invalid debt ID", err, fiber.StatusBadRequest)
		return uuid.Nil, uuid.Nil, false
	}
	return userID, id, true
}
