// Package transaction exposes the financial record endpoints. Every write
// goes through the ledger service so the record and its balance adjustment
// commit together.
package transaction

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/finbook/finbook/pkg/config"
	"github.com/finbook/finbook/pkg/domain"
	"github.com/finbook/finbook/pkg/dto"
	"github.com/finbook/finbook/pkg/middleware"
	"github.com/finbook/finbook/pkg/money"
	authsvc "github.com/finbook/finbook/pkg/service/auth"
	ledgersvc "github.com/finbook/finbook/pkg/service/ledger"
	"github.com/finbook/finbook/webapi/common"
)

// Routes registers the record endpoints:
//   - POST   /transactions     : Record a financial event.
//   - GET    /transactions     : List records, newest first, with filters.
//   - GET    /transactions/:id : Record details.
//   - PUT|PATCH /transactions/:id : Update a record; balances are reconciled.
//   - DELETE /transactions/:id : Delete a record; its effect is reversed.
func Routes(app *fiber.App, ledgerSvc *ledgersvc.Service, authSvc *authsvc.Service, cfg *config.App) {
	protected := middleware.Protected(cfg.Jwt)
	app.Post("/transactions", protected, Create(ledgerSvc, authSvc))
	app.Get("/transactions", protected, List(ledgerSvc, authSvc))
	app.Get("/transactions/:id", protected, Get(ledgerSvc, authSvc))
	app.Put("/transactions/:id", protected, Update(ledgerSvc, authSvc))
	app.Patch("/transactions/:id", protected, Update(ledgerSvc, authSvc))
	app.Delete("/transactions/:id", protected, Delete(ledgerSvc, authSvc))
}

// Create records a financial event.
func Create(ledgerSvc *ledgersvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.CurrentUserID(c, authSvc)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err, fiber.StatusUnauthorized)
		}
		input, err := common.BindAndValidate[CreateTransactionRequest](c)
		if input == nil {
			return err
		}
		amount, err := money.New(input.Amount)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid amount", err, fiber.StatusBadRequest)
		}
		categoryID, err := uuid.Parse(input.CategoryID)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid category ID", err, fiber.StatusBadRequest)
		}
		accountID, err := uuid.Parse(input.AccountID)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid account ID", err, fiber.StatusBadRequest)
		}
		occurredAt := input.OccurredAt
		if occurredAt.IsZero() {
			occurredAt = time.Now().UTC()
		}
		record, err := ledgerSvc.CreateTransaction(c.Context(), dto.TransactionCreate{
			UserID:     userID,
			CategoryID: categoryID,
			AccountID:  accountID,
			Amount:     amount,
			OccurredAt: occurredAt,
			Comment:    input.Comment,
		})
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to create transaction", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Transaction created", read(record))
	}
}

// List returns a filtered page of the user's records.
func List(ledgerSvc *ledgersvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.CurrentUserID(c, authSvc)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err, fiber.StatusUnauthorized)
		}
		filter, err := parseFilter(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid filter", err, fiber.StatusBadRequest)
		}
		page, err := ledgerSvc.ListTransactions(c.Context(), userID, filter, common.ParsePage(c))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to list transactions", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Transactions", page)
	}
}

// Get returns one record.
func Get(ledgerSvc *ledgersvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, id, ok := userAndID(c, authSvc)
		if !ok {
			return nil
		}
		record, err := ledgerSvc.GetTransaction(c.Context(), userID, id)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to get transaction", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Transaction", read(record))
	}
}

// Update changes a record and reconciles the balances it touched.
func Update(ledgerSvc *ledgersvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, id, ok := userAndID(c, authSvc)
		if !ok {
			return nil
		}
		input, err := common.BindAndValidate[UpdateTransactionRequest](c)
		if input == nil {
			return err
		}
		update := dto.TransactionUpdate{OccurredAt: input.OccurredAt, Comment: input.Comment}
		if input.Amount != nil {
			amount, err := money.New(*input.Amount)
			if err != nil {
				return common.ProblemDetailsJSON(c, "Invalid amount", err, fiber.StatusBadRequest)
			}
			update.Amount = &amount
		}
		if input.CategoryID != nil {
			categoryID, err := uuid.Parse(*input.CategoryID)
			if err != nil {
				return common.ProblemDetailsJSON(c, "Invalid category ID", err, fiber.StatusBadRequest)
			}
			update.CategoryID = &categoryID
		}
		if input.AccountID != nil {
			accountID, err := uuid.Parse(*input.AccountID)
			if err != nil {
				return common.ProblemDetailsJSON(c, "Invalid account ID", err, fiber.StatusBadRequest)
			}
			update.AccountID = &accountID
		}
		record, err := ledgerSvc.UpdateTransaction(c.Context(), userID, id, update)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to update transaction", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Transaction updated", read(record))
	}
}

// Delete removes a record and reverses its balance effect.
func Delete(ledgerSvc *ledgersvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, id, ok := userAndID(c, authSvc)
		if !ok {
			return nil
		}
		if err := ledgerSvc.DeleteTransaction(c.Context(), userID, id); err != nil {
			return common.ProblemDetailsJSON(c, "Failed to delete transaction", err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

func parseFilter(c *fiber.Ctx) (dto.TransactionFilter, error) {
	var filter dto.TransactionFilter
	if raw := c.Query("type"); raw != "" {
		t, err := domain.ParseCategoryType(raw)
		if err != nil {
			return filter, err
		}
		filter.Type = t
	}
	filter.AccountName = c.Query("account")
	filter.CategoryName = c.Query("category")
	if raw := c.Query("from"); raw != "" {
		from, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			if from, err = time.Parse("2006-01-02", raw); err != nil {
				return filter, err
			}
		}
		filter.From = &from
	}
	if raw := c.Query("to"); raw != "" {
		to, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			if to, err = time.Parse("2006-01-02", raw); err != nil {
				return filter, err
			}
		}
		filter.To = &to
	}
	if raw := c.Query("amount_min"); raw != "" {
		m, err := money.Parse(raw)
		if err != nil {
			return filter, err
		}
		filter.AmountMin = &m
	}
	if raw := c.Query("amount_max"); raw != "" {
		m, err := money.Parse(raw)
		if err != nil {
			return filter, err
		}
		filter.AmountMax = &m
	}
	return filter, nil
}

func userAndID(c *fiber.Ctx, authSvc *authsvc.Service) (userID, id uuid.UUID, ok bool) {
	userID, err := common.CurrentUserID(c, authSvc)
	if err != nil {
		_ = common.ProblemDetailsJSON(c, "Unauthorized", err, fiber.StatusUnauthorized)
		return uuid.Nil, uuid.Nil, false
	}
	id, err = uuid.Parse(c.Params("id"))
	if err != nil {
		_ = common.ProblemDetailsJSON(c, "Invalid transaction ID", err, fiber.StatusBadRequest)
		return uuid.Nil, uuid.Nil, false
	}
	return userID, id, true
}

func read(record *domain.Transaction) fiber.Map {
	return fiber.Map{
		"id":          record.ID,
		"category_id": record.CategoryID,
		"account_id":  record.AccountID,
		"amount":      record.Amount.Float64(),
		"occurred_at": record.OccurredAt,
		"comment":     record.Comment,
	}
}
