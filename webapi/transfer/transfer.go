// Package transfer exposes the account-to-account transfer endpoints.
package transfer

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

// Routes registers the transfer endpoints:
//   - POST   /transfers     : Move money between two accounts.
//   - GET    /transfers     : List transfers between regular accounts.
//   - GET    /transfers/:id : Transfer details.
//   - PUT|PATCH /transfers/:id : Change the amount; balances move by the delta.
//   - DELETE /transfers/:id : Delete a transfer; it is reversed in full.
func Routes(app *fiber.App, ledgerSvc *ledgersvc.Service, authSvc *authsvc.Service, cfg *config.App) {
	protected := middleware.Protected(cfg.Jwt)
	app.Post("/transfers", protected, Create(ledgerSvc, authSvc))
	app.Get("/transfers", protected, List(ledgerSvc, authSvc))
	app.Get("/transfers/:id", protected, Get(ledgerSvc, authSvc))
	app.Put("/transfers/:id", protected, Update(ledgerSvc, authSvc))
	app.Patch("/transfers/:id", protected, Update(ledgerSvc, authSvc))
	app.Delete("/transfers/:id", protected, Delete(ledgerSvc, authSvc))
}

// Create moves an amount between two of the user's accounts.
func Create(ledgerSvc *ledgersvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.CurrentUserID(c, authSvc)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err, fiber.StatusUnauthorized)
		}
		input, err := common.BindAndValidate[CreateTransferRequest](c)
		if input == nil {
			return err
		}
		amount, err := money.New(input.Amount)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid amount", err, fiber.StatusBadRequest)
		}
		sourceID, err := uuid.Parse(input.SourceAccountID)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid source account ID", err, fiber.StatusBadRequest)
		}
		destinationID, err := uuid.Parse(input.DestinationAccountID)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid destination account ID", err, fiber.StatusBadRequest)
		}
		timestamp := input.Timestamp
		if timestamp.IsZero() {
			timestamp = time.Now().UTC()
		}
		created, err := ledgerSvc.CreateTransfer(c.Context(), userID, dto.TransferCreate{
			SourceAccountID:      sourceID,
			DestinationAccountID: destinationID,
			Amount:               amount,
			Timestamp:            timestamp,
		})
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to create transfer", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Transfer created", read(created))
	}
}

// List returns a page of the user's transfers.
func List(ledgerSvc *ledgersvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.CurrentUserID(c, authSvc)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err, fiber.StatusUnauthorized)
		}
		page, err := ledgerSvc.ListTransfers(c.Context(), userID, common.ParsePage(c))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to list transfers", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Transfers", page)
	}
}

// Get returns one transfer.
func Get(ledgerSvc *ledgersvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, id, ok := userAndID(c, authSvc)
		if !ok {
			return nil
		}
		transfer, err := ledgerSvc.GetTransfer(c.Context(), userID, id)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to get transfer", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Transfer", read(transfer))
	}
}

// Update changes a transfer's amount.
func Update(ledgerSvc *ledgersvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, id, ok := userAndID(c, authSvc)
		if !ok {
			return nil
		}
		input, err := common.BindAndValidate[UpdateTransferRequest](c)
		if input == nil {
			return err
		}
		amount, err := money.New(input.Amount)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid amount", err, fiber.StatusBadRequest)
		}
		updated, err := ledgerSvc.UpdateTransfer(c.Context(), userID, id, amount)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to update transfer", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Transfer updated", read(updated))
	}
}

// Delete removes a transfer and reverses it.
func Delete(ledgerSvc *ledgersvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, id, ok := userAndID(c, authSvc)
		if !ok {
			return nil
		}
		if err := ledgerSvc.DeleteTransfer(c.Context(), userID, id); err != nil {
			return common.ProblemDetailsJSON(c, "Failed to delete transfer", err)
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
		_ = common.ProblemDetailsJSON(c, "Invalid transfer ID", err, fiber.StatusBadRequest)
		return uuid.Nil, uuid.Nil, false
	}
	return userID, id, true
}

func read(transfer *domain.Transfer) fiber.Map {
	return fiber.Map{
		"id":                  transfer.ID,
		"source_account":      transfer.SourceAccountID,
		"destination_account": transfer.DestinationAccountID,
		"amount":              transfer.Amount.Float64(),
		"timestamp":           transfer.Timestamp,
	}
}
