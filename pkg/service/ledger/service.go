// Package ledger implements the balance-adjustment protocol: every
// create/update/delete of a financial record or transfer mutates the
// affected account balances in the same database transaction, with the
// account rows locked for the duration.
package ledger

import (
	"log/slog"

	"github.com/finbook/finbook/pkg/repository"
)

// Service applies financial-record and transfer mutations together with
// their balance adjustments.
type Service struct {
	uow    repository.UnitOfWork
	logger *slog.Logger
}

// NewService creates a ledger service.
func NewService(uow repository.UnitOfWork, logger *slog.Logger) *Service {
	return &Service{uow: uow, logger: logger}
}
