// Package debt manages debts and lends on top of the transfer machinery.
// Each debt is a transfer between a real account and one of two synthetic
// per-user accounts ("debt", "lend"); the transfer amount is the remaining
// principal.
package debt

import (
	"log/slog"

	"github.com/finbook/finbook/pkg/repository"
)

// Service opens, repays and lists debts.
type Service struct {
	uow    repository.UnitOfWork
	logger *slog.Logger
}

// NewService creates a debt service.
func NewService(uow repository.UnitOfWork, logger *slog.Logger) *Service {
	return &Service{uow: uow, logger: logger}
}
