// Package app wires configuration, the unit of work and the services into
// one application object the API and the CLI build on.
package app

import (
	"log/slog"

	"github.com/finbook/finbook/pkg/config"
	"github.com/finbook/finbook/pkg/repository"
	"github.com/finbook/finbook/pkg/service/account"
	"github.com/finbook/finbook/pkg/service/auth"
	"github.com/finbook/finbook/pkg/service/category"
	"github.com/finbook/finbook/pkg/service/debt"
	"github.com/finbook/finbook/pkg/service/ledger"
	"github.com/finbook/finbook/pkg/service/stats"
)

// Deps are the infrastructure dependencies the services are built from.
type Deps struct {
	Uow    repository.UnitOfWork
	Logger *slog.Logger
}

// App bundles the configured services.
type App struct {
	Deps   *Deps
	Config *config.App

	AuthService     *auth.Service
	AccountService  *account.Service
	CategoryService *category.Service
	LedgerService   *ledger.Service
	DebtService     *debt.Service
	StatsService    *stats.Service
}

// New builds the application object.
func New(deps *Deps, cfg *config.App) *App {
	return &App{
		Deps:            deps,
		Config:          cfg,
		AuthService:     auth.NewService(deps.Uow, cfg.Jwt, deps.Logger),
		AccountService:  account.NewService(deps.Uow, deps.Logger),
		CategoryService: category.NewService(deps.Uow, deps.Logger),
		LedgerService:   ledger.NewService(deps.Uow, deps.Logger),
		DebtService:     debt.NewService(deps.Uow, deps.Logger),
		StatsService:    stats.NewService(deps.Uow, deps.Logger),
	}
}
