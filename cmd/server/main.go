package main

import (
	"fmt"

	log "github.com/charmbracelet/log"

	"github.com/finbook/finbook/infra"
	infrarepo "github.com/finbook/finbook/infra/repository"
	"github.com/finbook/finbook/pkg/app"
	"github.com/finbook/finbook/pkg/config"
	"github.com/finbook/finbook/webapi"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load application configuration: %w", err)
	}

	logger := infra.NewLogger(cfg.Log)

	db, err := infra.NewDBConnection(cfg.DB, cfg.Env)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	a := app.New(&app.Deps{
		Uow:    infrarepo.NewUoW(db),
		Logger: logger,
	}, cfg)

	fiberApp := webapi.SetupApp(a)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("starting server", "env", cfg.Env, "address", addr)

	return fiberApp.Listen(addr)
}
