// Package infra wires external resources: the database connection and the
// application logger.
package infra

import (
	"errors"
	"time"

	"github.com/finbook/finbook/infra/repository"
	"github.com/finbook/finbook/pkg/config"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDBConnection opens the postgres connection, tunes the pool, and runs
// the schema migration.
func NewDBConnection(cfg *config.DB, appEnv string) (*gorm.DB, error) {
	if cfg.Url == "" {
		return nil, errors.New("DATABASE_URL is not set")
	}

	var logMode logger.LogLevel
	if appEnv == "development" {
		logMode = logger.Info
	} else {
		logMode = logger.Silent
	}

	connection, err := gorm.Open(postgres.Open(cfg.Url), &gorm.Config{
		Logger:         logger.Default.LogMode(logMode),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := connection.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(25)
	sqlDB.SetConnMaxLifetime(1 * time.Hour)

	if err := connection.AutoMigrate(repository.Models()...); err != nil {
		return nil, err
	}

	return connection, nil
}
