// Package testutil provides the shared database fixture for repository,
// service and API tests. Tests run against an in-memory sqlite database with
// the same schema the server migrates on postgres.
package testutil

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	infrarepo "github.com/finbook/finbook/infra/repository"
	"github.com/finbook/finbook/pkg/domain"
)

// NewTestDB opens an isolated in-memory database with the full schema.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// One connection keeps every session on the same in-memory database.
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(infrarepo.Models()...))
	return db
}

// SeedUser inserts a user and returns its ID.
func SeedUser(t *testing.T, db *gorm.DB) uuid.UUID {
	t.Helper()
	id := uuid.New()
	require.NoError(t, db.Create(&infrarepo.User{
		ID:           id,
		Username:     "user-" + id.String()[:8],
		Email:        id.String()[:8] + "@example.com",
		PasswordHash: "x",
	}).Error)
	return id
}

// SeedAccount inserts an account with the given balance and returns its ID.
func SeedAccount(t *testing.T, db *gorm.DB, userID uuid.UUID, name string, balance float64) uuid.UUID {
	t.Helper()
	id := uuid.New()
	require.NoError(t, db.Create(&infrarepo.Account{
		ID:       id,
		UserID:   userID,
		Name:     name,
		Balance:  decimal.NewFromFloat(balance),
		IsActive: true,
	}).Error)
	return id
}

// SeedCategory inserts a category and returns its ID.
func SeedCategory(t *testing.T, db *gorm.DB, userID uuid.UUID, name string, categoryType domain.CategoryType) uuid.UUID {
	t.Helper()
	id := uuid.New()
	require.NoError(t, db.Create(&infrarepo.Category{
		ID:     id,
		UserID: userID,
		Name:   name,
		Type:   string(categoryType),
	}).Error)
	return id
}

// Balance reads an account balance straight from the database.
func Balance(t *testing.T, db *gorm.DB, accountID uuid.UUID) decimal.Decimal {
	t.Helper()
	var account infrarepo.Account
	require.NoError(t, db.First(&account, "id = ?", accountID).Error)
	return account.Balance
}
