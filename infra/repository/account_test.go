package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	mockDb, mock, err := sqlmock.New()
	require.NoError(t, err)
	dialector := postgres.New(postgres.Config{
		Conn:       mockDb,
		DriverName: "postgres",
	})
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db, mock
}

func accountRows(id, userID uuid.UUID) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "user_id", "name", "balance", "is_active", "is_system_account", "created_at", "updated_at",
	}).AddRow(id.String(), userID.String(), "wallet", "100.00", true, false, time.Now(), time.Now())
}

func TestAccountRepository_GetForUpdate_LocksRowOnPostgres(t *testing.T) {
	db, mock := newMockDB(t)
	repo := accountRepository{db: db}
	id := uuid.New()
	userID := uuid.New()

	mock.ExpectQuery(`SELECT \* FROM "accounts" WHERE (.+) FOR UPDATE`).
		WithArgs(id, userID, 1).
		WillReturnRows(accountRows(id, userID))

	account, err := repo.GetForUpdate(context.Background(), userID, id)
	require.NoError(t, err)
	assert.Equal(t, id, account.ID)
	assert.Equal(t, "100.00", account.Balance.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountRepository_Get_NoLockClause(t *testing.T) {
	db, mock := newMockDB(t)
	repo := accountRepository{db: db}
	id := uuid.New()
	userID := uuid.New()

	mock.ExpectQuery(`SELECT \* FROM "accounts" WHERE [^F]+LIMIT \$3$`).
		WithArgs(id, userID, 1).
		WillReturnRows(accountRows(id, userID))

	_, err := repo.Get(context.Background(), userID, id)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
