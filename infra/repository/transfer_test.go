package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func transferRows(id uuid.UUID) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "source_account_id", "destination_account_id", "amount", "timestamp", "created_at", "updated_at",
	}).AddRow(id.String(), uuid.New().String(), uuid.New().String(), "100.00", time.Now(), time.Now(), time.Now())
}

// The lock is scoped to the transfers table so the joined account rows stay
// free for the pair-ordered account locks taken afterwards.
func TestTransferRepository_GetForUpdate_LocksTransferRowOnPostgres(t *testing.T) {
	db, mock := newMockDB(t)
	repo := transferRepository{db: db}
	id := uuid.New()
	userID := uuid.New()

	mock.ExpectQuery(`SELECT (.+) FROM "transfers" JOIN (.+) FOR UPDATE OF "transfers"`).
		WithArgs(id, userID, userID, 1).
		WillReturnRows(transferRows(id))

	transfer, err := repo.GetForUpdate(context.Background(), userID, id)
	require.NoError(t, err)
	assert.Equal(t, id, transfer.ID)
	assert.Equal(t, "100.00", transfer.Amount.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransferRepository_Get_NoLockClause(t *testing.T) {
	db, mock := newMockDB(t)
	repo := transferRepository{db: db}
	id := uuid.New()
	userID := uuid.New()

	mock.ExpectQuery(`SELECT (.+) FROM "transfers" JOIN (.+) LIMIT \$4$`).
		WithArgs(id, userID, userID, 1).
		WillReturnRows(transferRows(id))

	_, err := repo.Get(context.Background(), userID, id)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
