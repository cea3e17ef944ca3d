package ledger_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	infrarepo "github.com/finbook/finbook/infra/repository"
	"github.com/finbook/finbook/internal/testutil"
	"github.com/finbook/finbook/pkg/domain"
	"github.com/finbook/finbook/pkg/dto"
	"github.com/finbook/finbook/pkg/money"
	"github.com/finbook/finbook/pkg/service/ledger"
	"github.com/google/uuid"
)

func newService(t *testing.T) (*ledger.Service, *gorm.DB) {
	t.Helper()
	db := testutil.NewTestDB(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return ledger.NewService(infrarepo.NewUoW(db), logger), db
}

func mustMoney(t *testing.T, v float64) money.Money {
	t.Helper()
	m, err := money.New(v)
	require.NoError(t, err)
	return m
}

func TestCreateTransaction_IncomeCreditsAccount(t *testing.T) {
	svc, db := newService(t)
	ctx := context.Background()
	userID := testutil.SeedUser(t, db)
	accountID := testutil.SeedAccount(t, db, userID, "wallet", 100)
	categoryID := testutil.SeedCategory(t, db, userID, "salary", domain.Income)

	record, err := svc.CreateTransaction(ctx, dto.TransactionCreate{
		UserID:     userID,
		CategoryID: categoryID,
		AccountID:  accountID,
		Amount:     mustMoney(t, 50.25),
	})
	require.NoError(t, err)
	assert.Equal(t, "50.25", record.Amount.String())
	assert.True(t, testutil.Balance(t, db, accountID).Equal(decimal.NewFromFloat(150.25)))
}

func TestCreateTransaction_ExpenseDebitsAccount(t *testing.T) {
	svc, db := newService(t)
	ctx := context.Background()
	userID := testutil.SeedUser(t, db)
	accountID := testutil.SeedAccount(t, db, userID, "wallet", 100)
	categoryID := testutil.SeedCategory(t, db, userID, "food", domain.Expense)

	_, err := svc.CreateTransaction(ctx, dto.TransactionCreate{
		UserID:     userID,
		CategoryID: categoryID,
		AccountID:  accountID,
		Amount:     mustMoney(t, 30.10),
	})
	require.NoError(t, err)
	assert.True(t, testutil.Balance(t, db, accountID).Equal(decimal.NewFromFloat(69.90)))
}

func TestCreateTransaction_RejectsNonPositiveAmount(t *testing.T) {
	svc, db := newService(t)
	ctx := context.Background()
	userID := testutil.SeedUser(t, db)
	accountID := testutil.SeedAccount(t, db, userID, "wallet", 100)
	categoryID := testutil.SeedCategory(t, db, userID, "food", domain.Expense)

	_, err := svc.CreateTransaction(ctx, dto.TransactionCreate{
		UserID:     userID,
		CategoryID: categoryID,
		AccountID:  accountID,
		Amount:     money.Zero,
	})
	assert.ErrorIs(t, err, domain.ErrAmountMustBePositive)
	assert.True(t, testutil.Balance(t, db, accountID).Equal(decimal.NewFromInt(100)))
}

func TestCreateTransaction_UnknownAccountRollsBack(t *testing.T) {
	svc, db := newService(t)
	ctx := context.Background()
	userID := testutil.SeedUser(t, db)
	categoryID := testutil.SeedCategory(t, db, userID, "food", domain.Expense)

	_, err := svc.CreateTransaction(ctx, dto.TransactionCreate{
		UserID:     userID,
		CategoryID: categoryID,
		AccountID:  uuid.New(),
		Amount:     mustMoney(t, 10),
	})
	assert.ErrorIs(t, err, domain.ErrAccountNotFound)

	var count int64
	require.NoError(t, db.Model(&infrarepo.Transaction{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestCreateTransaction_ForeignCategoryRejected(t *testing.T) {
	svc, db := newService(t)
	ctx := context.Background()
	userID := testutil.SeedUser(t, db)
	otherID := testutil.SeedUser(t, db)
	accountID := testutil.SeedAccount(t, db, userID, "wallet", 100)
	foreignCategory := testutil.SeedCategory(t, db, otherID, "food", domain.Expense)

	_, err := svc.CreateTransaction(ctx, dto.TransactionCreate{
		UserID:     userID,
		CategoryID: foreignCategory,
		AccountID:  accountID,
		Amount:     mustMoney(t, 10),
	})
	assert.ErrorIs(t, err, domain.ErrCategoryNotFound)
}

func TestUpdateTransaction_SameAccountMovesByDelta(t *testing.T) {
	svc, db := newService(t)
	ctx := context.Background()
	userID := testutil.SeedUser(t, db)
	accountID := testutil.SeedAccount(t, db, userID, "wallet", 100)
	categoryID := testutil.SeedCategory(t, db, userID, "food", domain.Expense)

	record, err := svc.CreateTransaction(ctx, dto.TransactionCreate{
		UserID:     userID,
		CategoryID: categoryID,
		AccountID:  accountID,
		Amount:     mustMoney(t, 40),
	})
	require.NoError(t, err)

	newAmount := mustMoney(t, 25)
	_, err = svc.UpdateTransaction(ctx, userID, record.ID, dto.TransactionUpdate{Amount: &newAmount})
	require.NoError(t, err)

	// 100 - 40 + (40 - 25) = 75
	assert.True(t, testutil.Balance(t, db, accountID).Equal(decimal.NewFromInt(75)))
}

func TestUpdateTransaction_AccountChangeReversesAndApplies(t *testing.T) {
	svc, db := newService(t)
	ctx := context.Background()
	userID := testutil.SeedUser(t, db)
	oldAccount := testutil.SeedAccount(t, db, userID, "wallet", 100)
	newAccount := testutil.SeedAccount(t, db, userID, "card", 200)
	categoryID := testutil.SeedCategory(t, db, userID, "food", domain.Expense)

	record, err := svc.CreateTransaction(ctx, dto.TransactionCreate{
		UserID:     userID,
		CategoryID: categoryID,
		AccountID:  oldAccount,
		Amount:     mustMoney(t, 40),
	})
	require.NoError(t, err)
	require.True(t, testutil.Balance(t, db, oldAccount).Equal(decimal.NewFromInt(60)))

	_, err = svc.UpdateTransaction(ctx, userID, record.ID, dto.TransactionUpdate{AccountID: &newAccount})
	require.NoError(t, err)

	assert.True(t, testutil.Balance(t, db, oldAccount).Equal(decimal.NewFromInt(100)))
	assert.True(t, testutil.Balance(t, db, newAccount).Equal(decimal.NewFromInt(160)))
}

func TestUpdateTransaction_CategoryTypeChangeFlipsPolarity(t *testing.T) {
	svc, db := newService(t)
	ctx := context.Background()
	userID := testutil.SeedUser(t, db)
	accountID := testutil.SeedAccount(t, db, userID, "wallet", 100)
	expenseID := testutil.SeedCategory(t, db, userID, "food", domain.Expense)
	incomeID := testutil.SeedCategory(t, db, userID, "salary", domain.Income)

	record, err := svc.CreateTransaction(ctx, dto.TransactionCreate{
		UserID:     userID,
		CategoryID: expenseID,
		AccountID:  accountID,
		Amount:     mustMoney(t, 40),
	})
	require.NoError(t, err)

	_, err = svc.UpdateTransaction(ctx, userID, record.ID, dto.TransactionUpdate{CategoryID: &incomeID})
	require.NoError(t, err)

	// 100 - 40, then the reclassification adds 40 back twice over: 60 + 80 = 140.
	assert.True(t, testutil.Balance(t, db, accountID).Equal(decimal.NewFromInt(140)))
}

func TestDeleteTransaction_ReversesEffect(t *testing.T) {
	svc, db := newService(t)
	ctx := context.Background()
	userID := testutil.SeedUser(t, db)
	accountID := testutil.SeedAccount(t, db, userID, "wallet", 100)
	categoryID := testutil.SeedCategory(t, db, userID, "salary", domain.Income)

	record, err := svc.CreateTransaction(ctx, dto.TransactionCreate{
		UserID:     userID,
		CategoryID: categoryID,
		AccountID:  accountID,
		Amount:     mustMoney(t, 33.33),
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteTransaction(ctx, userID, record.ID))
	assert.True(t, testutil.Balance(t, db, accountID).Equal(decimal.NewFromInt(100)))

	_, err = svc.GetTransaction(ctx, userID, record.ID)
	assert.ErrorIs(t, err, domain.ErrTransactionNotFound)
}

func TestCreateTransfer_ConservesTotal(t *testing.T) {
	svc, db := newService(t)
	ctx := context.Background()
	userID := testutil.SeedUser(t, db)
	sourceID := testutil.SeedAccount(t, db, userID, "wallet", 100)
	destinationID := testutil.SeedAccount(t, db, userID, "card", 10)

	transfer, err := svc.CreateTransfer(ctx, userID, dto.TransferCreate{
		SourceAccountID:      sourceID,
		DestinationAccountID: destinationID,
		Amount:               mustMoney(t, 60),
	})
	require.NoError(t, err)
	assert.Equal(t, "60.00", transfer.Amount.String())

	source := testutil.Balance(t, db, sourceID)
	destination := testutil.Balance(t, db, destinationID)
	assert.True(t, source.Equal(decimal.NewFromInt(40)))
	assert.True(t, destination.Equal(decimal.NewFromInt(70)))
	assert.True(t, source.Add(destination).Equal(decimal.NewFromInt(110)))
}

func TestCreateTransfer_InsufficientFunds(t *testing.T) {
	svc, db := newService(t)
	ctx := context.Background()
	userID := testutil.SeedUser(t, db)
	sourceID := testutil.SeedAccount(t, db, userID, "wallet", 30)
	destinationID := testutil.SeedAccount(t, db, userID, "card", 0)

	_, err := svc.CreateTransfer(ctx, userID, dto.TransferCreate{
		SourceAccountID:      sourceID,
		DestinationAccountID: destinationID,
		Amount:               mustMoney(t, 31),
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientFunds)
	assert.True(t, testutil.Balance(t, db, sourceID).Equal(decimal.NewFromInt(30)))
	assert.True(t, testutil.Balance(t, db, destinationID).Equal(decimal.NewFromInt(0)))
}

func TestCreateTransfer_SameAccountRejected(t *testing.T) {
	svc, db := newService(t)
	ctx := context.Background()
	userID := testutil.SeedUser(t, db)
	accountID := testutil.SeedAccount(t, db, userID, "wallet", 100)

	_, err := svc.CreateTransfer(ctx, userID, dto.TransferCreate{
		SourceAccountID:      accountID,
		DestinationAccountID: accountID,
		Amount:               mustMoney(t, 10),
	})
	assert.ErrorIs(t, err, domain.ErrSameAccountTransfer)
}

func TestUpdateTransfer_AppliesDelta(t *testing.T) {
	svc, db := newService(t)
	ctx := context.Background()
	userID := testutil.SeedUser(t, db)
	sourceID := testutil.SeedAccount(t, db, userID, "wallet", 100)
	destinationID := testutil.SeedAccount(t, db, userID, "card", 0)

	transfer, err := svc.CreateTransfer(ctx, userID, dto.TransferCreate{
		SourceAccountID:      sourceID,
		DestinationAccountID: destinationID,
		Amount:               mustMoney(t, 60),
	})
	require.NoError(t, err)

	updated, err := svc.UpdateTransfer(ctx, userID, transfer.ID, mustMoney(t, 45))
	require.NoError(t, err)
	assert.Equal(t, "45.00", updated.Amount.String())

	// Source gets back 60-45=15, destination gives it up.
	assert.True(t, testutil.Balance(t, db, sourceID).Equal(decimal.NewFromInt(55)))
	assert.True(t, testutil.Balance(t, db, destinationID).Equal(decimal.NewFromInt(45)))
}

func TestUpdateTransfer_SequentialUpdatesUseStoredAmount(t *testing.T) {
	svc, db := newService(t)
	ctx := context.Background()
	userID := testutil.SeedUser(t, db)
	sourceID := testutil.SeedAccount(t, db, userID, "wallet", 100)
	destinationID := testutil.SeedAccount(t, db, userID, "card", 0)

	transfer, err := svc.CreateTransfer(ctx, userID, dto.TransferCreate{
		SourceAccountID:      sourceID,
		DestinationAccountID: destinationID,
		Amount:               mustMoney(t, 60),
	})
	require.NoError(t, err)

	_, err = svc.UpdateTransfer(ctx, userID, transfer.ID, mustMoney(t, 45))
	require.NoError(t, err)

	// The second delta is taken from the stored 45, not the opening 60.
	_, err = svc.UpdateTransfer(ctx, userID, transfer.ID, mustMoney(t, 30))
	require.NoError(t, err)
	assert.True(t, testutil.Balance(t, db, sourceID).Equal(decimal.NewFromInt(70)))
	assert.True(t, testutil.Balance(t, db, destinationID).Equal(decimal.NewFromInt(30)))
}

func TestDeleteTransfer_ReversesInFull(t *testing.T) {
	svc, db := newService(t)
	ctx := context.Background()
	userID := testutil.SeedUser(t, db)
	sourceID := testutil.SeedAccount(t, db, userID, "wallet", 100)
	destinationID := testutil.SeedAccount(t, db, userID, "card", 0)

	transfer, err := svc.CreateTransfer(ctx, userID, dto.TransferCreate{
		SourceAccountID:      sourceID,
		DestinationAccountID: destinationID,
		Amount:               mustMoney(t, 60),
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteTransfer(ctx, userID, transfer.ID))
	assert.True(t, testutil.Balance(t, db, sourceID).Equal(decimal.NewFromInt(100)))
	assert.True(t, testutil.Balance(t, db, destinationID).Equal(decimal.NewFromInt(0)))

	_, err = svc.GetTransfer(ctx, userID, transfer.ID)
	assert.ErrorIs(t, err, domain.ErrTransferNotFound)
}

func TestListTransactions_FiltersByType(t *testing.T) {
	svc, db := newService(t)
	ctx := context.Background()
	userID := testutil.SeedUser(t, db)
	accountID := testutil.SeedAccount(t, db, userID, "wallet", 1000)
	incomeID := testutil.SeedCategory(t, db, userID, "salary", domain.Income)
	expenseID := testutil.SeedCategory(t, db, userID, "food", domain.Expense)

	for _, c := range []struct {
		category uuid.UUID
		amount   float64
	}{{incomeID, 100}, {expenseID, 20}, {expenseID, 30}} {
		_, err := svc.CreateTransaction(ctx, dto.TransactionCreate{
			UserID:     userID,
			CategoryID: c.category,
			AccountID:  accountID,
			Amount:     mustMoney(t, c.amount),
		})
		require.NoError(t, err)
	}

	page, err := svc.ListTransactions(ctx, userID, dto.TransactionFilter{Type: domain.Expense}, dto.Page{})
	require.NoError(t, err)
	assert.EqualValues(t, 2, page.Count)
	for _, row := range page.Results {
		assert.Equal(t, domain.Expense, row.CategoryType)
	}
}
