package domain_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finbook/finbook/pkg/domain"
	"github.com/finbook/finbook/pkg/money"
)

func mustMoney(t *testing.T, amount float64) money.Money {
	t.Helper()
	m, err := money.New(amount)
	require.NoError(t, err)
	return m
}

func TestSignedAmount(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	amount := mustMoney(t, 25.50)
	assert.Equal("25.50", domain.SignedAmount(amount, domain.Income).String())
	assert.Equal("-25.50", domain.SignedAmount(amount, domain.Expense).String())
}

func TestCreditDebit(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	account := &domain.Account{ID: uuid.New(), Balance: mustMoney(t, 100)}
	account.Credit(mustMoney(t, 30.25))
	assert.Equal("130.25", account.Balance.String())

	account.Debit(mustMoney(t, 130.25))
	assert.True(account.Balance.IsZero())

	// Crediting a negative amount debits, which is how reversals are applied.
	account.Credit(mustMoney(t, 50).Neg())
	assert.Equal("-50.00", account.Balance.String())
}

func TestValidateTransfer(t *testing.T) {
	t.Parallel()

	source := &domain.Account{ID: uuid.New(), Balance: mustMoney(t, 100)}
	destination := &domain.Account{ID: uuid.New()}

	tests := []struct {
		name        string
		source      *domain.Account
		destination *domain.Account
		amount      money.Money
		wantErr     error
	}{
		{"valid", source, destination, mustMoney(t, 100), nil},
		{"missing account", nil, destination, mustMoney(t, 10), domain.ErrAccountNotFound},
		{"same account", source, source, mustMoney(t, 10), domain.ErrSameAccountTransfer},
		{"zero amount", source, destination, money.Money{}, domain.ErrAmountMustBePositive},
		{"negative amount", source, destination, mustMoney(t, 10).Neg(), domain.ErrAmountMustBePositive},
		{"insufficient funds", source, destination, mustMoney(t, 100.01), domain.ErrInsufficientFunds},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := domain.ValidateTransfer(tt.source, tt.destination, tt.amount)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestParseCategoryType(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	income, err := domain.ParseCategoryType("income")
	assert.NoError(err)
	assert.Equal(1, income.Sign())

	expense, err := domain.ParseCategoryType("expense")
	assert.NoError(err)
	assert.Equal(-1, expense.Sign())

	_, err = domain.ParseCategoryType("salary")
	assert.ErrorIs(err, domain.ErrInvalidCategoryType)
}

func TestParseDebtKind(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	debt, err := domain.ParseDebtKind("debt")
	assert.NoError(err)
	assert.Equal(domain.DebtAccountName, debt.SystemAccountName())

	lend, err := domain.ParseDebtKind("lend")
	assert.NoError(err)
	assert.Equal(domain.LendAccountName, lend.SystemAccountName())

	_, err = domain.ParseDebtKind("loan")
	assert.ErrorIs(err, domain.ErrInvalidDebtKind)
}
