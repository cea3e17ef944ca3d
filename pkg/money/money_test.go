package money_test

import (
	"testing"

	"github.com/finbook/finbook/pkg/money"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_ValidAmounts(t *testing.T) {
	for _, amount := range []float64{0, 0.01, 30.5, 99999999.99, -42.10} {
		m, err := money.New(amount)
		require.NoError(t, err, "amount %v", amount)
		assert.InDelta(t, amount, m.Float64(), 1e-9)
	}
}

func TestNew_RejectsThreeDecimals(t *testing.T) {
	_, err := money.New(10.999)
	assert.ErrorIs(t, err, money.ErrTooManyDecimals)
}

func TestNew_RejectsOutOfRange(t *testing.T) {
	_, err := money.New(100000000.00)
	assert.ErrorIs(t, err, money.ErrAmountOutOfRange)

	_, err = money.New(-100000000.00)
	assert.ErrorIs(t, err, money.ErrAmountOutOfRange)
}

func TestParse(t *testing.T) {
	m, err := money.Parse("10.50")
	require.NoError(t, err)
	assert.Equal(t, "10.50", m.String())

	_, err = money.Parse("abc")
	assert.ErrorIs(t, err, money.ErrInvalidAmount)

	_, err = money.Parse("1.234")
	assert.ErrorIs(t, err, money.ErrTooManyDecimals)
}

func TestArithmetic_IsExact(t *testing.T) {
	// The classic float trap: 0.1 + 0.2.
	a, err := money.New(0.1)
	require.NoError(t, err)
	b, err := money.New(0.2)
	require.NoError(t, err)

	sum := a.Add(b)
	want, err := money.New(0.3)
	require.NoError(t, err)
	assert.True(t, sum.Equal(want), "got %s", sum)
}

func TestSubAndNeg(t *testing.T) {
	a, err := money.New(100.00)
	require.NoError(t, err)
	b, err := money.New(30.00)
	require.NoError(t, err)

	assert.Equal(t, "70.00", a.Sub(b).String())
	assert.Equal(t, "-30.00", b.Neg().String())
	assert.True(t, b.Neg().IsNegative())
}

func TestPredicates(t *testing.T) {
	pos, err := money.New(1.00)
	require.NoError(t, err)

	assert.True(t, pos.IsPositive())
	assert.False(t, pos.IsZero())
	assert.True(t, money.Zero.IsZero())
	assert.True(t, money.Zero.LessThan(pos))
	assert.False(t, pos.LessThan(money.Zero))
}
