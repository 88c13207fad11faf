package domain_test

import (
	"testing"

	"github.com/clubsalud/findoc_backend/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMoneyFromDecimal(t *testing.T) {
	m, err := domain.MoneyFromDecimal(decimal.RequireFromString("1000.00"), "GTQ")
	require.NoError(t, err)
	assert.Equal(t, int64(100000), m.Amount)
	assert.Equal(t, "GTQ", m.Currency)
}

func TestMoneyFromDecimal_BankersRounding(t *testing.T) {
	// Half-to-even: .125 rounds down to .12, .135 rounds up to .14.
	down, err := domain.MoneyFromDecimal(decimal.RequireFromString("0.125"), "GTQ")
	require.NoError(t, err)
	assert.Equal(t, int64(12), down.Amount)

	up, err := domain.MoneyFromDecimal(decimal.RequireFromString("0.135"), "GTQ")
	require.NoError(t, err)
	assert.Equal(t, int64(14), up.Amount)
}

func TestMoneyFromDecimal_RejectsNegative(t *testing.T) {
	_, err := domain.MoneyFromDecimal(decimal.RequireFromString("-1.00"), "GTQ")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNegativeAmount)
}

func TestMoneyAddSub(t *testing.T) {
	a := domain.NewMoney(60000, "GTQ")
	b := domain.NewMoney(40000, "GTQ")

	sum, err := a.Add(b)
	require.NoError(t, err)
	assert.Equal(t, int64(100000), sum.Amount)

	diff, err := a.Sub(b)
	require.NoError(t, err)
	assert.Equal(t, int64(20000), diff.Amount)
}

func TestMoneyCurrencyMismatch(t *testing.T) {
	a := domain.NewMoney(100, "GTQ")
	b := domain.NewMoney(100, "USD")

	_, err := a.Add(b)
	assert.ErrorIs(t, err, domain.ErrCurrencyMismatch)

	_, err = a.Sub(b)
	assert.ErrorIs(t, err, domain.ErrCurrencyMismatch)

	_, err = a.Cmp(b)
	assert.ErrorIs(t, err, domain.ErrCurrencyMismatch)
}

func TestMoneyCmp(t *testing.T) {
	a := domain.NewMoney(100, "GTQ")
	b := domain.NewMoney(200, "GTQ")

	cmp, err := a.Cmp(b)
	require.NoError(t, err)
	assert.Equal(t, -1, cmp)

	cmp, err = b.Cmp(a)
	require.NoError(t, err)
	assert.Equal(t, 1, cmp)

	cmp, err = a.Cmp(a)
	require.NoError(t, err)
	assert.Equal(t, 0, cmp)
}

func TestMoneyApplyRate(t *testing.T) {
	principal := domain.NewMoney(100000, "GTQ") // 1000.00
	tax := principal.ApplyRate(decimal.RequireFromString("0.12"))
	assert.Equal(t, int64(12000), tax.Amount) // 120.00
	assert.Equal(t, "GTQ", tax.Currency)
}

func TestMoneyApplyRate_BankersRounding(t *testing.T) {
	// 1.25 * 0.1 = 0.125 -> half-to-even -> 0.12
	m := domain.NewMoney(125, "GTQ")
	assert.Equal(t, int64(12), m.ApplyRate(decimal.RequireFromString("0.1")).Amount)

	// 3.75 * 0.1 = 0.375 -> half-to-even -> 0.38
	m = domain.NewMoney(375, "GTQ")
	assert.Equal(t, int64(38), m.ApplyRate(decimal.RequireFromString("0.1")).Amount)
}

func TestMoneyDecimalRoundTrip(t *testing.T) {
	m := domain.NewMoney(123456, "GTQ")
	assert.Equal(t, "1234.56", m.Decimal().StringFixed(2))
	assert.Equal(t, "1234.56 GTQ", m.String())
}

func TestMoneyPredicates(t *testing.T) {
	assert.True(t, domain.ZeroMoney("GTQ").IsZero())
	assert.False(t, domain.ZeroMoney("GTQ").IsPositive())
	assert.True(t, domain.NewMoney(1, "GTQ").IsPositive())
	assert.True(t, domain.NewMoney(1, "GTQ").SameCurrency(domain.NewMoney(5, "GTQ")))
	assert.False(t, domain.NewMoney(1, "GTQ").SameCurrency(domain.NewMoney(5, "USD")))
}
