package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// DefaultCurrency is the only currency the club currently bills in.
// Money is still currency-tagged so a second currency can be added without
// touching the arithmetic.
const DefaultCurrency = "GTQ"

// minorUnitExponent is the number of decimal places carried by the minor unit
// (centavos for GTQ).
const minorUnitExponent = 2

var (
	ErrCurrencyMismatch = errors.New("currency mismatch")
	ErrNegativeAmount   = errors.New("monetary amount cannot be negative")
)

// Money is a fixed-point monetary value held as integer minor units.
// It is never backed by a floating-point type; fractional input is rounded
// to the minor unit exactly once, at construction.
type Money struct {
	Amount   int64  `json:"amount"` // minor units
	Currency string `json:"currency"`
}

// NewMoney builds a Money value from raw minor units.
func NewMoney(minorUnits int64, currency string) Money {
	return Money{Amount: minorUnits, Currency: currency}
}

// ZeroMoney returns the zero value for the given currency.
func ZeroMoney(currency string) Money {
	return Money{Amount: 0, Currency: currency}
}

// MoneyFromDecimal converts a major-unit decimal (e.g. "1000.00") into minor
// units using banker's rounding. Negative values are rejected; stored monetary
// fields are always >= 0.
func MoneyFromDecimal(value decimal.Decimal, currency string) (Money, error) {
	if value.IsNegative() {
		return Money{}, fmt.Errorf("%w: %s", ErrNegativeAmount, value.String())
	}
	minor := value.RoundBank(minorUnitExponent).Shift(minorUnitExponent).IntPart()
	return Money{Amount: minor, Currency: currency}, nil
}

// Add returns m + other. Both operands must share a currency.
func (m Money) Add(other Money) (Money, error) {
	if m.Currency != other.Currency {
		return Money{}, fmt.Errorf("%w: %s vs %s", ErrCurrencyMismatch, m.Currency, other.Currency)
	}
	return Money{Amount: m.Amount + other.Amount, Currency: m.Currency}, nil
}

// Sub returns m - other. Both operands must share a currency.
func (m Money) Sub(other Money) (Money, error) {
	if m.Currency != other.Currency {
		return Money{}, fmt.Errorf("%w: %s vs %s", ErrCurrencyMismatch, m.Currency, other.Currency)
	}
	return Money{Amount: m.Amount - other.Amount, Currency: m.Currency}, nil
}

// Cmp compares m against other: -1 if m < other, 0 if equal, +1 if m > other.
func (m Money) Cmp(other Money) (int, error) {
	if m.Currency != other.Currency {
		return 0, fmt.Errorf("%w: %s vs %s", ErrCurrencyMismatch, m.Currency, other.Currency)
	}
	switch {
	case m.Amount < other.Amount:
		return -1, nil
	case m.Amount > other.Amount:
		return 1, nil
	default:
		return 0, nil
	}
}

// SameCurrency reports whether both values carry the same currency tag.
func (m Money) SameCurrency(other Money) bool {
	return m.Currency == other.Currency
}

// IsZero reports whether the amount is exactly zero.
func (m Money) IsZero() bool {
	return m.Amount == 0
}

// IsPositive reports whether the amount is strictly greater than zero.
func (m Money) IsPositive() bool {
	return m.Amount > 0
}

// Decimal renders the value in major units as a precise decimal.
func (m Money) Decimal() decimal.Decimal {
	return decimal.New(m.Amount, -minorUnitExponent)
}

// ApplyRate computes a derived amount (e.g. a 0.12 tax rate) with banker's
// rounding to the minor unit. The result is computed once from m and must not
// be re-derived from previously rounded output.
func (m Money) ApplyRate(rate decimal.Decimal) Money {
	derived := m.Decimal().Mul(rate).RoundBank(minorUnitExponent)
	return Money{Amount: derived.Shift(minorUnitExponent).IntPart(), Currency: m.Currency}
}

func (m Money) String() string {
	return fmt.Sprintf("%s %s", m.Decimal().StringFixed(minorUnitExponent), m.Currency)
}
