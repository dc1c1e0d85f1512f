package kernel

import (
	"fmt"

	"freight/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// ErrMoneyIsNegative is returned when constructing Money from a negative amount.
var ErrMoneyIsNegative = errs.NewValueIsInvalidError("money amount cannot be negative")

// Money is an immutable monetary amount held in integer cents (BRL).
// Arithmetic stays in cents; conversion to reais happens only at the carrier
// wire boundary, where the aggregator expects decimal values.
type Money struct {
	cents int64
}

// NewMoneyFromCents creates a Money value from an amount in cents.
func NewMoneyFromCents(cents int64) (Money, error) {
	if cents < 0 {
		return Money{}, ErrMoneyIsNegative
	}
	return Money{cents: cents}, nil
}

// MustMoneyFromCents is a test/constant helper that panics on negative input.
func MustMoneyFromCents(cents int64) Money {
	m, err := NewMoneyFromCents(cents)
	if err != nil {
		panic(err)
	}
	return m
}

// Cents returns the amount in cents.
func (m Money) Cents() int64 {
	return m.cents
}

// Reais returns the amount as a decimal number of reais, e.g. 15050 -> 150.50.
func (m Money) Reais() decimal.Decimal {
	return decimal.NewFromInt(m.cents).Div(decimal.NewFromInt(100))
}

// Add returns the sum of two amounts.
func (m Money) Add(other Money) Money {
	return Money{cents: m.cents + other.cents}
}

// MulQuantity returns the amount multiplied by an item quantity.
func (m Money) MulQuantity(quantity int) Money {
	return Money{cents: m.cents * int64(quantity)}
}

// IsZero reports whether the amount is zero cents.
func (m Money) IsZero() bool {
	return m.cents == 0
}

// LessThan reports whether m is strictly smaller than other.
func (m Money) LessThan(other Money) bool {
	return m.cents < other.cents
}

// String renders the amount as "R$D.CC" for logs and error messages.
func (m Money) String() string {
	return fmt.Sprintf("R$%s", m.Reais().StringFixed(2))
}
