package kernel

import (
	"fmt"

	"swiftparcel/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// CurrencyKES is the fixed currency unit for all monetary amounts in the
// system. Kenyan Shillings, matching the market the platform operates in.
const CurrencyKES = "KES"

// ErrAmountIsNegative is returned when constructing Money with a negative amount.
var ErrAmountIsNegative = errs.NewValueIsInvalidError("amount must not be negative")

// Money is an immutable value object holding an exact decimal amount in the
// fixed platform currency. Monetary arithmetic never touches binary floating
// point, so repeated pricing computations cannot drift.
type Money struct {
	amount decimal.Decimal
}

// NewMoney creates Money from an exact decimal amount.
// Negative amounts are rejected.
func NewMoney(amount decimal.Decimal) (Money, error) {
	if amount.IsNegative() {
		return Money{}, ErrAmountIsNegative
	}

	return Money{amount: amount}, nil
}

// NewMoneyFromString parses an amount like "150.00".
func NewMoneyFromString(s string) (Money, error) {
	amount, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("amount", err)
	}

	return NewMoney(amount)
}

// ZeroMoney returns a zero amount.
func ZeroMoney() Money {
	return Money{amount: decimal.Zero}
}

// Amount returns the underlying decimal value.
func (m Money) Amount() decimal.Decimal {
	return m.amount
}

// Currency returns the fixed currency code.
func (m Money) Currency() string {
	return CurrencyKES
}

// Add returns the sum of two amounts.
func (m Money) Add(other Money) Money {
	return Money{amount: m.amount.Add(other.amount)}
}

// IsZero reports whether the amount is exactly zero.
func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

// IsEqual reports whether two amounts are numerically equal.
func (m Money) IsEqual(other Money) bool {
	return m.amount.Equal(other.amount)
}

// String formats the amount with the currency code, e.g. "KES 395.00".
func (m Money) String() string {
	return fmt.Sprintf("%s %s", CurrencyKES, m.amount.StringFixed(2))
}
