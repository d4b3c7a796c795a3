// Package money converts exact decimal amounts into ISO-4217 minor units.
// It wraps go-money for currency metadata and formatting and shopspring/decimal
// for the conversion itself.
package money

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Common currency codes (ISO-4217)
const (
	INR = "INR" // Indian Rupee
	USD = "USD" // US Dollar
	EUR = "EUR" // Euro
	JPY = "JPY" // Japanese Yen (no decimal places)
)

var (
	ErrUnknownCurrency  = errors.New("unknown currency")
	ErrCurrencyMismatch = errors.New("currency mismatch")
)

// Money is an amount in minor units of a single currency.
type Money struct {
	m *money.Money
}

// New creates a Money value from minor units and a currency code.
func New(minor int64, currencyCode string) *Money {
	return &Money{m: money.New(minor, currencyCode)}
}

// IsKnownCurrency reports whether code is a currency go-money knows about.
func IsKnownCurrency(code string) bool {
	return code != "" && money.GetCurrency(strings.ToUpper(code)) != nil
}

// NewFromDecimal converts amount to minor units, rounding half away from zero
// when amount has more fractional digits than the currency allows.
func NewFromDecimal(amount decimal.Decimal, currencyCode string) (*Money, error) {
	code := strings.ToUpper(currencyCode)
	currency := money.GetCurrency(code)
	if currency == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCurrency, currencyCode)
	}

	multiplier := decimal.New(1, int32(currency.Fraction))
	minor := amount.Mul(multiplier).Round(0).IntPart()
	return New(minor, code), nil
}

// Sum adds amounts of the same currency. An empty list sums to zero.
func Sum(currencyCode string, amounts ...*Money) (*Money, error) {
	total := money.New(0, strings.ToUpper(currencyCode))
	for _, a := range amounts {
		if a == nil || a.m == nil {
			continue
		}
		next, err := total.Add(a.m)
		if err != nil {
			return nil, fmt.Errorf("%w: %s and %s", ErrCurrencyMismatch, total.Currency().Code, a.Currency())
		}
		total = next
	}
	return &Money{m: total}, nil
}

// Amount returns the amount in minor units
func (m *Money) Amount() int64 {
	if m == nil || m.m == nil {
		return 0
	}
	return m.m.Amount()
}

// Currency returns the ISO-4217 currency code
func (m *Money) Currency() string {
	if m == nil || m.m == nil {
		return ""
	}
	return m.m.Currency().Code
}

// Display returns a formatted string for display (e.g., "₹1,234.56")
func (m *Money) Display() string {
	if m == nil || m.m == nil {
		return "0.00"
	}
	return m.m.Display()
}

// String returns the amount as a decimal string (e.g., "1234.56")
func (m *Money) String() string {
	if m == nil || m.m == nil {
		return "0.00"
	}
	return m.ToDecimal().StringFixed(int32(m.m.Currency().Fraction))
}

// ToDecimal converts back to a decimal.Decimal in major units
func (m *Money) ToDecimal() decimal.Decimal {
	if m == nil || m.m == nil {
		return decimal.Zero
	}
	return decimal.New(m.m.Amount(), -int32(m.m.Currency().Fraction))
}
