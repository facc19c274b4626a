// Package core holds the ledger domain types.
//
// Money keeps amounts exact as decimals. Rounding only happens when a value
// is shaped for display, never when it is stored or summed.
package core

import (
	"math"
	"strings"

	gomoney "github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Currency is the single implicit currency of the ledger.
const Currency = gomoney.BRL

// MaxScale is the most fractional digits a user supplied amount may carry.
const MaxScale = 8

// MaxAmount bounds a single user supplied amount.
var MaxAmount = decimal.New(1, 15)

var maxCents = decimal.NewFromInt(math.MaxInt64)

// Money is an exact decimal amount in Currency.
type Money struct {
	value decimal.Decimal
}

func NewMoney(d decimal.Decimal) Money { return Money{value: d} }

// MoneyFromInt returns a whole-unit amount.
func MoneyFromInt(units int64) Money { return Money{value: decimal.NewFromInt(units)} }

// ParseAmount parses a user supplied amount.
//
// Both dot (12.34) and comma (12,34) decimal separators are accepted. Signs
// and exponents are rejected, the value must be strictly positive, at most
// MaxAmount, and carry at most MaxScale fractional digits.
//
//	ParseAmount("300")    -> 300
//	ParseAmount("12,50")  -> 12.5
//	ParseAmount("-1")     -> ErrInvalidAmount
//	ParseAmount("1e6")    -> ErrInvalidAmount
func ParseAmount(s string) (Money, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") || strings.ContainsAny(s, "eE") {
		return Money{}, ErrInvalidAmount
	}
	if strings.Count(s, ",") == 1 && !strings.Contains(s, ".") {
		s = strings.Replace(s, ",", ".", 1)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, ErrInvalidAmount
	}
	if d.Exponent() < -MaxScale {
		return Money{}, ErrAmountTooPrecise
	}
	m := Money{value: d}
	if err := m.Validate(); err != nil {
		return Money{}, err
	}
	return m, nil
}

// MoneyFromString parses a stored amount without the positivity check.
func MoneyFromString(s string) (Money, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return Money{}, ErrInvalidAmount
	}
	return Money{value: d}, nil
}

func (m Money) Add(o Money) Money           { return Money{value: m.value.Add(o.value)} }
func (m Money) Sub(o Money) Money           { return Money{value: m.value.Sub(o.value)} }
func (m Money) Mul(f decimal.Decimal) Money { return Money{value: m.value.Mul(f)} }

// Div divides by n using plain decimal division. The quotient keeps
// decimal.DivisionPrecision digits; no remainder is redistributed.
func (m Money) Div(n int) Money {
	return Money{value: m.value.Div(decimal.NewFromInt(int64(n)))}
}

func (m Money) IsZero() bool             { return m.value.IsZero() }
func (m Money) IsPositive() bool         { return m.value.IsPositive() }
func (m Money) IsNegative() bool         { return m.value.IsNegative() }
func (m Money) Equal(o Money) bool       { return m.value.Equal(o.value) }
func (m Money) Decimal() decimal.Decimal { return m.value }

// Round rounds half away from zero.
func (m Money) Round(places int32) Money { return Money{value: m.value.Round(places)} }

// Validate requires a strictly positive amount no larger than MaxAmount.
func (m Money) Validate() error {
	if !m.value.IsPositive() {
		return ErrInvalidAmount
	}
	if m.value.GreaterThan(MaxAmount) {
		return ErrAmountTooLarge
	}
	return nil
}

// String returns the exact decimal representation.
func (m Money) String() string { return m.value.String() }

// Cents returns the amount in minor units after rounding to two places.
// ok is false when the value does not fit in an int64.
func (m Money) Cents() (cents int64, ok bool) {
	c := m.value.Round(2).Shift(2)
	if c.Abs().GreaterThan(maxCents) {
		return 0, false
	}
	return c.IntPart(), true
}

// Format renders the amount for display, e.g. R$1.234,56. Totals too large
// for go-money fall back to the plain decimal with two places.
func (m Money) Format() string {
	cents, ok := m.Cents()
	if !ok {
		return gomoney.GetCurrency(Currency).Grapheme + m.value.StringFixed(2)
	}
	return gomoney.New(cents, Currency).Display()
}

// MarshalJSON writes the exact amount as an unquoted JSON number.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.value.String()), nil
}

func (m *Money) UnmarshalJSON(b []byte) error {
	return m.value.UnmarshalJSON(b)
}
