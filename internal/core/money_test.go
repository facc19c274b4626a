package core

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"300", "300", true},
		{"12.34", "12.34", true},
		{"12,34", "12.34", true},
		{" 0.01 ", "0.01", true},
		{"0", "", false},
		{"0.00", "", false},
		{"-5", "", false},
		{"+5", "", false},
		{"", "", false},
		{"abc", "", false},
		{"1.234,56", "", false},
		{"1e3", "", false},
		{"1E3", "", false},
		{"1e5000000", "", false},
		{"1000000000000000", "1000000000000000", true},
		{"1000000000000000.01", "", false},
		{"100000000000000000000", "", false},
		{"0.00000001", "0.00000001", true},
		{"0.000000001", "", false},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseAmount(tc.in)
			if !tc.ok {
				assert.ErrorIs(t, err, ErrInvalidAmount)
				return
			}
			if assert.NoError(t, err) {
				assert.True(t, got.Decimal().Equal(decimal.RequireFromString(tc.want)), "got %s", got)
			}
		})
	}
}

func TestMoneyDivIsPlainDivision(t *testing.T) {
	third := MoneyFromInt(100).Div(3)
	assert.False(t, third.Equal(MoneyFromInt(33)))
	assert.Equal(t, "33.33", third.Round(2).String())

	assert.True(t, MoneyFromInt(300).Div(3).Equal(MoneyFromInt(100)))
}

func TestMoneyRoundHalfAwayFromZero(t *testing.T) {
	assert.Equal(t, "0.13", NewMoney(decimal.RequireFromString("0.125")).Round(2).String())
	assert.Equal(t, "0.12", NewMoney(decimal.RequireFromString("0.1249")).Round(2).String())
	cents, ok := NewMoney(decimal.RequireFromString("0.125")).Cents()
	assert.True(t, ok)
	assert.Equal(t, int64(13), cents)
}

func TestMoneyFormat(t *testing.T) {
	assert.Equal(t, "R$150,00", MoneyFromInt(150).Format())
	assert.Equal(t, "R$0,00", Money{}.Format())
}

func TestMoneyFromStringAllowsZero(t *testing.T) {
	m, err := MoneyFromString("0")
	assert.NoError(t, err)
	assert.True(t, m.IsZero())

	_, err = MoneyFromString("x")
	assert.ErrorIs(t, err, ErrInvalidAmount)
}

func TestParseAmountBoundsErrors(t *testing.T) {
	_, err := ParseAmount("100000000000000000000")
	assert.ErrorIs(t, err, ErrAmountTooLarge)
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, err = ParseAmount("1,123456789")
	assert.ErrorIs(t, err, ErrAmountTooPrecise)

	assert.ErrorIs(t, NewMoney(decimal.New(1, 16)).Validate(), ErrAmountTooLarge)
}

func TestMoneyCentsOverflow(t *testing.T) {
	huge := NewMoney(decimal.RequireFromString("100000000000000000000"))
	_, ok := huge.Cents()
	assert.False(t, ok)
	assert.Equal(t, "R$100000000000000000000.00", huge.Format())

	// a sum of bounded amounts still formats exactly
	total := MoneyFromInt(1_000_000_000_000_000).Add(MoneyFromInt(1_000_000_000_000_000))
	cents, ok := total.Cents()
	assert.True(t, ok)
	assert.Equal(t, int64(200_000_000_000_000_000), cents)
	assert.Equal(t, "R$2.000.000.000.000.000,00", total.Format())
}
