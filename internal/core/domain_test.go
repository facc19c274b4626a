package core

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMonthKey(t *testing.T) {
	cases := []struct {
		in string
		ok bool
	}{
		{"2025-12", true},
		{"2025-01", true},
		{" 2024-02 ", true},
		{"2025-13", false},
		{"2025-00", false},
		{"2025-1", false},
		{"25-12", false},
		{"2025/12", false},
		{"", false},
		{"all", false},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			_, err := ParseMonthKey(tc.in)
			if tc.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvalidMonth)
			}
		})
	}
}

func TestMonthKeyLabel(t *testing.T) {
	assert.Equal(t, "dez/2025", MonthKey("2025-12").Label())
	assert.Equal(t, "jan/2026", MonthKey("2026-01").Label())
	assert.Equal(t, "bogus", MonthKey("bogus").Label())
}

func TestParseCategory(t *testing.T) {
	for _, c := range Categories() {
		got, err := ParseCategory(string(c))
		require.NoError(t, err)
		assert.Equal(t, c, got)
	}

	_, err := ParseCategory("")
	assert.ErrorIs(t, err, ErrMissingCategory)
	_, err = ParseCategory("luz")
	assert.ErrorIs(t, err, ErrInvalidCategory)
	_, err = ParseCategory("Gasolina")
	assert.ErrorIs(t, err, ErrInvalidCategory)
}

func TestPropertyValidate(t *testing.T) {
	good := Property{Name: "Casa da Praia", Type: PropertyAirbnb}
	assert.NoError(t, good.Validate())

	bads := []Property{
		{Name: "", Type: PropertyAirbnb},
		{Name: "   ", Type: PropertyResidential},
		{Name: "Apto", Type: "hotel"},
	}
	for i, p := range bads {
		err := p.Validate()
		if assert.Error(t, err, "case %d", i) {
			assert.True(t, IsValidation(err), "case %d", i)
		}
	}
}

func TestNewTransaction(t *testing.T) {
	entry := Entry{ID: "t1", PropertyID: "A", Amount: MoneyFromInt(150), Month: "2025-12"}

	tx, err := NewTransaction(TypeExpense, entry, CategoryEnergy)
	require.NoError(t, err)
	exp, ok := tx.(Expense)
	require.True(t, ok)
	assert.Equal(t, CategoryEnergy, exp.Category)
	assert.Equal(t, TypeExpense, tx.Type())

	tx, err = NewTransaction(TypeIncome, entry, "")
	require.NoError(t, err)
	_, ok = tx.(Income)
	assert.True(t, ok)
	assert.Equal(t, Category(""), CategoryOf(tx))

	_, err = NewTransaction(TypeIncome, entry, CategoryEnergy)
	assert.ErrorIs(t, err, ErrUnexpectedCategory)

	_, err = NewTransaction(TypeExpense, entry, "")
	assert.ErrorIs(t, err, ErrMissingCategory)

	_, err = NewTransaction("refund", entry, "")
	assert.ErrorIs(t, err, ErrInvalidType)

	bad := entry
	bad.Month = "2025-13"
	_, err = NewTransaction(TypeIncome, bad, "")
	assert.ErrorIs(t, err, ErrInvalidMonth)

	bad = entry
	bad.PropertyID = ""
	_, err = NewTransaction(TypeIncome, bad, "")
	assert.ErrorIs(t, err, ErrNoTargetProperty)
}

func TestRecordRoundTrip(t *testing.T) {
	r := Record{
		ID:          "t1",
		PropertyID:  "A",
		Type:        TypeExpense,
		Category:    CategoryWater,
		Amount:      NewMoney(decimal.RequireFromString("33.333333")),
		Description: "conta",
		Date:        "2025-11",
	}
	tx, err := r.Transaction()
	require.NoError(t, err)
	assert.Equal(t, r, RecordOf(tx))

	b, err := json.Marshal(r)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"amount":33.333333`)
	assert.Contains(t, string(b), `"category":"Água"`)

	var back Record
	require.NoError(t, json.Unmarshal(b, &back))
	assert.True(t, back.Amount.Equal(r.Amount))
}

func TestIncomeRecordOmitsCategory(t *testing.T) {
	tx := Income{Entry: Entry{ID: "i1", PropertyID: "A", Amount: MoneyFromInt(1000), Month: "2025-12"}}
	b, err := json.Marshal(RecordOf(tx))
	require.NoError(t, err)
	assert.NotContains(t, string(b), "category")
}

func TestErrorTaxonomy(t *testing.T) {
	nf := NotFound("transaction", "x")
	assert.ErrorIs(t, nf, ErrNotFound)
	assert.Equal(t, `transaction "x" not found`, nf.Error())

	pa := &PartialAllocationError{Created: []string{"t1"}, Missing: []string{"C"}, Err: errors.New("disk full")}
	var target *PartialAllocationError
	require.ErrorAs(t, error(pa), &target)
	assert.Equal(t, []string{"t1"}, target.Created)
	assert.Contains(t, pa.Error(), "disk full")

	ve := Invalid("amount", ErrInvalidAmount)
	assert.ErrorIs(t, ve, ErrInvalidAmount)
	assert.Equal(t, "validation error: amount: invalid amount", ve.Error())
}
