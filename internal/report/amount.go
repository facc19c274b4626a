// Package report shapes aggregation results into the views served by the
// API. It adds labels, ordering and rounding; every figure comes from the
// aggregation package.
package report

import (
	"github.com/renanrba/hospede-ai-gestao-de-imoveis-emergent/internal/core"
	"github.com/shopspring/decimal"
)

// Places is the number of decimal places reported amounts are rounded to.
const Places = 2

// Amount is a reported monetary figure, rounded half away from zero to
// Places. It marshals as an unquoted JSON number with exactly two decimals.
type Amount struct {
	v decimal.Decimal
}

// Round is the single rounding point of the read side.
func Round(m core.Money) Amount {
	return Amount{v: m.Decimal().Round(Places)}
}

func (a Amount) Decimal() decimal.Decimal { return a.v }

func (a Amount) String() string { return a.v.StringFixed(Places) }

func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(a.String()), nil
}

func (a *Amount) UnmarshalJSON(b []byte) error {
	return a.v.UnmarshalJSON(b)
}

func roundMap(in map[core.Category]core.Money) map[string]Amount {
	out := make(map[string]Amount, len(in))
	for c, m := range in {
		out[string(c)] = Round(m)
	}
	return out
}
