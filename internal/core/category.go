package core

import "strings"

// Category classifies an expense.
type Category string

const (
	CategoryCleaning    Category = "Limpeza"
	CategoryMaintenance Category = "Manutenção"
	CategoryWater       Category = "Água"
	CategoryEnergy      Category = "Luz"
	CategoryInternet    Category = "Internet"
	CategoryTaxes       Category = "Impostos"
	CategoryCondo       Category = "Condomínio"
	CategoryServices    Category = "Serviços"
)

var categories = []Category{
	CategoryCleaning,
	CategoryMaintenance,
	CategoryWater,
	CategoryEnergy,
	CategoryInternet,
	CategoryTaxes,
	CategoryCondo,
	CategoryServices,
}

// Categories returns the fixed expense categories in display order.
func Categories() []Category {
	out := make([]Category, len(categories))
	copy(out, categories)
	return out
}

// ParseCategory matches s against the fixed set. Matching is exact after
// trimming; "luz" is not "Luz".
func ParseCategory(s string) (Category, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", ErrMissingCategory
	}
	for _, c := range categories {
		if string(c) == s {
			return c, nil
		}
	}
	return "", ErrInvalidCategory
}

func (c Category) Validate() error {
	_, err := ParseCategory(string(c))
	return err
}
