package core

import (
	"strings"
	"time"
	"unicode/utf8"
)

const (
	PropertyAirbnb      PropertyType = "airbnb"
	PropertyResidential PropertyType = "residential"

	TypeIncome  TransactionType = "income"
	TypeExpense TransactionType = "expense"

	MaxDescriptionLength = 500
	MaxNameLength        = 200
)

type (
	PropertyType    string
	TransactionType string

	Property struct {
		ID        string       `json:"id"`
		Name      string       `json:"name"`
		Type      PropertyType `json:"type"`
		ImageURL  string       `json:"image_url,omitempty"`
		CreatedAt time.Time    `json:"created_at"`
	}

	// Entry holds the fields every transaction carries.
	Entry struct {
		ID          string
		PropertyID  string
		Amount      Money
		Description string
		Month       MonthKey
		CreatedAt   time.Time
	}

	// Transaction is either an Income or an Expense.
	Transaction interface {
		Common() Entry
		Type() TransactionType
		isTransaction()
	}

	Income struct {
		Entry
	}

	Expense struct {
		Entry
		Category Category
	}
)

func ParsePropertyType(s string) (PropertyType, error) {
	switch PropertyType(strings.TrimSpace(s)) {
	case PropertyAirbnb:
		return PropertyAirbnb, nil
	case PropertyResidential:
		return PropertyResidential, nil
	}
	return "", ErrInvalidPropertyType
}

func ParseTransactionType(s string) (TransactionType, error) {
	switch TransactionType(strings.TrimSpace(s)) {
	case TypeIncome:
		return TypeIncome, nil
	case TypeExpense:
		return TypeExpense, nil
	}
	return "", ErrInvalidType
}

func (p Property) Validate() error {
	name := strings.TrimSpace(p.Name)
	if name == "" {
		return Invalid("name", ErrEmptyName)
	}
	if utf8.RuneCountInString(name) > MaxNameLength {
		return Invalid("name", ErrNameTooLong)
	}
	if _, err := ParsePropertyType(string(p.Type)); err != nil {
		return Invalid("type", err)
	}
	return nil
}

// ValidateDescription bounds free text length.
func ValidateDescription(s string) error {
	if utf8.RuneCountInString(s) > MaxDescriptionLength {
		return Invalid("description", ErrDescriptionTooLong)
	}
	return nil
}

func (Income) isTransaction()  {}
func (Expense) isTransaction() {}

func (i Income) Common() Entry         { return i.Entry }
func (i Income) Type() TransactionType { return TypeIncome }

func (e Expense) Common() Entry         { return e.Entry }
func (e Expense) Type() TransactionType { return TypeExpense }

// Validate checks the invariants stored records must hold. Amounts may be
// zero here; only new input has to be strictly positive.
func (e Entry) Validate() error {
	if strings.TrimSpace(e.PropertyID) == "" {
		return Invalid("property_id", ErrNoTargetProperty)
	}
	if e.Amount.IsNegative() {
		return Invalid("amount", ErrInvalidAmount)
	}
	if err := e.Month.Validate(); err != nil {
		return Invalid("date", err)
	}
	return nil
}

func (i Income) Validate() error { return i.Entry.Validate() }

func (e Expense) Validate() error {
	if err := e.Entry.Validate(); err != nil {
		return err
	}
	if err := e.Category.Validate(); err != nil {
		return Invalid("category", err)
	}
	return nil
}

// NewTransaction builds the variant matching typ. A category on income is
// rejected, a missing one on an expense too.
func NewTransaction(typ TransactionType, entry Entry, category Category) (Transaction, error) {
	switch typ {
	case TypeIncome:
		if category != "" {
			return nil, Invalid("category", ErrUnexpectedCategory)
		}
		tx := Income{Entry: entry}
		if err := tx.Validate(); err != nil {
			return nil, err
		}
		return tx, nil
	case TypeExpense:
		tx := Expense{Entry: entry, Category: category}
		if err := tx.Validate(); err != nil {
			return nil, err
		}
		return tx, nil
	}
	return nil, Invalid("type", ErrInvalidType)
}

// CategoryOf returns the expense category, or "" for income.
func CategoryOf(tx Transaction) Category {
	if e, ok := tx.(Expense); ok {
		return e.Category
	}
	return ""
}
