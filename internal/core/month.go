package core

import (
	"fmt"
	"strings"
	"time"
)

const monthLayout = "2006-01"

// MonthKey is a YYYY-MM string, the only time granularity of the ledger.
// Lexicographic order of valid keys is chronological order.
type MonthKey string

var monthLabels = [...]string{"jan", "fev", "mar", "abr", "mai", "jun", "jul", "ago", "set", "out", "nov", "dez"}

// ParseMonthKey validates s as YYYY-MM with month 01..12.
func ParseMonthKey(s string) (MonthKey, error) {
	s = strings.TrimSpace(s)
	if len(s) != len(monthLayout) {
		return "", ErrInvalidMonth
	}
	if _, err := time.Parse(monthLayout, s); err != nil {
		return "", ErrInvalidMonth
	}
	return MonthKey(s), nil
}

// MonthOf returns the month key containing t.
func MonthOf(t time.Time) MonthKey {
	return MonthKey(t.Format(monthLayout))
}

func (k MonthKey) String() string { return string(k) }

func (k MonthKey) Validate() error {
	_, err := ParseMonthKey(string(k))
	return err
}

// Time returns the first instant of the month in UTC.
func (k MonthKey) Time() (time.Time, error) {
	t, err := time.Parse(monthLayout, string(k))
	if err != nil {
		return time.Time{}, ErrInvalidMonth
	}
	return t, nil
}

// Label returns the short pt-BR label, e.g. "dez/2025". Invalid keys are
// returned unchanged.
func (k MonthKey) Label() string {
	t, err := k.Time()
	if err != nil {
		return string(k)
	}
	return fmt.Sprintf("%s/%d", monthLabels[t.Month()-1], t.Year())
}
