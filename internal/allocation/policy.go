// Package allocation expands one logical ledger entry into the concrete
// per-property transactions to persist.
//
// This file holds the split strategies. Each SplitPolicy maps to a Splitter
// that decides the per-property amount and how the description is marked.
package allocation

import (
	"fmt"
	"strings"

	"github.com/renanrba/hospede-ai-gestao-de-imoveis-emergent/internal/core"
)

const (
	FullEach   SplitPolicy = "FULL_EACH"
	EqualSplit SplitPolicy = "EQUAL_SPLIT"
)

// SplitPolicy governs how a multi-property amount is distributed.
type SplitPolicy string

// Splitter is the strategy interface for a split policy.
type Splitter interface {
	// Shares returns one amount per target property.
	Shares(total core.Money, n int) []core.Money
	// Describe returns the description stored on each emitted record.
	Describe(description string, n int) string
}

// FullEachSplitter charges the full amount to every property.
type FullEachSplitter struct{}

func (FullEachSplitter) Shares(total core.Money, n int) []core.Money {
	out := make([]core.Money, n)
	for i := range out {
		out[i] = total
	}
	return out
}

func (FullEachSplitter) Describe(description string, _ int) string { return description }

// EqualSplitter divides the amount evenly with plain decimal division.
// Rounding loss is not redistributed.
type EqualSplitter struct{}

func (EqualSplitter) Shares(total core.Money, n int) []core.Money {
	share := total.Div(n)
	out := make([]core.Money, n)
	for i := range out {
		out[i] = share
	}
	return out
}

// Describe appends the apportioned marker, e.g. "Conta de luz (rateado entre 3 imóveis)".
func (EqualSplitter) Describe(description string, n int) string {
	return strings.TrimSpace(fmt.Sprintf("%s %s", description, apportionedMarker(n)))
}

func apportionedMarker(n int) string {
	return fmt.Sprintf("(rateado entre %d imóveis)", n)
}

// IsApportioned reports whether description carries the equal split marker.
func IsApportioned(description string) bool {
	return strings.Contains(description, "(rateado entre ")
}

var splitters = map[SplitPolicy]Splitter{
	FullEach:   FullEachSplitter{},
	EqualSplit: EqualSplitter{},
}

// ParseSplitPolicy accepts the policy names case-insensitively. An empty
// value means FULL_EACH.
func ParseSplitPolicy(s string) (SplitPolicy, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return FullEach, nil
	}
	p := SplitPolicy(s)
	if _, ok := splitters[p]; !ok {
		return "", core.Invalid("split_policy", core.ErrInvalidSplitPolicy)
	}
	return p, nil
}

// GetSplitter returns the strategy registered for p.
func GetSplitter(p SplitPolicy) (Splitter, error) {
	s, ok := splitters[p]
	if !ok {
		return nil, fmt.Errorf("unknown split policy: %s", p)
	}
	return s, nil
}

// RegisterSplitter adds or replaces the strategy for p.
func RegisterSplitter(p SplitPolicy, s Splitter) {
	splitters[p] = s
}
