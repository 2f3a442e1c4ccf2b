// Package rates supplies currency conversion rates to the normalizer.
package rates

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Provider resolves a conversion rate between two ISO 4217 currency codes.
// The second return value is false when no rate is known; the caller is
// expected to flag the amount rather than guess.
type Provider interface {
	Rate(from, to string) (decimal.Decimal, bool)
}

// Static is a Provider backed by a fixed table, typically loaded from
// configuration at startup. Same-currency conversions always resolve to 1,
// and the inverse of a configured pair is derived automatically.
type Static struct {
	table map[string]decimal.Decimal
}

// NewStatic builds a Static provider from a map keyed "FROM:TO".
func NewStatic(table map[string]decimal.Decimal) *Static {
	normalized := make(map[string]decimal.Decimal, len(table))
	for k, v := range table {
		normalized[strings.ToUpper(strings.TrimSpace(k))] = v
	}
	return &Static{table: normalized}
}

// Rate implements Provider.
func (s *Static) Rate(from, to string) (decimal.Decimal, bool) {
	from = strings.ToUpper(strings.TrimSpace(from))
	to = strings.ToUpper(strings.TrimSpace(to))

	if from == to {
		return decimal.NewFromInt(1), true
	}
	if r, ok := s.table[from+":"+to]; ok {
		return r, true
	}
	if r, ok := s.table[to+":"+from]; ok && !r.IsZero() {
		return decimal.NewFromInt(1).Div(r), true
	}
	return decimal.Decimal{}, false
}

var _ Provider = (*Static)(nil)
