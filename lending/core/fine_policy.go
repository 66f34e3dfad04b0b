package core

import (
	"github.com/shopspring/decimal"
)

// FinePolicies maps a book category to its fine per day late.
type FinePolicies map[CategoryString]decimal.Decimal

// RateFor falls back to DefaultFinePerDay for categories without a policy.
func (p FinePolicies) RateFor(category CategoryString) decimal.Decimal {
	if rate, ok := p[category]; ok {
		return rate
	}

	return DefaultFinePerDay
}

// Apply folds a FinePolicySet event in, the last one per category wins.
func (p FinePolicies) Apply(e FinePolicySet) {
	p[e.Category] = e.FinePerDay
}
