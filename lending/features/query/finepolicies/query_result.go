package finepolicies

import (
	"github.com/shopspring/decimal"

	"github.com/AntonStoeckl/library-lending/lending/core"
)

type FinePolicy struct {
	Category   core.CategoryString
	FinePerDay decimal.Decimal
}

// FinePolicies is sorted by category. DefaultFinePerDay applies to all other categories.
type FinePolicies struct {
	Policies          []FinePolicy
	DefaultFinePerDay decimal.Decimal
	SequenceNumber    uint
}

func (r FinePolicies) GetSequenceNumber() uint {
	return r.SequenceNumber
}
