package core

import (
	"time"

	"github.com/shopspring/decimal"
)

const FinePolicySetEventType = "FinePolicySet"

// FinePolicySet sets the fine per day late for one category.
type FinePolicySet struct {
	Category   CategoryString
	FinePerDay decimal.Decimal
	OccurredAt OccurredAt
}

func BuildFinePolicySet(category CategoryString, finePerDay decimal.Decimal, occurredAt time.Time) FinePolicySet {
	return FinePolicySet{
		Category:   category,
		FinePerDay: finePerDay.Round(2),
		OccurredAt: ToOccurredAt(occurredAt),
	}
}

func (e FinePolicySet) EventType() string {
	return FinePolicySetEventType
}

func (e FinePolicySet) HasOccurredAt() time.Time {
	return e.OccurredAt
}
