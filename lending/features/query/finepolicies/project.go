package finepolicies

import (
	"slices"
	"strings"

	"github.com/AntonStoeckl/library-lending/eventstore"
	"github.com/AntonStoeckl/library-lending/lending/core"
)

func Project(history core.DomainEvents, _ Query, maxSeq uint, _ ...FinePolicies) FinePolicies {
	rates := make(core.FinePolicies)

	for _, event := range history {
		if e, ok := event.(core.FinePolicySet); ok {
			rates.Apply(e)
		}
	}

	policies := make([]FinePolicy, 0, len(rates))
	for category, rate := range rates {
		policies = append(policies, FinePolicy{Category: category, FinePerDay: rate})
	}

	slices.SortFunc(policies, func(a, b FinePolicy) int {
		return strings.Compare(a.Category, b.Category)
	})

	return FinePolicies{
		Policies:          policies,
		DefaultFinePerDay: core.DefaultFinePerDay,
		SequenceNumber:    maxSeq,
	}
}

func BuildEventFilter(_ Query) eventstore.Filter {
	return eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf(core.FinePolicySetEventType).
		Finalize()
}
