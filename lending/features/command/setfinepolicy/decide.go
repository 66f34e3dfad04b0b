package setfinepolicy

import (
	"github.com/AntonStoeckl/library-lending/eventstore"
	"github.com/AntonStoeckl/library-lending/lending/core"
)

// Decide sets the rate, the last policy per category wins.
//
//	ERROR: InvalidInput for an empty category or a negative rate
//	IDEMPOTENCY: the category already has this rate
func Decide(history core.DomainEvents, command Command) core.DecisionResult {
	switch {
	case command.Category == "":
		return core.ErrorDecision(core.InvalidInput("category", "must not be empty"))
	case command.FinePerDay.IsNegative():
		return core.ErrorDecision(core.InvalidInput("finePerDay", "must not be negative"))
	}

	policies := make(core.FinePolicies)

	for _, event := range history {
		if e, ok := event.(core.FinePolicySet); ok {
			policies.Apply(e)
		}
	}

	if current, ok := policies[command.Category]; ok && current.Equal(command.FinePerDay) {
		return core.IdempotentDecision()
	}

	return core.SuccessDecision(core.BuildFinePolicySet(command.Category, command.FinePerDay, command.OccurredAt))
}

func BuildEventFilter(category core.CategoryString) eventstore.Filter {
	return eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf(core.FinePolicySetEventType).
		AndAnyPredicateOf(eventstore.P("Category", category)).
		Finalize()
}
