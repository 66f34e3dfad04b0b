package changemembershiptier

import (
	"github.com/AntonStoeckl/library-lending/eventstore"
	"github.com/AntonStoeckl/library-lending/lending/core"
)

// Decide determines whether the tier changes.
//
//	GIVEN: a registered borrower
//	WHEN: ChangeMembershipTier is received
//	THEN: MembershipTierChanged is generated
//	ERROR: InvalidInput for an unknown tier, BorrowerNotFound for an unknown borrower
//	IDEMPOTENCY: the borrower already has the tier
func Decide(history core.DomainEvents, command Command) core.DecisionResult {
	if !command.Tier.IsValid() {
		return core.ErrorDecision(core.InvalidInput("tier", "unknown membership tier: "+command.Tier.String()))
	}

	var currentTier core.MembershipTier

	for _, event := range history {
		switch e := event.(type) {
		case core.BorrowerRegistered:
			if e.BorrowerID == command.BorrowerID {
				currentTier = e.Tier
			}

		case core.MembershipTierChanged:
			if e.BorrowerID == command.BorrowerID {
				currentTier = e.Tier
			}
		}
	}

	if currentTier == "" {
		return core.ErrorDecision(core.BorrowerNotFound(command.BorrowerID))
	}

	if currentTier == command.Tier {
		return core.IdempotentDecision()
	}

	return core.SuccessDecision(core.BuildMembershipTierChanged(command.BorrowerID, command.Tier, command.OccurredAt))
}

func BuildEventFilter(borrowerID core.BorrowerIDString) eventstore.Filter {
	return eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf(
			core.BorrowerRegisteredEventType,
			core.MembershipTierChangedEventType,
		).
		AndAnyPredicateOf(eventstore.P("BorrowerID", borrowerID)).
		Finalize()
}
