package registerborrower

import (
	"github.com/AntonStoeckl/library-lending/eventstore"
	"github.com/AntonStoeckl/library-lending/lending/core"
)

type state struct {
	registeredEmail     string
	emailTakenByAnother bool
}

// Decide determines whether the borrower can be registered.
//
//	GIVEN: a BorrowerID and an email
//	WHEN: RegisterBorrower is received
//	THEN: BorrowerRegistered is generated
//	ERROR: InvalidInput for an empty name or email or an unknown tier
//	ERROR: EmailAlreadyRegistered if another borrower uses the email
//	ERROR: BorrowerAlreadyExists if the BorrowerID is registered with another email
//	IDEMPOTENCY: the BorrowerID is already registered with the same email
func Decide(history core.DomainEvents, command Command) core.DecisionResult {
	if err := validate(command); err != nil {
		return core.ErrorDecision(err)
	}

	s := project(history, command)

	switch {
	case s.registeredEmail == command.Email:
		return core.IdempotentDecision()

	case s.registeredEmail != "":
		return core.ErrorDecision(core.BorrowerAlreadyExists(command.BorrowerID))

	case s.emailTakenByAnother:
		return core.ErrorDecision(core.EmailAlreadyRegistered(command.Email))
	}

	return core.SuccessDecision(
		core.BuildBorrowerRegistered(command.BorrowerID, command.Name, command.Email, command.Tier, command.OccurredAt),
	)
}

func validate(command Command) error {
	switch {
	case command.Name == "":
		return core.InvalidInput("name", "must not be empty")
	case command.Email == "":
		return core.InvalidInput("email", "must not be empty")
	case !command.Tier.IsValid():
		return core.InvalidInput("tier", "unknown membership tier: "+command.Tier.String())
	}

	return nil
}

func project(history core.DomainEvents, command Command) state {
	s := state{}

	for _, event := range history {
		if e, ok := event.(core.BorrowerRegistered); ok {
			if e.BorrowerID == command.BorrowerID {
				s.registeredEmail = e.Email
				continue
			}

			if e.Email == command.Email {
				s.emailTakenByAnother = true
			}
		}
	}

	return s
}

func BuildEventFilter(borrowerID core.BorrowerIDString, email string) eventstore.Filter {
	return eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf(core.BorrowerRegisteredEventType).
		AndAnyPredicateOf(
			eventstore.P("BorrowerID", borrowerID),
			eventstore.P("Email", email),
		).
		Finalize()
}
