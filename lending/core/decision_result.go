package core

// DecisionResult is the outcome of a Decide function.
//
// Construct it only through IdempotentDecision, SuccessDecision or ErrorDecision.
// A rejected command carries an error and no event, so nothing gets appended.
type DecisionResult struct {
	Outcome string
	Event   DomainEvent
	Err     error
}

const (
	idempotentOutcome = "idempotent"
	successOutcome    = "success"
	errorOutcome      = "error"
)

// IdempotentDecision means the state already reflects the command.
func IdempotentDecision() DecisionResult {
	return DecisionResult{Outcome: idempotentOutcome}
}

func SuccessDecision(event DomainEvent) DecisionResult {
	return DecisionResult{Outcome: successOutcome, Event: event}
}

func ErrorDecision(err error) DecisionResult {
	return DecisionResult{Outcome: errorOutcome, Err: err}
}

func (r DecisionResult) HasEventToAppend() bool {
	return r.Outcome == successOutcome
}

func (r DecisionResult) IsIdempotent() bool {
	return r.Outcome == idempotentOutcome
}

// HasError returns the business error of a rejected command, otherwise nil.
func (r DecisionResult) HasError() error {
	if r.Outcome == errorOutcome {
		return r.Err
	}

	return nil
}
