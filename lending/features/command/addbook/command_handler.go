package addbook

import (
	"context"

	"github.com/AntonStoeckl/library-lending/eventstore"
	"github.com/AntonStoeckl/library-lending/lending/shell"
)

// CommandHandler runs Query (twice), Unmarshal, Decide, Append with retry on concurrency conflicts.
type CommandHandler struct {
	eventStore   shell.EventStore
	retryOptions []shell.RetryOption
}

type Option func(*CommandHandler)

func WithRetryOptions(opts ...shell.RetryOption) Option {
	return func(h *CommandHandler) {
		h.retryOptions = opts
	}
}

func NewCommandHandler(eventStore shell.EventStore, opts ...Option) CommandHandler {
	handler := CommandHandler{eventStore: eventStore}

	for _, opt := range opts {
		opt(&handler)
	}

	return handler
}

func (h CommandHandler) Handle(ctx context.Context, command Command) (shell.HandlerResult, error) {
	var isIdempotent bool

	retryMetrics, err := shell.RetryWithExponentialBackoff(ctx, func(retryCtx context.Context) error {
		idempotent, execErr := h.executeCommand(retryCtx, command)
		isIdempotent = idempotent

		return execErr
	}, h.retryOptions...)

	if err != nil {
		return shell.NewErrorResult(retryMetrics), err
	}

	if isIdempotent {
		return shell.NewIdempotentResult(retryMetrics), nil
	}

	return shell.NewSuccessResult(retryMetrics), nil
}

func (h CommandHandler) executeCommand(ctx context.Context, command Command) (bool, error) {
	ctx = eventstore.WithStrongConsistency(ctx)

	candidateEvents, _, err := h.eventStore.Query(ctx, BuildCandidatesFilter(command.Title, command.Author))
	if err != nil {
		return false, err
	}

	candidates, err := shell.DomainEventsFrom(candidateEvents)
	if err != nil {
		return false, err
	}

	filter := BuildEventFilter(command, CandidateBookIDs(candidates))

	storableEvents, maxSequenceNumber, err := h.eventStore.Query(ctx, filter)
	if err != nil {
		return false, err
	}

	history, err := shell.DomainEventsFrom(storableEvents)
	if err != nil {
		return false, err
	}

	result := Decide(history, command)

	if businessErr := result.HasError(); businessErr != nil {
		return false, businessErr
	}

	if result.IsIdempotent() {
		return true, nil
	}

	storableEvent, err := shell.StorableEventFrom(result.Event, shell.NewCommandMetadata())
	if err != nil {
		return false, err
	}

	return false, h.eventStore.Append(ctx, filter, maxSequenceNumber, storableEvent)
}
