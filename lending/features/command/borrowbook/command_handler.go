package borrowbook

import (
	"context"

	"github.com/AntonStoeckl/library-lending/eventstore"
	"github.com/AntonStoeckl/library-lending/lending/shell"
)

// CommandHandler runs Query, Unmarshal, Decide, Append and retries on concurrency conflicts.
// Observability is added by observable.CommandWrapper.
type CommandHandler struct {
	eventStore   shell.EventStore
	retryOptions []shell.RetryOption
}

// Option configures a CommandHandler.
type Option func(*CommandHandler)

// WithRetryOptions overrides the retry defaults.
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

// Handle returns the business error of a rejected borrow unchanged, it is never retried.
func (h CommandHandler) Handle(ctx context.Context, command Command) (shell.HandlerResult, error) {
	retryMetrics, err := shell.RetryWithExponentialBackoff(ctx, func(retryCtx context.Context) error {
		return h.executeCommand(retryCtx, command)
	}, h.retryOptions...)

	if err != nil {
		return shell.NewErrorResult(retryMetrics), err
	}

	return shell.NewSuccessResult(retryMetrics), nil
}

func (h CommandHandler) executeCommand(ctx context.Context, command Command) error {
	filter := BuildEventFilter(command.BookID, command.BorrowerID)

	ctx = eventstore.WithStrongConsistency(ctx)

	storableEvents, maxSequenceNumber, err := h.eventStore.Query(ctx, filter)
	if err != nil {
		return err
	}

	history, err := shell.DomainEventsFrom(storableEvents)
	if err != nil {
		return err
	}

	result := Decide(history, command)

	if businessErr := result.HasError(); businessErr != nil {
		return businessErr
	}

	storableEvent, err := shell.StorableEventFrom(result.Event, shell.NewCommandMetadata())
	if err != nil {
		return err
	}

	return h.eventStore.Append(ctx, filter, maxSequenceNumber, storableEvent)
}
