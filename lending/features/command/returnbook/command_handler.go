package returnbook

import (
	"context"
	"fmt"

	"github.com/AntonStoeckl/library-lending/eventstore"
	"github.com/AntonStoeckl/library-lending/lending/core"
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

// Handle returns NoActiveBorrowRecord unchanged, business errors are never retried.
func (h CommandHandler) Handle(ctx context.Context, command Command) (shell.HandlerResult, error) {
	var closedRecordID core.RecordIDString

	retryMetrics, err := shell.RetryWithExponentialBackoff(ctx, func(retryCtx context.Context) error {
		recordID, execErr := h.executeCommand(retryCtx, command)
		closedRecordID = recordID

		return execErr
	}, h.retryOptions...)

	if err != nil {
		return shell.NewErrorResult(retryMetrics), err
	}

	return shell.NewSuccessResult(retryMetrics).WithRecordID(closedRecordID), nil
}

// executeCommand returns the id of the record it closed.
func (h CommandHandler) executeCommand(ctx context.Context, command Command) (core.RecordIDString, error) {
	filter := BuildEventFilter(command.BookID, command.BorrowerID)
	ctx = eventstore.WithStrongConsistency(ctx)

	storableEvents, maxSequenceNumber, err := h.eventStore.Query(ctx, filter)
	if err != nil {
		return "", err
	}

	history, err := shell.DomainEventsFrom(storableEvents)
	if err != nil {
		return "", err
	}

	result := Decide(history, command)
	if businessErr := result.HasError(); businessErr != nil {
		return "", businessErr
	}

	returned, ok := result.Event.(core.BookReturned)
	if !ok {
		return "", fmt.Errorf("%s decided %T instead of %s", commandType, result.Event, core.BookReturnedEventType)
	}

	storableEvent, err := shell.StorableEventFrom(returned, shell.NewCommandMetadata())
	if err != nil {
		return "", err
	}

	if err = h.eventStore.Append(ctx, filter, maxSequenceNumber, storableEvent); err != nil {
		return "", err
	}

	return returned.RecordID, nil
}
