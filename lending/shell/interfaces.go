package shell

import (
	"context"

	"github.com/AntonStoeckl/library-lending/eventstore"
	"github.com/AntonStoeckl/library-lending/lending/core"
)

// QueriesEvents is the read side of an event store.
type QueriesEvents interface {
	Query(ctx context.Context, filter eventstore.Filter) (
		eventstore.StorableEvents,
		eventstore.MaxSequenceNumberUint,
		error,
	)
}

// EventStore is what command handlers need: a Query and a conditional Append over the same filter.
type EventStore interface {
	QueriesEvents
	Append(
		ctx context.Context,
		filter eventstore.Filter,
		expectedMaxSequenceNumber eventstore.MaxSequenceNumberUint,
		storableEvent eventstore.StorableEvent,
		storableEvents ...eventstore.StorableEvent,
	) error
}

// Query is the input of a query handler.
// SnapshotType names the projection in the snapshot store.
type Query interface {
	QueryType() string
	SnapshotType() string
}

// QueryResult is a projection that knows the highest sequence number folded into it.
type QueryResult interface {
	GetSequenceNumber() uint
}

// QueryHandler runs Query, Unmarshal, Project.
type QueryHandler[Q Query, R QueryResult] interface {
	Handle(ctx context.Context, query Q) (R, error)
}

// ProjectionFunc folds events into a result. With a base it continues from that earlier result,
// which is how snapshots are brought up to date. It must be deterministic.
type ProjectionFunc[Q Query, R QueryResult] func(
	events core.DomainEvents,
	query Q,
	maxSeq uint,
	base ...R,
) R

// FilterBuilderFunc builds the filter a query reads from.
type FilterBuilderFunc[Q Query] func(query Q) eventstore.Filter

// Command is the input of a command handler.
type Command interface {
	CommandType() string
}

// CommandHandler runs Query, Unmarshal, Decide, Append and reports the business outcome.
type CommandHandler[C Command] interface {
	Handle(ctx context.Context, command C) (HandlerResult, error)
}
