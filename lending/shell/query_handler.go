package shell

import (
	"context"

	"github.com/AntonStoeckl/library-lending/eventstore"
)

// ProjectingQueryHandler runs Query, Unmarshal, Project for one filter and one projection.
// It is observability-free, see observable.QueryWrapper and snapshot.QueryWrapper.
type ProjectingQueryHandler[Q Query, R QueryResult] struct {
	eventStore    QueriesEvents
	filterBuilder FilterBuilderFunc[Q]
	projectFunc   ProjectionFunc[Q, R]
}

func NewProjectingQueryHandler[Q Query, R QueryResult](
	eventStore QueriesEvents,
	filterBuilder FilterBuilderFunc[Q],
	projectFunc ProjectionFunc[Q, R],
) ProjectingQueryHandler[Q, R] {

	return ProjectingQueryHandler[Q, R]{
		eventStore:    eventStore,
		filterBuilder: filterBuilder,
		projectFunc:   projectFunc,
	}
}

// Handle reads with the consistency level found in ctx, eventual consistency unless the caller asked otherwise.
func (h ProjectingQueryHandler[Q, R]) Handle(ctx context.Context, query Q) (R, error) {
	if _, isSet := ctx.Value(eventstore.ConsistencyLevelKey).(eventstore.ConsistencyLevel); !isSet {
		ctx = eventstore.WithEventualConsistency(ctx)
	}

	storableEvents, maxSequenceNumber, err := h.eventStore.Query(ctx, h.filterBuilder(query))
	if err != nil {
		return *new(R), err
	}

	history, err := DomainEventsFrom(storableEvents)
	if err != nil {
		return *new(R), err
	}

	return h.projectFunc(history, query, maxSequenceNumber), nil
}
