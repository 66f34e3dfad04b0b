package snapshot

import (
	"context"
	"errors"
	"time"

	jsoniter "github.com/json-iterator/go"

	"github.com/AntonStoeckl/library-lending/eventstore"
	"github.com/AntonStoeckl/library-lending/lending/shell"
)

const snapshotSaveTimeout = 5 * time.Second

var (
	ErrNilBaseHandler     = errors.New("base handler must not be nil")
	ErrNilEventStore      = errors.New("event store must not be nil")
	ErrNilProjectionFunc  = errors.New("projection func must not be nil")
	ErrNilFilterBuilder   = errors.New("filter builder func must not be nil")
	ErrSnapshotSaveFailed = errors.New("snapshot save failed")
)

// SavesAndLoadsSnapshots is implemented by both event store engines.
type SavesAndLoadsSnapshots interface {
	SaveSnapshot(ctx context.Context, snapshot eventstore.Snapshot) error
	LoadSnapshot(ctx context.Context, projectionType string, filterHash string) (*eventstore.Snapshot, error)
}

// QueriesEventsAndHandlesSnapshots is the event store the wrapper needs.
type QueriesEventsAndHandlesSnapshots interface {
	shell.QueriesEvents
	SavesAndLoadsSnapshots
}

// QueryWrapper serves a query from its snapshot plus the events appended since.
type QueryWrapper[Q shell.Query, R shell.QueryResult] struct {
	baseHandler      shell.QueryHandler[Q, R]
	eventStore       QueriesEventsAndHandlesSnapshots
	projectFunc      shell.ProjectionFunc[Q, R]
	filterBuilder    shell.FilterBuilderFunc[Q]
	metricsCollector shell.MetricsCollector
	tracingCollector shell.TracingCollector
	contextualLogger shell.ContextualLogger
	logger           shell.Logger
}

func NewQueryWrapper[Q shell.Query, R shell.QueryResult](
	baseHandler shell.QueryHandler[Q, R],
	eventStore QueriesEventsAndHandlesSnapshots,
	projectFunc shell.ProjectionFunc[Q, R],
	filterBuilder shell.FilterBuilderFunc[Q],
	opts ...Option[Q, R],
) (*QueryWrapper[Q, R], error) {

	switch {
	case baseHandler == nil:
		return nil, ErrNilBaseHandler
	case eventStore == nil:
		return nil, ErrNilEventStore
	case projectFunc == nil:
		return nil, ErrNilProjectionFunc
	case filterBuilder == nil:
		return nil, ErrNilFilterBuilder
	}

	wrapper := &QueryWrapper[Q, R]{
		baseHandler:   baseHandler,
		eventStore:    eventStore,
		projectFunc:   projectFunc,
		filterBuilder: filterBuilder,
	}

	for _, opt := range opts {
		if err := opt(wrapper); err != nil {
			return nil, err
		}
	}

	return wrapper, nil
}

// Handle runs Load, Query (incremental), Unmarshal, Project, Save.
func (w *QueryWrapper[Q, R]) Handle(ctx context.Context, query Q) (R, error) {
	queryStart := time.Now()
	queryType := query.QueryType()
	ctx, span := shell.StartQuerySpan(ctx, w.tracingCollector, queryType)

	baseFilter := w.filterBuilder(query)

	snapshot, err := w.eventStore.LoadSnapshot(ctx, query.SnapshotType(), baseFilter.Hash())
	if err != nil {
		shell.LogError(ctx, w.logger, w.contextualLogger, shell.LogMsgSnapshotLoadError,
			shell.LogAttrQueryType, queryType, shell.LogAttrError, err.Error())

		return w.fallback(ctx, query, baseFilter, shell.SnapshotReasonError, queryStart, span)
	}

	if snapshot == nil {
		shell.LogInfo(ctx, w.logger, w.contextualLogger, shell.LogMsgSnapshotMiss, shell.LogAttrQueryType, queryType)

		return w.fallback(ctx, query, baseFilter, shell.SnapshotReasonMiss, queryStart, span)
	}

	shell.LogInfo(ctx, w.logger, w.contextualLogger, shell.LogMsgSnapshotHit,
		shell.LogAttrQueryType, queryType, shell.LogAttrSequence, int(snapshot.SequenceNumber))

	storableEvents, maxSeq, err := w.eventStore.Query(ctx, baseFilter.WithSequenceNumberHigherThan(snapshot.SequenceNumber))
	if err != nil {
		shell.LogError(ctx, w.logger, w.contextualLogger, shell.LogMsgIncrementalQueryError,
			shell.LogAttrQueryType, queryType, shell.LogAttrError, err.Error())

		return w.fallback(ctx, query, baseFilter, shell.SnapshotReasonIncrementalQueryError, queryStart, span)
	}

	incrementalEvents, err := shell.DomainEventsFrom(storableEvents)
	if err != nil {
		shell.LogError(ctx, w.logger, w.contextualLogger, shell.LogMsgEventConversionError,
			shell.LogAttrQueryType, queryType, shell.LogAttrError, err.Error())

		return w.fallback(ctx, query, baseFilter, shell.SnapshotReasonUnmarshalError, queryStart, span)
	}

	var baseProjection R
	if err = jsoniter.ConfigFastest.Unmarshal(snapshot.Data, &baseProjection); err != nil {
		shell.LogError(ctx, w.logger, w.contextualLogger, shell.LogMsgSnapshotDeserializationError,
			shell.LogAttrQueryType, queryType, shell.LogAttrError, err.Error())

		return w.fallback(ctx, query, baseFilter, shell.SnapshotReasonDeserializeError, queryStart, span)
	}

	finalSequence := max(maxSeq, snapshot.SequenceNumber)
	result := w.projectFunc(incrementalEvents, query, finalSequence, baseProjection)

	if len(incrementalEvents) > 0 {
		w.saveSnapshot(ctx, query, baseFilter, result)
	}

	duration := time.Since(queryStart)
	shell.RecordQueryMetrics(ctx, w.metricsCollector, queryType, shell.StatusSuccess, duration, shell.SnapshotReasonHit)
	shell.FinishQuerySpan(w.tracingCollector, span, shell.StatusSuccess, duration, nil)
	shell.LogInfo(ctx, w.logger, w.contextualLogger, shell.LogMsgSnapshotQuerySuccess,
		shell.LogAttrQueryType, queryType, shell.LogAttrDurationMS, shell.ToMilliseconds(duration))

	return result, nil
}

// fallback runs the base handler and saves its result as the new snapshot.
func (w *QueryWrapper[Q, R]) fallback(
	ctx context.Context,
	query Q,
	baseFilter eventstore.Filter,
	reason string,
	queryStart time.Time,
	span shell.SpanContext,
) (R, error) {

	queryType := query.QueryType()

	result, err := w.baseHandler.Handle(ctx, query)

	duration := time.Since(queryStart)
	status := shell.StatusFor(err)
	shell.RecordQueryMetrics(ctx, w.metricsCollector, queryType, status, duration, reason)
	shell.FinishQuerySpan(w.tracingCollector, span, status, duration, err)

	if err != nil {
		return result, err
	}

	shell.LogInfo(ctx, w.logger, w.contextualLogger, shell.LogMsgSnapshotFallback,
		shell.LogAttrQueryType, queryType, shell.LogAttrSnapshotReason, reason)

	w.saveSnapshot(ctx, query, baseFilter, result)

	return result, nil
}

// saveSnapshot never fails the query, a failed save is logged and retried by the next query.
func (w *QueryWrapper[Q, R]) saveSnapshot(ctx context.Context, query Q, baseFilter eventstore.Filter, result R) {
	if err := w.trySaveSnapshot(ctx, query, baseFilter, result); err != nil {
		shell.LogError(ctx, w.logger, w.contextualLogger, shell.LogMsgSnapshotSaveError,
			shell.LogAttrQueryType, query.QueryType(), shell.LogAttrError, err.Error())

		return
	}

	shell.LogInfo(ctx, w.logger, w.contextualLogger, shell.LogMsgSnapshotSaved,
		shell.LogAttrQueryType, query.QueryType(), shell.LogAttrSequence, int(result.GetSequenceNumber()))
}

func (w *QueryWrapper[Q, R]) trySaveSnapshot(parentCtx context.Context, query Q, baseFilter eventstore.Filter, result R) error {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(parentCtx), snapshotSaveTimeout)
	defer cancel()

	data, err := jsoniter.ConfigFastest.Marshal(result)
	if err != nil {
		return errors.Join(ErrSnapshotSaveFailed, err)
	}

	snapshot, err := eventstore.BuildSnapshot(query.SnapshotType(), baseFilter.Hash(), result.GetSequenceNumber(), data)
	if err != nil {
		return errors.Join(ErrSnapshotSaveFailed, err)
	}

	if err = w.eventStore.SaveSnapshot(ctx, snapshot); err != nil {
		return errors.Join(ErrSnapshotSaveFailed, err)
	}

	return nil
}

// Option configures a QueryWrapper.
type Option[Q shell.Query, R shell.QueryResult] func(*QueryWrapper[Q, R]) error

func WithMetrics[Q shell.Query, R shell.QueryResult](collector shell.MetricsCollector) Option[Q, R] {
	return func(w *QueryWrapper[Q, R]) error {
		w.metricsCollector = collector
		return nil
	}
}

func WithTracing[Q shell.Query, R shell.QueryResult](collector shell.TracingCollector) Option[Q, R] {
	return func(w *QueryWrapper[Q, R]) error {
		w.tracingCollector = collector
		return nil
	}
}

func WithContextualLogging[Q shell.Query, R shell.QueryResult](logger shell.ContextualLogger) Option[Q, R] {
	return func(w *QueryWrapper[Q, R]) error {
		w.contextualLogger = logger
		return nil
	}
}

func WithLogging[Q shell.Query, R shell.QueryResult](logger shell.Logger) Option[Q, R] {
	return func(w *QueryWrapper[Q, R]) error {
		w.logger = logger
		return nil
	}
}
