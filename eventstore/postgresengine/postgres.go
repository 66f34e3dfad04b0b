package postgresengine

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // dialect registration
	"github.com/doug-martin/goqu/v9/exp"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"
	jsoniter "github.com/json-iterator/go"

	"github.com/AntonStoeckl/library-lending/eventstore"
	"github.com/AntonStoeckl/library-lending/eventstore/internal/instrumentation"
	"github.com/AntonStoeckl/library-lending/eventstore/postgresengine/internal/adapters"
)

const (
	engineName               = "postgres"
	defaultEventTableName    = "events"
	defaultSnapshotTableName = "snapshots"
	appendLockPrefix         = "append:"

	logMsgBuildSelectQueryFailed   = "failed to build select query"
	logMsgDBQueryFailed            = "database query execution failed"
	logMsgCloseRowsFailed          = "failed to close database rows"
	logMsgScanRowFailed            = "failed to scan database row"
	logMsgBuildStorableEventFailed = "failed to build storable event from database row"
	logMsgBuildInsertQueryFailed   = "failed to build insert query"
	logMsgDBExecFailed             = "database execution failed during event append"
	logMsgRowsAffectedFailed       = "failed to get rows affected count"
	logMsgSQLExecuted              = "executed sql for: "

	logAttrQuery      = "query"
	logAttrEventCount = "event_count"

	colEventType      = "event_type"
	colOccurredAt     = "occurred_at"
	colPayload        = "payload"
	colMetadata       = "metadata"
	colSequenceNumber = "sequence_number"

	cteContext      = "context"
	cteVals         = "vals"
	dialectPostgres = "postgres"
	aliasMaxSeq     = "max_seq"
	castText        = "?::text"
	castTimestamp   = "?::timestamp with time zone"
	castJsonb       = "?::jsonb"
	containsJsonb   = "? @> ?::jsonb"
)

// EventStore is the Postgres engine, it works on pgxpool.Pool, sql.DB or sqlx.DB.
type EventStore struct {
	db                adapters.DBAdapter
	eventTableName    string
	snapshotTableName string
	instruments       instrumentation.Instruments
}

type queryResultRow struct {
	eventType      string
	payload        []byte
	metadata       []byte
	occurredAt     time.Time
	sequenceNumber eventstore.MaxSequenceNumberUint
}

// NewEventStoreFromPGXPool creates an EventStore on a pgx pool.
func NewEventStoreFromPGXPool(db *pgxpool.Pool, options ...Option) (*EventStore, error) {
	if db == nil {
		return nil, eventstore.ErrNilDatabaseConnection
	}

	return newEventStore(adapters.NewPGXAdapter(db), options...)
}

// NewEventStoreFromPGXPoolAndReplica creates an EventStore that serves eventually consistent queries from replica.
func NewEventStoreFromPGXPoolAndReplica(db *pgxpool.Pool, replica *pgxpool.Pool, options ...Option) (*EventStore, error) {
	if db == nil || replica == nil {
		return nil, eventstore.ErrNilDatabaseConnection
	}

	return newEventStore(adapters.NewPGXAdapterWithReplica(db, replica), options...)
}

// NewEventStoreFromSQLDB creates an EventStore on a sql.DB.
func NewEventStoreFromSQLDB(db *sql.DB, options ...Option) (*EventStore, error) {
	if db == nil {
		return nil, eventstore.ErrNilDatabaseConnection
	}

	return newEventStore(adapters.NewSQLAdapter(db), options...)
}

// NewEventStoreFromSQLX creates an EventStore on a sqlx.DB.
func NewEventStoreFromSQLX(db *sqlx.DB, options ...Option) (*EventStore, error) {
	if db == nil {
		return nil, eventstore.ErrNilDatabaseConnection
	}

	return newEventStore(adapters.NewSQLXAdapter(db), options...)
}

func newEventStore(db adapters.DBAdapter, options ...Option) (*EventStore, error) {
	es := &EventStore{
		db:                db,
		eventTableName:    defaultEventTableName,
		snapshotTableName: defaultSnapshotTableName,
		instruments:       instrumentation.Instruments{Engine: engineName},
	}

	for _, option := range options {
		if err := option(es); err != nil {
			return nil, err
		}
	}

	return es, nil
}

// Query returns the events matching the filter in sequence order
// and the highest sequence number among them (0 if there are none).
func (es *EventStore) Query(ctx context.Context, filter eventstore.Filter) (
	eventstore.StorableEvents,
	eventstore.MaxSequenceNumberUint,
	error,
) {

	observation, ctx := es.instruments.StartQuery(ctx)

	sqlQuery, buildQueryErr := es.buildSelectQuery(filter)
	if buildQueryErr != nil {
		es.instruments.Error(ctx, logMsgBuildSelectQueryFailed, buildQueryErr)
		observation.Failed(instrumentation.ErrorTypeBuildQuery)

		return nil, 0, buildQueryErr
	}

	start := time.Now()
	rows, queryErr := es.db.Query(ctx, sqlQuery)
	es.logSQL(ctx, sqlQuery, instrumentation.OperationQuery, time.Since(start))

	if queryErr != nil {
		es.instruments.Error(ctx, logMsgDBQueryFailed, queryErr, logAttrQuery, sqlQuery)
		observation.Failed(instrumentation.ErrorTypeDatabaseQuery)

		return nil, 0, errors.Join(eventstore.ErrQueryingEventsFailed, queryErr)
	}
	defer es.closeRows(ctx, rows)

	events, maxSequenceNumber, errorType, scanErr := es.processQueryResults(ctx, rows)
	if scanErr != nil {
		observation.Failed(errorType)
		return nil, 0, scanErr
	}

	observation.Succeeded(events, maxSequenceNumber)

	return events, maxSequenceNumber, nil
}

func (es *EventStore) closeRows(ctx context.Context, rows adapters.DBRows) {
	if closeErr := rows.Close(); closeErr != nil {
		es.instruments.Warn(ctx, logMsgCloseRowsFailed, closeErr)
	}
}

func (es *EventStore) processQueryResults(ctx context.Context, rows adapters.DBRows) (
	eventstore.StorableEvents,
	eventstore.MaxSequenceNumberUint,
	string,
	error,
) {

	result := queryResultRow{}
	events := make(eventstore.StorableEvents, 0)
	maxSequenceNumber := eventstore.MaxSequenceNumberUint(0)

	for rows.Next() {
		rowScanErr := rows.Scan(&result.eventType, &result.occurredAt, &result.payload, &result.metadata, &result.sequenceNumber)
		if rowScanErr != nil {
			es.instruments.Error(ctx, logMsgScanRowFailed, rowScanErr)
			return nil, 0, instrumentation.ErrorTypeRowScan, errors.Join(eventstore.ErrScanningDBRowFailed, rowScanErr)
		}

		event, buildErr := eventstore.BuildStorableEvent(result.eventType, result.occurredAt, result.payload, result.metadata)
		if buildErr != nil {
			es.instruments.Error(ctx, logMsgBuildStorableEventFailed, buildErr, instrumentation.AttrEventType, result.eventType)
			return nil, 0, instrumentation.ErrorTypeBuildEvent, errors.Join(eventstore.ErrBuildingStorableEventFailed, buildErr)
		}

		events = append(events, event.WithSequenceNumber(result.sequenceNumber))
		maxSequenceNumber = result.sequenceNumber
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		es.instruments.Error(ctx, logMsgScanRowFailed, rowsErr)
		return nil, 0, instrumentation.ErrorTypeRowScan, errors.Join(eventstore.ErrScanningDBRowFailed, rowsErr)
	}

	return events, maxSequenceNumber, "", nil
}

// Append inserts the events only if the highest sequence number matching the filter is still
// expectedMaxSequenceNumber, in a single conditional INSERT. Otherwise it returns eventstore.ErrConcurrencyConflict.
//
// The INSERT runs under a transaction scoped advisory lock per event table,
// so its snapshot always includes every append that held the lock before it.
//
// One command should usually produce one event, the multi-event statement is heavier.
func (es *EventStore) Append(
	ctx context.Context,
	filter eventstore.Filter,
	expectedMaxSequenceNumber eventstore.MaxSequenceNumberUint,
	event eventstore.StorableEvent,
	additionalEvents ...eventstore.StorableEvent,
) error {

	allEvents := append(eventstore.StorableEvents{event}, additionalEvents...)
	observation, ctx := es.instruments.StartAppend(ctx, allEvents, expectedMaxSequenceNumber)

	sqlQuery, buildQueryErr := es.buildAppendQuery(allEvents, filter, expectedMaxSequenceNumber)
	if buildQueryErr != nil {
		es.instruments.Error(ctx, logMsgBuildInsertQueryFailed, buildQueryErr, logAttrEventCount, len(allEvents))
		observation.Failed(instrumentation.ErrorTypeBuildQuery)

		return buildQueryErr
	}

	start := time.Now()
	result, execErr := es.db.ExecLocked(ctx, es.appendLockName(), sqlQuery)
	es.logSQL(ctx, sqlQuery, instrumentation.OperationAppend, time.Since(start))

	if execErr != nil {
		es.instruments.Error(ctx, logMsgDBExecFailed, execErr, logAttrQuery, sqlQuery)
		observation.Failed(instrumentation.ErrorTypeDatabaseExec)

		return errors.Join(eventstore.ErrAppendingEventFailed, execErr)
	}

	rowsAffected, rowsAffectedErr := result.RowsAffected()
	if rowsAffectedErr != nil {
		es.instruments.Error(ctx, logMsgRowsAffectedFailed, rowsAffectedErr)
		observation.Failed(instrumentation.ErrorTypeRowsAffected)

		return errors.Join(eventstore.ErrGettingRowsAffectedFailed, rowsAffectedErr)
	}

	if rowsAffected < int64(len(allEvents)) {
		observation.Conflicted(len(allEvents), rowsAffected, expectedMaxSequenceNumber)
		return eventstore.ErrConcurrencyConflict
	}

	observation.Succeeded(len(allEvents))

	return nil
}

func (es *EventStore) appendLockName() string {
	return appendLockPrefix + es.eventTableName
}

func (es *EventStore) buildAppendQuery(
	allEvents eventstore.StorableEvents,
	filter eventstore.Filter,
	expectedMaxSequenceNumber eventstore.MaxSequenceNumberUint,
) (string, error) {

	if len(allEvents) == 1 {
		return es.buildInsertQueryForSingleEvent(allEvents[0], filter, expectedMaxSequenceNumber)
	}

	return es.buildInsertQueryForMultipleEvents(allEvents, filter, expectedMaxSequenceNumber)
}

func (es *EventStore) buildSelectQuery(filter eventstore.Filter) (string, error) {
	selectStmt := goqu.Dialect(dialectPostgres).
		From(es.eventTableName).
		Select(colEventType, colOccurredAt, colPayload, colMetadata, colSequenceNumber).
		Order(goqu.I(colSequenceNumber).Asc())

	whereExpression, err := es.whereExpression(filter)
	if err != nil {
		return "", err
	}

	if filter.SequenceNumberHigherThan() > 0 {
		whereExpression = goqu.And(whereExpression, goqu.C(colSequenceNumber).Gt(filter.SequenceNumberHigherThan()))
	}

	sqlQuery, _, toSQLErr := selectStmt.Where(whereExpression).ToSQL()
	if toSQLErr != nil {
		return "", errors.Join(eventstore.ErrBuildingQueryFailed, toSQLErr)
	}

	return sqlQuery, nil
}

// contextStatement selects the current max sequence number of the filtered stream, the sequence bound is ignored.
func (es *EventStore) contextStatement(builder goqu.DialectWrapper, filter eventstore.Filter) (*goqu.SelectDataset, error) {
	whereExpression, err := es.whereExpression(filter)
	if err != nil {
		return nil, err
	}

	return builder.
		From(es.eventTableName).
		Select(goqu.MAX(colSequenceNumber).As(aliasMaxSeq)).
		Where(whereExpression), nil
}

func (es *EventStore) buildInsertQueryForSingleEvent(
	event eventstore.StorableEvent,
	filter eventstore.Filter,
	expectedMaxSequenceNumber eventstore.MaxSequenceNumberUint,
) (string, error) {

	builder := goqu.Dialect(dialectPostgres)

	cteStmt, err := es.contextStatement(builder, filter)
	if err != nil {
		return "", err
	}

	selectStmt := builder.
		From(cteContext).
		Select(
			goqu.L(castText, event.EventType),
			goqu.L(castTimestamp, event.OccurredAt),
			goqu.L(castJsonb, string(event.PayloadJSON)),
			goqu.L(castJsonb, string(event.MetadataJSON)),
		).
		Where(goqu.COALESCE(goqu.C(aliasMaxSeq), 0).Eq(goqu.V(expectedMaxSequenceNumber)))

	insertStmt := builder.
		Insert(es.eventTableName).
		Cols(colEventType, colOccurredAt, colPayload, colMetadata).
		FromQuery(selectStmt).
		With(cteContext, cteStmt)

	sqlQuery, _, toSQLErr := insertStmt.ToSQL()
	if toSQLErr != nil {
		return "", errors.Join(eventstore.ErrBuildingQueryFailed, toSQLErr)
	}

	return sqlQuery, nil
}

func (es *EventStore) buildInsertQueryForMultipleEvents(
	events eventstore.StorableEvents,
	filter eventstore.Filter,
	expectedMaxSequenceNumber eventstore.MaxSequenceNumberUint,
) (string, error) {

	builder := goqu.Dialect(dialectPostgres)

	cteStmt, err := es.contextStatement(builder, filter)
	if err != nil {
		return "", err
	}

	var valuesStmt *goqu.SelectDataset

	for _, event := range events {
		eventStmt := builder.Select(
			goqu.L(castText, event.EventType).As(colEventType),
			goqu.L(castTimestamp, event.OccurredAt).As(colOccurredAt),
			goqu.L(castJsonb, string(event.PayloadJSON)).As(colPayload),
			goqu.L(castJsonb, string(event.MetadataJSON)).As(colMetadata),
		)

		if valuesStmt == nil {
			valuesStmt = eventStmt
			continue
		}

		valuesStmt = valuesStmt.UnionAll(eventStmt)
	}

	insertStmt := builder.
		Insert(es.eventTableName).
		Cols(colEventType, colOccurredAt, colPayload, colMetadata).
		With(cteContext, cteStmt).
		With(cteVals, valuesStmt).
		FromQuery(
			builder.From(cteContext, cteVals).
				Select(
					goqu.I(cteVals+"."+colEventType),
					goqu.I(cteVals+"."+colOccurredAt),
					goqu.I(cteVals+"."+colPayload),
					goqu.I(cteVals+"."+colMetadata),
				).
				Where(goqu.COALESCE(goqu.C(aliasMaxSeq), 0).Eq(goqu.V(expectedMaxSequenceNumber))),
		)

	sqlQuery, _, toSQLErr := insertStmt.ToSQL()
	if toSQLErr != nil {
		return "", errors.Join(eventstore.ErrBuildingQueryFailed, toSQLErr)
	}

	return sqlQuery, nil
}

// whereExpression translates the filter items: event types OR'ed, predicates AND'ed or OR'ed, items OR'ed.
// Predicates use JSONB containment, so they only match string values at the top level of the payload.
func (es *EventStore) whereExpression(filter eventstore.Filter) (exp.Expression, error) {
	itemsExpressions := make([]exp.Expression, 0, len(filter.Items()))

	for _, item := range filter.Items() {
		eventTypeExpressions := make([]exp.Expression, 0, len(item.EventTypes()))
		predicateExpressions := make([]exp.Expression, 0, len(item.Predicates()))

		for _, eventType := range item.EventTypes() {
			eventTypeExpressions = append(eventTypeExpressions, goqu.Ex{colEventType: eventType})
		}

		for _, predicate := range item.Predicates() {
			document, err := jsoniter.ConfigCompatibleWithStandardLibrary.MarshalToString(
				map[string]string{predicate.Key(): predicate.Val()},
			)
			if err != nil {
				return nil, errors.Join(eventstore.ErrBuildingQueryFailed, fmt.Errorf("predicate %q: %w", predicate.Key(), err))
			}

			predicateExpressions = append(predicateExpressions, goqu.L(containsJsonb, goqu.I(colPayload), document))
		}

		var predicatesExpressionList exp.ExpressionList

		if item.AllPredicatesMustMatch() {
			predicatesExpressionList = goqu.And(predicateExpressions...)
		} else {
			predicatesExpressionList = goqu.Or(predicateExpressions...)
		}

		itemsExpressions = append(itemsExpressions, goqu.And(goqu.Or(eventTypeExpressions...), predicatesExpressionList))
	}

	return goqu.Or(itemsExpressions...), nil
}

func (es *EventStore) logSQL(ctx context.Context, sqlQuery string, action string, duration time.Duration) {
	es.instruments.Debug(ctx, logMsgSQLExecuted+action,
		instrumentation.AttrDurationMS, instrumentation.Milliseconds(duration),
		logAttrQuery, sqlQuery)
}
