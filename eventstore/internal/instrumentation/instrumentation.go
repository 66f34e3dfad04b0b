// Package instrumentation holds the logging, metrics and tracing plumbing shared by the event store engines.
package instrumentation

import (
	"context"
	"math"
	"strconv"
	"time"

	"github.com/AntonStoeckl/library-lending/eventstore"
)

const (
	MetricQueryDuration        = "eventstore_query_duration_seconds"
	MetricAppendDuration       = "eventstore_append_duration_seconds"
	MetricEventsQueried        = "eventstore_events_queried_total"
	MetricEventsAppended       = "eventstore_events_appended_total"
	MetricConcurrencyConflicts = "eventstore_concurrency_conflicts_total"
	MetricStorageErrors        = "eventstore_storage_errors_total"
	MetricSnapshotHits         = "eventstore_snapshot_hits_total"
	MetricSnapshotMisses       = "eventstore_snapshot_misses_total"

	SpanNameQuery  = "eventstore.query"
	SpanNameAppend = "eventstore.append"

	OperationQuery  = "query"
	OperationAppend = "append"

	StatusSuccess = "success"
	StatusError   = "error"

	AttrOperation    = "operation"
	AttrStatus       = "status"
	AttrEngine       = "engine"
	AttrEventCount   = "event_count"
	AttrEventType    = "event_type"
	AttrMaxSequence  = "max_sequence"
	AttrExpectedSeq  = "expected_sequence"
	AttrRowsAffected = "rows_affected"
	AttrDurationMS   = "duration_ms"
	AttrErrorType    = "error_type"
	AttrError        = "error"
	AttrConsistency  = "consistency"

	ErrorTypeBuildQuery      = "build_query"
	ErrorTypeDatabaseQuery   = "database_query"
	ErrorTypeRowScan         = "row_scan"
	ErrorTypeBuildEvent      = "build_storable_event"
	ErrorTypeDatabaseExec    = "database_exec"
	ErrorTypeRowsAffected    = "rows_affected"
	ErrorTypeConcurrency     = "concurrency_conflict"
	ErrorTypeContextCanceled = "context_canceled"

	logMsgOperation = "eventstore operation: "
)

// Instruments bundles the optional observability collaborators of an engine, every field may be nil.
type Instruments struct {
	Engine           string
	Logger           eventstore.Logger
	ContextualLogger eventstore.ContextualLogger
	Metrics          eventstore.MetricsCollector
	Tracing          eventstore.TracingCollector
}

// Debug logs at debug level on both loggers.
func (in Instruments) Debug(ctx context.Context, msg string, args ...any) {
	if in.Logger != nil {
		in.Logger.Debug(msg, args...)
	}

	if in.ContextualLogger != nil {
		in.ContextualLogger.DebugContext(ctx, msg, args...)
	}
}

// Operation logs an operational message at info level.
func (in Instruments) Operation(ctx context.Context, action string, args ...any) {
	if in.Logger != nil {
		in.Logger.Info(logMsgOperation+action, args...)
	}

	if in.ContextualLogger != nil {
		in.ContextualLogger.InfoContext(ctx, logMsgOperation+action, args...)
	}
}

// Warn logs at warn level.
func (in Instruments) Warn(ctx context.Context, msg string, err error) {
	if in.Logger != nil {
		in.Logger.Warn(msg, AttrError, err.Error())
	}

	if in.ContextualLogger != nil {
		in.ContextualLogger.WarnContext(ctx, msg, AttrError, err.Error())
	}
}

// Error logs err at error level with additional key/value args.
func (in Instruments) Error(ctx context.Context, msg string, err error, args ...any) {
	allArgs := append([]any{AttrError, err.Error()}, args...)

	if in.Logger != nil {
		in.Logger.Error(msg, allArgs...)
	}

	if in.ContextualLogger != nil {
		in.ContextualLogger.ErrorContext(ctx, msg, allArgs...)
	}
}

// Milliseconds rounds d to milliseconds with three decimals.
func Milliseconds(d time.Duration) float64 {
	return math.Round(float64(d.Nanoseconds())/1e6*1000) / 1000
}

func (in Instruments) labels(operation, status string) map[string]string {
	return map[string]string{AttrOperation: operation, AttrStatus: status, AttrEngine: in.Engine}
}

func (in Instruments) recordDuration(ctx context.Context, metric string, d time.Duration, labels map[string]string) {
	if in.Metrics == nil {
		return
	}

	if contextual, ok := in.Metrics.(eventstore.ContextualMetricsCollector); ok {
		contextual.RecordDurationContext(ctx, metric, d, labels)
		return
	}

	in.Metrics.RecordDuration(metric, d, labels)
}

func (in Instruments) recordValue(ctx context.Context, metric string, value float64, labels map[string]string) {
	if in.Metrics == nil {
		return
	}

	if contextual, ok := in.Metrics.(eventstore.ContextualMetricsCollector); ok {
		contextual.RecordValueContext(ctx, metric, value, labels)
		return
	}

	in.Metrics.RecordValue(metric, value, labels)
}

func (in Instruments) incrementCounter(ctx context.Context, metric string, labels map[string]string) {
	if in.Metrics == nil {
		return
	}

	if contextual, ok := in.Metrics.(eventstore.ContextualMetricsCollector); ok {
		contextual.IncrementCounterContext(ctx, metric, labels)
		return
	}

	in.Metrics.IncrementCounter(metric, labels)
}

// SnapshotLookup counts snapshot cache hits and misses.
func (in Instruments) SnapshotLookup(ctx context.Context, projectionType string, hit bool) {
	labels := map[string]string{"projection_type": projectionType, AttrEngine: in.Engine}

	if hit {
		in.incrementCounter(ctx, MetricSnapshotHits, labels)
		return
	}

	in.incrementCounter(ctx, MetricSnapshotMisses, labels)
}

/***** Query observation *****/

// QueryObservation follows one Query call from start to finish.
type QueryObservation struct {
	in    Instruments
	ctx   context.Context
	span  eventstore.SpanContext
	start time.Time
}

// StartQuery starts a query span and returns the (possibly span-carrying) context.
func (in Instruments) StartQuery(ctx context.Context) (*QueryObservation, context.Context) {
	observation := &QueryObservation{in: in, ctx: ctx, start: time.Now()}

	if in.Tracing != nil {
		attrs := map[string]string{
			AttrOperation:   OperationQuery,
			AttrEngine:      in.Engine,
			AttrConsistency: eventstore.GetConsistencyLevel(ctx).String(),
		}
		observation.ctx, observation.span = in.Tracing.StartSpan(ctx, SpanNameQuery, attrs)
	}

	return observation, observation.ctx
}

// Succeeded records the metrics, finishes the span and logs the completed query.
func (o *QueryObservation) Succeeded(events eventstore.StorableEvents, maxSequenceNumber eventstore.MaxSequenceNumberUint) {
	duration := time.Since(o.start)

	o.in.recordDuration(o.ctx, MetricQueryDuration, duration, o.in.labels(OperationQuery, StatusSuccess))
	o.in.recordValue(o.ctx, MetricEventsQueried, float64(len(events)), o.in.labels(OperationQuery, StatusSuccess))

	if o.in.Tracing != nil && o.span != nil {
		o.in.Tracing.FinishSpan(o.span, StatusSuccess, map[string]string{
			AttrEventCount:  strconv.Itoa(len(events)),
			AttrMaxSequence: strconv.FormatUint(uint64(maxSequenceNumber), 10),
			AttrDurationMS:  strconv.FormatFloat(Milliseconds(duration), 'f', 3, 64),
		})
	}

	o.in.Operation(o.ctx, "query completed",
		AttrEventCount, len(events),
		AttrMaxSequence, maxSequenceNumber,
		AttrDurationMS, Milliseconds(duration))
}

// Failed records the error metrics and finishes the span with the error type.
func (o *QueryObservation) Failed(errorType string) {
	duration := time.Since(o.start)

	o.in.recordDuration(o.ctx, MetricQueryDuration, duration, o.in.labels(OperationQuery, StatusError))

	errorLabels := o.in.labels(OperationQuery, StatusError)
	errorLabels[AttrErrorType] = errorType
	o.in.incrementCounter(o.ctx, MetricStorageErrors, errorLabels)

	if o.in.Tracing != nil && o.span != nil {
		o.in.Tracing.FinishSpan(o.span, StatusError, map[string]string{AttrErrorType: errorType})
	}
}

/***** Append observation *****/

// AppendObservation follows one Append call from start to finish.
type AppendObservation struct {
	in    Instruments
	ctx   context.Context
	span  eventstore.SpanContext
	start time.Time
}

// StartAppend starts an append span.
func (in Instruments) StartAppend(
	ctx context.Context,
	events eventstore.StorableEvents,
	expectedMaxSequenceNumber eventstore.MaxSequenceNumberUint,
) (*AppendObservation, context.Context) {

	observation := &AppendObservation{in: in, ctx: ctx, start: time.Now()}

	if in.Tracing != nil {
		attrs := map[string]string{
			AttrOperation:   OperationAppend,
			AttrEngine:      in.Engine,
			AttrEventCount:  strconv.Itoa(len(events)),
			AttrExpectedSeq: strconv.FormatUint(uint64(expectedMaxSequenceNumber), 10),
		}

		if len(events) > 0 {
			attrs[AttrEventType] = events[0].EventType
		}

		observation.ctx, observation.span = in.Tracing.StartSpan(ctx, SpanNameAppend, attrs)
	}

	return observation, observation.ctx
}

// Succeeded records the metrics, finishes the span and logs the appended events.
func (o *AppendObservation) Succeeded(eventCount int) {
	duration := time.Since(o.start)

	o.in.recordDuration(o.ctx, MetricAppendDuration, duration, o.in.labels(OperationAppend, StatusSuccess))
	o.in.recordValue(o.ctx, MetricEventsAppended, float64(eventCount), o.in.labels(OperationAppend, StatusSuccess))

	if o.in.Tracing != nil && o.span != nil {
		o.in.Tracing.FinishSpan(o.span, StatusSuccess, map[string]string{
			AttrRowsAffected: strconv.Itoa(eventCount),
			AttrDurationMS:   strconv.FormatFloat(Milliseconds(duration), 'f', 3, 64),
		})
	}

	o.in.Operation(o.ctx, "events appended", AttrEventCount, eventCount, AttrDurationMS, Milliseconds(duration))
}

// Conflicted records a concurrency conflict, which is an expected outcome and not logged as an error.
func (o *AppendObservation) Conflicted(expectedEvents int, rowsAffected int64, expectedMaxSequenceNumber eventstore.MaxSequenceNumberUint) {
	duration := time.Since(o.start)

	o.in.recordDuration(o.ctx, MetricAppendDuration, duration, o.in.labels(OperationAppend, StatusError))
	o.in.incrementCounter(o.ctx, MetricConcurrencyConflicts, map[string]string{
		AttrOperation: OperationAppend,
		AttrEngine:    o.in.Engine,
	})

	if o.in.Tracing != nil && o.span != nil {
		o.in.Tracing.FinishSpan(o.span, StatusError, map[string]string{
			AttrErrorType:    ErrorTypeConcurrency,
			AttrRowsAffected: strconv.FormatInt(rowsAffected, 10),
		})
	}

	o.in.Operation(o.ctx, "concurrency conflict detected",
		"expected_events", expectedEvents,
		AttrRowsAffected, rowsAffected,
		AttrExpectedSeq, expectedMaxSequenceNumber)
}

// Failed records the error metrics and finishes the span with the error type.
func (o *AppendObservation) Failed(errorType string) {
	duration := time.Since(o.start)

	o.in.recordDuration(o.ctx, MetricAppendDuration, duration, o.in.labels(OperationAppend, StatusError))

	errorLabels := o.in.labels(OperationAppend, StatusError)
	errorLabels[AttrErrorType] = errorType
	o.in.incrementCounter(o.ctx, MetricStorageErrors, errorLabels)

	if o.in.Tracing != nil && o.span != nil {
		o.in.Tracing.FinishSpan(o.span, StatusError, map[string]string{AttrErrorType: errorType})
	}
}
