package shell

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/AntonStoeckl/library-lending/eventstore"
)

const (
	// CommandHandlerDurationMetric tracks command handler execution duration.
	CommandHandlerDurationMetric = "commandhandler_handle_duration_seconds"

	// CommandHandlerCallsMetric tracks total command handler calls.
	CommandHandlerCallsMetric = "commandhandler_handle_calls_total"

	CommandHandlerIdempotentMetric          = "commandhandler_idempotent_operations_total"
	CommandHandlerCanceledMetric            = "commandhandler_canceled_operations_total"
	CommandHandlerTimeoutMetric             = "commandhandler_timeout_operations_total"
	CommandHandlerConcurrencyConflictMetric = "commandhandler_concurrency_conflicts_total"

	// CommandHandlerRetriesMetric counts retry attempts.
	//
	// Labels:
	//   - command_type: e.g. "Borrow"
	//   - attempt_number: 1..5
	//   - error_type: e.g. "concurrency_conflict"
	CommandHandlerRetriesMetric = "commandhandler_retries_total"

	// CommandHandlerRetryDelayMetric tracks the backoff delays, labeled by command_type and attempt_number.
	CommandHandlerRetryDelayMetric = "commandhandler_retry_delay_seconds"

	// CommandHandlerMaxRetriesReachedMetric counts retry exhaustion, labeled by command_type and final_error_type.
	CommandHandlerMaxRetriesReachedMetric = "commandhandler_max_retries_reached_total"

	// CommandHandlerBusinessRejectionsMetric counts commands rejected by a business rule, labeled by command_type and reason.
	CommandHandlerBusinessRejectionsMetric = "commandhandler_business_rejections_total"

	QueryHandlerDurationMetric = "queryhandler_handle_duration_seconds"
	QueryHandlerCallsMetric    = "queryhandler_handle_calls_total"
	QueryHandlerCanceledMetric = "queryhandler_canceled_operations_total"
	QueryHandlerTimeoutMetric  = "queryhandler_timeout_operations_total"

	StatusSuccess             = "success"
	StatusError               = "error"
	StatusRejected            = "rejected"
	StatusIdempotent          = "idempotent"
	StatusCanceled            = "canceled"
	StatusTimeout             = "timeout"
	StatusConcurrencyConflict = "concurrency_conflict"

	LogMsgCommandStarted   = "command handler started"
	LogMsgCommandCompleted = "command handler completed"
	LogMsgCommandFailed    = "command handler failed"
	LogMsgCommandRejected  = "command handler rejected the command"
	LogMsgQueryStarted     = "query handler started"
	LogMsgQueryCompleted   = "query handler completed"
	LogMsgQueryFailed      = "query handler failed"

	LogMsgSnapshotQuerySuccess         = "snapshot-aware query completed"
	LogMsgSnapshotFallback             = "snapshot fallback to base handler"
	LogMsgSnapshotHit                  = "snapshot hit: incremental query"
	LogMsgSnapshotMiss                 = "snapshot miss: falling back to base handler"
	LogMsgSnapshotLoadError            = "snapshot load error"
	LogMsgSnapshotSaved                = "snapshot saved"
	LogMsgSnapshotSaveError            = "snapshot save error"
	LogMsgIncrementalQueryError        = "incremental query error: falling back to base handler"
	LogMsgEventConversionError         = "event conversion error: falling back to base handler"
	LogMsgSnapshotDeserializationError = "snapshot deserialization error: falling back to base handler"

	LogAttrCommandType     = "command_type"
	LogAttrQueryType       = "query_type"
	LogAttrStatus          = "status"
	LogAttrDurationMS      = "duration_ms"
	LogAttrBusinessOutcome = "business_outcome"
	LogAttrReason          = "reason"
	LogAttrError           = "error"
	LogAttrSnapshotStatus  = "snapshot_status"
	LogAttrSnapshotReason  = "snapshot_reason"
	LogAttrOperation       = "operation"
	LogAttrFromSequence    = "from_sequence"
	LogAttrToSequence      = "to_sequence"
	LogAttrEventCount      = "event_count"
	LogAttrSequence        = "sequence"

	SpanNameCommandHandle = "commandhandler.handle"
	SpanNameQueryHandle   = "queryhandler.handle"

	SnapshotReasonError                 = "snapshot_error"
	SnapshotReasonMiss                  = "snapshot_miss"
	SnapshotReasonIncrementalQueryError = "incremental_query_error"
	SnapshotReasonUnmarshalError        = "unmarshal_error"
	SnapshotReasonDeserializeError      = "deserialize_error"
	SnapshotReasonHit                   = "snapshot_hit"
)

// Aliases of the event store observability interfaces, so feature slices only import shell.

type MetricsCollector = eventstore.MetricsCollector
type ContextualMetricsCollector = eventstore.ContextualMetricsCollector
type TracingCollector = eventstore.TracingCollector
type SpanContext = eventstore.SpanContext
type ContextualLogger = eventstore.ContextualLogger
type Logger = eventstore.Logger

func BuildCommandLabels(commandType, status string) map[string]string {
	return map[string]string{
		LogAttrCommandType: commandType,
		LogAttrStatus:      status,
	}
}

func BuildQueryLabels(queryType, status string) map[string]string {
	return map[string]string{
		LogAttrQueryType: queryType,
		LogAttrStatus:    status,
	}
}

func BuildRetryLabels(commandType string, attemptNumber int, errorType string) map[string]string {
	return map[string]string{
		LogAttrCommandType: commandType,
		"attempt_number":   strconv.Itoa(attemptNumber),
		"error_type":       errorType,
	}
}

// ToMilliseconds converts a time.Duration to float64 milliseconds with precision.
func ToMilliseconds(d time.Duration) float64 {
	return float64(d.Nanoseconds()) / 1e6
}

// StatusFor classifies a handler error for metrics, spans and logs.
func StatusFor(err error) string {
	switch {
	case err == nil:
		return StatusSuccess
	case IsCancellationError(err):
		return StatusCanceled
	case IsTimeoutError(err):
		return StatusTimeout
	case IsConcurrencyConflictError(err):
		return StatusConcurrencyConflict
	case IsBusinessError(err):
		return StatusRejected
	default:
		return StatusError
	}
}

// RecordCommandMetrics records duration and call count, plus the per-status counter for
// idempotent, canceled, timed out and conflicting executions.
func RecordCommandMetrics(
	ctx context.Context,
	collector MetricsCollector,
	commandType string,
	status string,
	duration time.Duration,
) {

	if collector == nil {
		return
	}

	labels := BuildCommandLabels(commandType, status)
	recordDuration(ctx, collector, CommandHandlerDurationMetric, duration, labels)
	incrementCounter(ctx, collector, CommandHandlerCallsMetric, labels)

	statusMetrics := map[string]string{
		StatusIdempotent:          CommandHandlerIdempotentMetric,
		StatusCanceled:            CommandHandlerCanceledMetric,
		StatusTimeout:             CommandHandlerTimeoutMetric,
		StatusConcurrencyConflict: CommandHandlerConcurrencyConflictMetric,
	}

	if metric, ok := statusMetrics[status]; ok {
		incrementCounter(ctx, collector, metric, BuildCommandLabels(commandType, status))
	}
}

// RecordBusinessRejection counts a command rejected by a business rule.
func RecordBusinessRejection(ctx context.Context, collector MetricsCollector, commandType string, reason string) {
	if collector == nil {
		return
	}

	incrementCounter(ctx, collector, CommandHandlerBusinessRejectionsMetric, map[string]string{
		LogAttrCommandType: commandType,
		LogAttrReason:      reason,
	})
}

// RecordQueryMetrics records duration and call count; snapshotReason is added as a label when set.
func RecordQueryMetrics(
	ctx context.Context,
	collector MetricsCollector,
	queryType string,
	status string,
	duration time.Duration,
	snapshotReason string,
) {

	if collector == nil {
		return
	}

	labels := BuildQueryLabels(queryType, status)
	if snapshotReason != "" {
		labels[LogAttrSnapshotReason] = snapshotReason
	}

	recordDuration(ctx, collector, QueryHandlerDurationMetric, duration, labels)
	incrementCounter(ctx, collector, QueryHandlerCallsMetric, labels)

	switch status {
	case StatusCanceled:
		incrementCounter(ctx, collector, QueryHandlerCanceledMetric, labels)
	case StatusTimeout:
		incrementCounter(ctx, collector, QueryHandlerTimeoutMetric, labels)
	}
}

// StartCommandSpan returns ctx and a nil span when tracing is disabled.
func StartCommandSpan(ctx context.Context, tracingCollector TracingCollector, commandType string) (context.Context, SpanContext) {
	if tracingCollector == nil {
		return ctx, nil
	}

	return tracingCollector.StartSpan(ctx, SpanNameCommandHandle, map[string]string{LogAttrCommandType: commandType})
}

func FinishCommandSpan(tracingCollector TracingCollector, span SpanContext, status string, duration time.Duration, err error) {
	finishSpan(tracingCollector, span, status, duration, err)
}

// StartQuerySpan returns ctx and a nil span when tracing is disabled.
func StartQuerySpan(ctx context.Context, tracingCollector TracingCollector, queryType string) (context.Context, SpanContext) {
	if tracingCollector == nil {
		return ctx, nil
	}

	return tracingCollector.StartSpan(ctx, SpanNameQueryHandle, map[string]string{LogAttrQueryType: queryType})
}

func FinishQuerySpan(tracingCollector TracingCollector, span SpanContext, status string, duration time.Duration, err error) {
	finishSpan(tracingCollector, span, status, duration, err)
}

func finishSpan(tracingCollector TracingCollector, span SpanContext, status string, duration time.Duration, err error) {
	if tracingCollector == nil || span == nil {
		return
	}

	attrs := map[string]string{
		LogAttrStatus:     status,
		LogAttrDurationMS: strconv.FormatFloat(ToMilliseconds(duration), 'f', 2, 64),
	}

	if err != nil {
		attrs[LogAttrError] = err.Error()
	}

	tracingCollector.FinishSpan(span, status, attrs)
}

func LogCommandStart(ctx context.Context, logger Logger, contextualLogger ContextualLogger, commandType string) {
	logInfo(ctx, logger, contextualLogger, LogMsgCommandStarted, LogAttrCommandType, commandType)
}

func LogCommandSuccess(
	ctx context.Context,
	logger Logger,
	contextualLogger ContextualLogger,
	commandType string,
	businessOutcome string,
	duration time.Duration,
) {

	logInfo(ctx, logger, contextualLogger, LogMsgCommandCompleted,
		LogAttrCommandType, commandType,
		LogAttrBusinessOutcome, businessOutcome,
		LogAttrDurationMS, ToMilliseconds(duration))
}

// LogCommandRejected logs business rule violations at info level, they are expected outcomes.
func LogCommandRejected(ctx context.Context, logger Logger, contextualLogger ContextualLogger, commandType string, err error) {
	logInfo(ctx, logger, contextualLogger, LogMsgCommandRejected,
		LogAttrCommandType, commandType,
		LogAttrBusinessOutcome, StatusRejected,
		LogAttrError, err.Error())
}

func LogCommandError(ctx context.Context, logger Logger, contextualLogger ContextualLogger, commandType string, err error) {
	logError(ctx, logger, contextualLogger, LogMsgCommandFailed, LogAttrCommandType, commandType, LogAttrError, err.Error())
}

func LogQueryStart(ctx context.Context, logger Logger, contextualLogger ContextualLogger, queryType string) {
	logInfo(ctx, logger, contextualLogger, LogMsgQueryStarted, LogAttrQueryType, queryType)
}

func LogQuerySuccess(
	ctx context.Context,
	logger Logger,
	contextualLogger ContextualLogger,
	queryType string,
	businessOutcome string,
	duration time.Duration,
) {

	logInfo(ctx, logger, contextualLogger, LogMsgQueryCompleted,
		LogAttrQueryType, queryType,
		LogAttrBusinessOutcome, businessOutcome,
		LogAttrDurationMS, ToMilliseconds(duration))
}

func LogQueryError(ctx context.Context, logger Logger, contextualLogger ContextualLogger, queryType string, err error) {
	logError(ctx, logger, contextualLogger, LogMsgQueryFailed, LogAttrQueryType, queryType, LogAttrError, err.Error())
}

// LogInfo prefers the contextual logger, so that trace ids end up in the record.
func LogInfo(ctx context.Context, logger Logger, contextualLogger ContextualLogger, msg string, args ...any) {
	logInfo(ctx, logger, contextualLogger, msg, args...)
}

// LogError prefers the contextual logger, so that trace ids end up in the record.
func LogError(ctx context.Context, logger Logger, contextualLogger ContextualLogger, msg string, args ...any) {
	logError(ctx, logger, contextualLogger, msg, args...)
}

func logInfo(ctx context.Context, logger Logger, contextualLogger ContextualLogger, msg string, args ...any) {
	if contextualLogger != nil {
		contextualLogger.InfoContext(ctx, msg, args...)
	} else if logger != nil {
		logger.Info(msg, args...)
	}
}

func logError(ctx context.Context, logger Logger, contextualLogger ContextualLogger, msg string, args ...any) {
	if contextualLogger != nil {
		contextualLogger.ErrorContext(ctx, msg, args...)
	} else if logger != nil {
		logger.Error(msg, args...)
	}
}

func recordDuration(ctx context.Context, collector MetricsCollector, metric string, d time.Duration, labels map[string]string) {
	if contextualCollector, ok := collector.(ContextualMetricsCollector); ok {
		contextualCollector.RecordDurationContext(ctx, metric, d, labels)
		return
	}

	collector.RecordDuration(metric, d, labels)
}

func incrementCounter(ctx context.Context, collector MetricsCollector, metric string, labels map[string]string) {
	if contextualCollector, ok := collector.(ContextualMetricsCollector); ok {
		contextualCollector.IncrementCounterContext(ctx, metric, labels)
		return
	}

	collector.IncrementCounter(metric, labels)
}

// IsCancellationError checks if an error is due to context cancellation.
func IsCancellationError(err error) bool {
	return errors.Is(err, context.Canceled)
}

// IsTimeoutError checks if an error is due to context deadline exceeded.
func IsTimeoutError(err error) bool {
	return errors.Is(err, context.DeadlineExceeded)
}

// IsConcurrencyConflictError checks if an error is due to optimistic concurrency control failure.
func IsConcurrencyConflictError(err error) bool {
	return errors.Is(err, eventstore.ErrConcurrencyConflict)
}
