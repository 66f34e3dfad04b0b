package postgresengine

import (
	"github.com/AntonStoeckl/library-lending/eventstore"
)

// Option configures an EventStore.
type Option func(*EventStore) error

// WithTableName sets the events table name, the default is "events".
func WithTableName(tableName string) Option {
	return func(es *EventStore) error {
		if tableName == "" {
			return eventstore.ErrEmptyEventsTableName
		}

		es.eventTableName = tableName

		return nil
	}
}

// WithSnapshotTableName sets the snapshots table name, the default is "snapshots".
func WithSnapshotTableName(tableName string) Option {
	return func(es *EventStore) error {
		if tableName == "" {
			return eventstore.ErrEmptySnapshotsTableName
		}

		es.snapshotTableName = tableName

		return nil
	}
}

// WithLogger sets the logger.
//
// Debug level: SQL statements with timing
// Info level: event counts, durations, concurrency conflicts
// Warn level: cleanup failures
// Error level: failures that abort the operation.
func WithLogger(logger eventstore.Logger) Option {
	return func(es *EventStore) error {
		es.instruments.Logger = logger
		return nil
	}
}

// WithContextualLogger sets a context-aware logger, used for trace correlation.
func WithContextualLogger(logger eventstore.ContextualLogger) Option {
	return func(es *EventStore) error {
		es.instruments.ContextualLogger = logger
		return nil
	}
}

// WithMetrics sets the metrics collector.
func WithMetrics(collector eventstore.MetricsCollector) Option {
	return func(es *EventStore) error {
		es.instruments.Metrics = collector
		return nil
	}
}

// WithTracing sets the tracing collector.
func WithTracing(collector eventstore.TracingCollector) Option {
	return func(es *EventStore) error {
		es.instruments.Tracing = collector
		return nil
	}
}
