package memoryengine

import (
	"errors"

	"github.com/AntonStoeckl/library-lending/eventstore"
)

const defaultSnapshotCacheSize = 128

var ErrInvalidSnapshotCacheSize = errors.New("snapshot cache size must be positive")

// Option configures an EventStore.
type Option func(*EventStore) error

// WithLogger sets a leveled logger, operations are logged at info and failures at error level.
func WithLogger(logger eventstore.Logger) Option {
	return func(es *EventStore) error {
		es.instruments.Logger = logger
		return nil
	}
}

// WithContextualLogger sets a context-aware logger for trace correlated logs.
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

// WithSnapshotCacheSize bounds the number of snapshots kept, the least recently used one is evicted first.
func WithSnapshotCacheSize(size int) Option {
	return func(es *EventStore) error {
		if size <= 0 {
			return ErrInvalidSnapshotCacheSize
		}

		es.snapshotCacheSize = size

		return nil
	}
}
