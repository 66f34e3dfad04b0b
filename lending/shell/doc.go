// Package shell is the imperative shell around the lending core.
//
// It maps domain events to storable events and back, builds event metadata,
// retries command execution on concurrency conflicts, and provides the shared
// contracts (Command, Query, handlers, projections) and observability helpers
// the feature slices are built on.
//
// Subpackages:
//   - observable: metrics, tracing and logging decorators for command and query handlers
//   - snapshot: snapshot-based incremental projections for query handlers
//   - config: environment configuration, database connections, logging and OpenTelemetry setup
package shell
