// Package app wires the lending service together: it opens the configured event store,
// builds the observability adapters and creates every command and query handler, each
// wrapped with metrics, tracing and logging.
package app
