// Package oteladapters implements the eventstore observability interfaces with OpenTelemetry:
// metrics as histograms, counters and gauges, tracing as spans, and logging through slog
// with trace correlation and the otelslog bridge.
package oteladapters
