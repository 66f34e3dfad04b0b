package config

import (
	"io"
	"log/slog"

	"github.com/AntonStoeckl/library-lending/eventstore/oteladapters"
)

// NewLogger returns a JSON logger writing to w at cfg.LogLevel.
// With OpenTelemetry enabled the records are also handed to the otelslog bridge,
// and the trace and span id of the active span are added to every record.
func NewLogger(cfg Config, w io.Writer) *slog.Logger {
	var handler slog.Handler = slog.NewJSONHandler(w, &slog.HandlerOptions{Level: cfg.LogLevel})

	if cfg.OTelEnabled {
		handler = oteladapters.NewTraceCorrelationHandler(
			oteladapters.NewFanoutHandler(handler, oteladapters.NewOTelSlogHandler(cfg.ServiceName)),
		)
	}

	return slog.New(handler)
}
