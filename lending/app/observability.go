package app

import (
	"log/slog"

	"go.opentelemetry.io/otel"

	"github.com/AntonStoeckl/library-lending/eventstore/oteladapters"
	"github.com/AntonStoeckl/library-lending/lending/shell"
	"github.com/AntonStoeckl/library-lending/lending/shell/config"
)

const instrumentationName = "github.com/AntonStoeckl/library-lending"

// Observability holds the adapters handed to the event store and to the handler wrappers.
// Nil fields switch the respective concern off.
type Observability struct {
	Logger           shell.Logger
	ContextualLogger shell.ContextualLogger
	MetricsCollector shell.MetricsCollector
	TracingCollector shell.TracingCollector
}

// NewObservability logs through logger in any case.
// Metrics and tracing use the global OpenTelemetry providers and are only enabled with cfg.OTelEnabled.
func NewObservability(cfg config.Config, logger *slog.Logger) Observability {
	obs := Observability{ContextualLogger: logger}

	if cfg.OTelEnabled {
		obs.MetricsCollector = oteladapters.NewMetricsCollector(otel.Meter(instrumentationName))
		obs.TracingCollector = oteladapters.NewTracingCollector(otel.Tracer(instrumentationName))
	}

	return obs
}
