package oteladapters

import (
	"context"
	"errors"
	"log/slog"

	"go.opentelemetry.io/contrib/bridges/otelslog"
	"go.opentelemetry.io/otel/trace"

	"github.com/AntonStoeckl/library-lending/eventstore"
)

const (
	attrTraceID = "trace_id"
	attrSpanID  = "span_id"
)

// SlogBridgeLogger implements eventstore.ContextualLogger on top of a *slog.Logger.
type SlogBridgeLogger struct {
	logger *slog.Logger
}

// NewSlogBridgeLogger logs through the OpenTelemetry slog bridge to the global LoggerProvider.
func NewSlogBridgeLogger(name string) *SlogBridgeLogger {
	return &SlogBridgeLogger{logger: otelslog.NewLogger(name)}
}

// NewSlogBridgeLoggerWithHandler logs to handler and adds trace_id and span_id when ctx carries a span.
func NewSlogBridgeLoggerWithHandler(handler slog.Handler) *SlogBridgeLogger {
	return &SlogBridgeLogger{logger: slog.New(NewTraceCorrelationHandler(handler))}
}

// Logger exposes the underlying *slog.Logger, it satisfies eventstore.Logger.
func (l *SlogBridgeLogger) Logger() *slog.Logger {
	return l.logger
}

func (l *SlogBridgeLogger) DebugContext(ctx context.Context, msg string, args ...any) {
	l.logger.DebugContext(ctx, msg, args...)
}

func (l *SlogBridgeLogger) InfoContext(ctx context.Context, msg string, args ...any) {
	l.logger.InfoContext(ctx, msg, args...)
}

func (l *SlogBridgeLogger) WarnContext(ctx context.Context, msg string, args ...any) {
	l.logger.WarnContext(ctx, msg, args...)
}

func (l *SlogBridgeLogger) ErrorContext(ctx context.Context, msg string, args ...any) {
	l.logger.ErrorContext(ctx, msg, args...)
}

var _ eventstore.ContextualLogger = (*SlogBridgeLogger)(nil)

// TraceCorrelationHandler adds the trace and span id of the active span to every record.
type TraceCorrelationHandler struct {
	next slog.Handler
}

func NewTraceCorrelationHandler(next slog.Handler) *TraceCorrelationHandler {
	return &TraceCorrelationHandler{next: next}
}

func (h *TraceCorrelationHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

func (h *TraceCorrelationHandler) Handle(ctx context.Context, record slog.Record) error {
	if spanContext := trace.SpanContextFromContext(ctx); spanContext.IsValid() {
		record = record.Clone()
		record.AddAttrs(
			slog.String(attrTraceID, spanContext.TraceID().String()),
			slog.String(attrSpanID, spanContext.SpanID().String()),
		)
	}

	return h.next.Handle(ctx, record)
}

func (h *TraceCorrelationHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &TraceCorrelationHandler{next: h.next.WithAttrs(attrs)}
}

func (h *TraceCorrelationHandler) WithGroup(name string) slog.Handler {
	return &TraceCorrelationHandler{next: h.next.WithGroup(name)}
}

// FanoutHandler hands every record to all of its handlers, e.g. stdout JSON and the otelslog bridge.
type FanoutHandler struct {
	handlers []slog.Handler
}

func NewFanoutHandler(handlers ...slog.Handler) *FanoutHandler {
	return &FanoutHandler{handlers: handlers}
}

func (h *FanoutHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, handler := range h.handlers {
		if handler.Enabled(ctx, level) {
			return true
		}
	}

	return false
}

func (h *FanoutHandler) Handle(ctx context.Context, record slog.Record) error {
	var errs []error

	for _, handler := range h.handlers {
		if !handler.Enabled(ctx, record.Level) {
			continue
		}

		if err := handler.Handle(ctx, record.Clone()); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

func (h *FanoutHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	handlers := make([]slog.Handler, 0, len(h.handlers))
	for _, handler := range h.handlers {
		handlers = append(handlers, handler.WithAttrs(attrs))
	}

	return &FanoutHandler{handlers: handlers}
}

func (h *FanoutHandler) WithGroup(name string) slog.Handler {
	handlers := make([]slog.Handler, 0, len(h.handlers))
	for _, handler := range h.handlers {
		handlers = append(handlers, handler.WithGroup(name))
	}

	return &FanoutHandler{handlers: handlers}
}

// NewOTelSlogHandler returns the otelslog bridge handler for name.
func NewOTelSlogHandler(name string) slog.Handler {
	return otelslog.NewHandler(name)
}
