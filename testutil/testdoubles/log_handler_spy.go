package testdoubles

import (
	"context"
	"log/slog"
	"os"
	"sync"
)

// LogHandlerSpy is a slog.Handler that captures records.
type LogHandlerSpy struct {
	records     []slog.Record
	mu          sync.Mutex
	logToStdout bool
}

// NewLogHandlerSpy creates a LogHandlerSpy, set logToStdout to also see the output while debugging a test.
func NewLogHandlerSpy(logToStdout bool) *LogHandlerSpy {
	return &LogHandlerSpy{records: make([]slog.Record, 0), logToStdout: logToStdout}
}

// NewLogger wraps the spy into a *slog.Logger.
func (s *LogHandlerSpy) NewLogger() *slog.Logger {
	return slog.New(s)
}

func (s *LogHandlerSpy) Handle(ctx context.Context, record slog.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = append(s.records, record.Clone())

	if s.logToStdout {
		_ = slog.NewJSONHandler(os.Stdout, nil).Handle(ctx, record)
	}

	return nil
}

func (s *LogHandlerSpy) Enabled(_ context.Context, _ slog.Level) bool {
	return true
}

func (s *LogHandlerSpy) WithAttrs(_ []slog.Attr) slog.Handler {
	return s
}

func (s *LogHandlerSpy) WithGroup(_ string) slog.Handler {
	return s
}

// Records returns a copy of the captured records.
func (s *LogHandlerSpy) Records() []slog.Record {
	s.mu.Lock()
	defer s.mu.Unlock()

	records := make([]slog.Record, len(s.records))
	copy(records, s.records)

	return records
}

// HasLog reports whether a record with level and message was captured.
func (s *LogHandlerSpy) HasLog(level slog.Level, message string) bool {
	_, found := s.find(level, message)

	return found
}

// AttrOf returns the value of key on the first record with level and message.
func (s *LogHandlerSpy) AttrOf(level slog.Level, message string, key string) (slog.Value, bool) {
	record, found := s.find(level, message)
	if !found {
		return slog.Value{}, false
	}

	var value slog.Value
	var hasAttr bool

	record.Attrs(func(attr slog.Attr) bool {
		if attr.Key == key {
			value, hasAttr = attr.Value, true
			return false
		}

		return true
	})

	return value, hasAttr
}

// CountLogs counts the records with level and message.
func (s *LogHandlerSpy) CountLogs(level slog.Level, message string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0

	for _, record := range s.records {
		if record.Level == level && record.Message == message {
			count++
		}
	}

	return count
}

func (s *LogHandlerSpy) find(level slog.Level, message string) (slog.Record, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, record := range s.records {
		if record.Level == level && record.Message == message {
			return record, true
		}
	}

	return slog.Record{}, false
}
