package engine

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-lending/eventstore"
	"github.com/AntonStoeckl/library-lending/lending/core"
	"github.com/AntonStoeckl/library-lending/lending/features/command/borrowbook"
	"github.com/AntonStoeckl/library-lending/lending/features/command/returnbook"
	"github.com/AntonStoeckl/library-lending/lending/features/query/borrowrecord"
	"github.com/AntonStoeckl/library-lending/lending/readmodel"
	"github.com/AntonStoeckl/library-lending/lending/shell"
	"github.com/AntonStoeckl/library-lending/lending/shell/observable"
)

var ErrNilEventStore = errors.New("event store must not be nil")

// Engine runs Borrow and Return against one event store.
type Engine struct {
	borrowHandler shell.CommandHandler[borrowbook.Command]
	returnHandler shell.CommandHandler[returnbook.Command]
	recordHandler shell.QueryHandler[borrowrecord.Query, borrowrecord.BorrowRecord]
	now           func() time.Time
	newRecordID   func() core.RecordIDString
}

type settings struct {
	now              func() time.Time
	newRecordID      func() core.RecordIDString
	retryOptions     []shell.RetryOption
	metricsCollector shell.MetricsCollector
	tracingCollector shell.TracingCollector
	contextualLogger shell.ContextualLogger
	logger           shell.Logger
}

// Option configures an Engine.
type Option func(*settings)

// WithClock replaces time.Now, borrow and return dates are taken from it.
func WithClock(now func() time.Time) Option {
	return func(s *settings) {
		s.now = now
	}
}

// WithRecordIDGenerator replaces the UUIDv7 record ids.
func WithRecordIDGenerator(newRecordID func() core.RecordIDString) Option {
	return func(s *settings) {
		s.newRecordID = newRecordID
	}
}

func WithRetryOptions(opts ...shell.RetryOption) Option {
	return func(s *settings) {
		s.retryOptions = opts
	}
}

func WithMetrics(collector shell.MetricsCollector) Option {
	return func(s *settings) {
		s.metricsCollector = collector
	}
}

func WithTracing(collector shell.TracingCollector) Option {
	return func(s *settings) {
		s.tracingCollector = collector
	}
}

func WithContextualLogging(logger shell.ContextualLogger) Option {
	return func(s *settings) {
		s.contextualLogger = logger
	}
}

func WithLogging(logger shell.Logger) Option {
	return func(s *settings) {
		s.logger = logger
	}
}

func New(eventStore shell.EventStore, opts ...Option) (*Engine, error) {
	if eventStore == nil {
		return nil, ErrNilEventStore
	}

	s := settings{
		now:         time.Now,
		newRecordID: newUUIDv7,
	}

	for _, opt := range opts {
		opt(&s)
	}

	borrowHandler, err := observable.NewCommandWrapper[borrowbook.Command](
		borrowbook.NewCommandHandler(eventStore, borrowbook.WithRetryOptions(s.retryOptions...)),
		commandOptions[borrowbook.Command](s)...,
	)
	if err != nil {
		return nil, err
	}

	returnHandler, err := observable.NewCommandWrapper[returnbook.Command](
		returnbook.NewCommandHandler(eventStore, returnbook.WithRetryOptions(s.retryOptions...)),
		commandOptions[returnbook.Command](s)...,
	)
	if err != nil {
		return nil, err
	}

	recordHandler, err := observable.NewQueryWrapper[borrowrecord.Query, borrowrecord.BorrowRecord](
		borrowrecord.NewQueryHandler(eventStore),
		queryOptions[borrowrecord.Query, borrowrecord.BorrowRecord](s)...,
	)
	if err != nil {
		return nil, err
	}

	return &Engine{
		borrowHandler: borrowHandler,
		returnHandler: returnHandler,
		recordHandler: recordHandler,
		now:           s.now,
		newRecordID:   s.newRecordID,
	}, nil
}

// Borrow opens a new borrow record, due LoanPeriodDays after today.
func (e *Engine) Borrow(
	ctx context.Context,
	bookID core.BookIDString,
	borrowerID core.BorrowerIDString,
) (readmodel.BorrowRecordView, error) {

	recordID := e.newRecordID()
	now := e.now()

	if _, err := e.borrowHandler.Handle(ctx, borrowbook.BuildCommand(recordID, bookID, borrowerID, now)); err != nil {
		return readmodel.BorrowRecordView{}, err
	}

	return e.readRecord(ctx, borrowrecord.BuildQuery(recordID, bookID, borrowerID, now))
}

// Return closes the open record of the pair and returns it with its fine.
func (e *Engine) Return(
	ctx context.Context,
	bookID core.BookIDString,
	borrowerID core.BorrowerIDString,
) (readmodel.BorrowRecordView, error) {

	now := e.now()

	result, err := e.returnHandler.Handle(ctx, returnbook.BuildCommand(bookID, borrowerID, now))
	if err != nil {
		return readmodel.BorrowRecordView{}, err
	}

	return e.readRecord(ctx, borrowrecord.BuildQuery(result.RecordID, bookID, borrowerID, now))
}

func (e *Engine) readRecord(ctx context.Context, query borrowrecord.Query) (readmodel.BorrowRecordView, error) {
	result, err := e.recordHandler.Handle(eventstore.WithStrongConsistency(ctx), query)
	if err != nil {
		return readmodel.BorrowRecordView{}, err
	}

	if !result.Found {
		return readmodel.BorrowRecordView{}, core.BorrowRecordNotFound(query.RecordID)
	}

	return result.Record, nil
}

func commandOptions[C shell.Command](s settings) []observable.CommandOption[C] {
	var opts []observable.CommandOption[C]

	if s.metricsCollector != nil {
		opts = append(opts, observable.WithCommandMetrics[C](s.metricsCollector))
	}

	if s.tracingCollector != nil {
		opts = append(opts, observable.WithCommandTracing[C](s.tracingCollector))
	}

	if s.contextualLogger != nil {
		opts = append(opts, observable.WithCommandContextualLogging[C](s.contextualLogger))
	}

	if s.logger != nil {
		opts = append(opts, observable.WithCommandLogging[C](s.logger))
	}

	return opts
}

func queryOptions[Q shell.Query, R shell.QueryResult](s settings) []observable.QueryOption[Q, R] {
	var opts []observable.QueryOption[Q, R]

	if s.metricsCollector != nil {
		opts = append(opts, observable.WithQueryMetrics[Q, R](s.metricsCollector))
	}

	if s.tracingCollector != nil {
		opts = append(opts, observable.WithQueryTracing[Q, R](s.tracingCollector))
	}

	if s.contextualLogger != nil {
		opts = append(opts, observable.WithQueryContextualLogging[Q, R](s.contextualLogger))
	}

	if s.logger != nil {
		opts = append(opts, observable.WithQueryLogging[Q, R](s.logger))
	}

	return opts
}

func newUUIDv7() core.RecordIDString {
	return uuid.Must(uuid.NewV7()).String()
}
