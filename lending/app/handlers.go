package app

import (
	"time"

	"github.com/AntonStoeckl/library-lending/lending/engine"
	"github.com/AntonStoeckl/library-lending/lending/features/command/addbook"
	"github.com/AntonStoeckl/library-lending/lending/features/command/changemembershiptier"
	"github.com/AntonStoeckl/library-lending/lending/features/command/registerborrower"
	"github.com/AntonStoeckl/library-lending/lending/features/command/removebook"
	"github.com/AntonStoeckl/library-lending/lending/features/command/setfinepolicy"
	"github.com/AntonStoeckl/library-lending/lending/features/command/updatebook"
	"github.com/AntonStoeckl/library-lending/lending/features/query/activeborrowrecords"
	"github.com/AntonStoeckl/library-lending/lending/features/query/availabilitysummary"
	"github.com/AntonStoeckl/library-lending/lending/features/query/borroweractivity"
	"github.com/AntonStoeckl/library-lending/lending/features/query/borrowerhistory"
	"github.com/AntonStoeckl/library-lending/lending/features/query/catalog"
	"github.com/AntonStoeckl/library-lending/lending/features/query/finepolicies"
	"github.com/AntonStoeckl/library-lending/lending/features/query/overdueborrowers"
	"github.com/AntonStoeckl/library-lending/lending/features/query/overduerecords"
	"github.com/AntonStoeckl/library-lending/lending/features/query/similarbooks"
	"github.com/AntonStoeckl/library-lending/lending/features/query/topborrowedbooks"
	"github.com/AntonStoeckl/library-lending/lending/overduescan"
	"github.com/AntonStoeckl/library-lending/lending/shell"
	"github.com/AntonStoeckl/library-lending/lending/shell/observable"
	"github.com/AntonStoeckl/library-lending/lending/shell/snapshot"
)

// Handlers is the complete set of use cases of the lending service.
type Handlers struct {
	Engine *engine.Engine

	AddBook              shell.CommandHandler[addbook.Command]
	UpdateBook           shell.CommandHandler[updatebook.Command]
	RemoveBook           shell.CommandHandler[removebook.Command]
	RegisterBorrower     shell.CommandHandler[registerborrower.Command]
	ChangeMembershipTier shell.CommandHandler[changemembershiptier.Command]
	SetFinePolicy        shell.CommandHandler[setfinepolicy.Command]

	ActiveBorrowRecords shell.QueryHandler[activeborrowrecords.Query, activeborrowrecords.ActiveBorrowRecords]
	BorrowerHistory     shell.QueryHandler[borrowerhistory.Query, borrowerhistory.BorrowerHistory]
	OverdueBorrowers    shell.QueryHandler[overdueborrowers.Query, overdueborrowers.OverdueBorrowers]
	OverdueRecords      shell.QueryHandler[overduerecords.Query, overduerecords.OverdueRecords]
	Catalog             shell.QueryHandler[catalog.Query, catalog.Catalog]
	SimilarBooks        shell.QueryHandler[similarbooks.Query, similarbooks.SimilarBooks]
	AvailabilitySummary shell.QueryHandler[availabilitysummary.Query, availabilitysummary.AvailabilitySummary]
	TopBorrowedBooks    shell.QueryHandler[topborrowedbooks.Query, topborrowedbooks.TopBorrowedBooks]
	BorrowerActivity    shell.QueryHandler[borroweractivity.Query, borroweractivity.BorrowerActivity]
	FinePolicies        shell.QueryHandler[finepolicies.Query, finepolicies.FinePolicies]

	OverdueScanner *overduescan.Scanner

	Now func() time.Time
}

type handlerSettings struct {
	now          func() time.Time
	retryOptions []shell.RetryOption
}

type HandlersOption func(*handlerSettings)

func WithClock(now func() time.Time) HandlersOption {
	return func(s *handlerSettings) {
		s.now = now
	}
}

func WithRetryOptions(opts ...shell.RetryOption) HandlersOption {
	return func(s *handlerSettings) {
		s.retryOptions = opts
	}
}

// NewHandlers builds all handlers on eventStore, each reporting through obs.
func NewHandlers(eventStore EventStore, obs Observability, opts ...HandlersOption) (*Handlers, error) { //nolint:funlen
	s := handlerSettings{now: time.Now}
	for _, opt := range opts {
		opt(&s)
	}

	h := &Handlers{Now: s.now}
	var err error

	if h.Engine, err = engine.New(eventStore, engineOptions(obs, s)...); err != nil {
		return nil, err
	}

	if h.AddBook, err = wrapCommand[addbook.Command](
		addbook.NewCommandHandler(eventStore, addbook.WithRetryOptions(s.retryOptions...)), obs,
	); err != nil {
		return nil, err
	}

	if h.UpdateBook, err = wrapCommand[updatebook.Command](
		updatebook.NewCommandHandler(eventStore, updatebook.WithRetryOptions(s.retryOptions...)), obs,
	); err != nil {
		return nil, err
	}

	if h.RemoveBook, err = wrapCommand[removebook.Command](
		removebook.NewCommandHandler(eventStore, removebook.WithRetryOptions(s.retryOptions...)), obs,
	); err != nil {
		return nil, err
	}

	if h.RegisterBorrower, err = wrapCommand[registerborrower.Command](
		registerborrower.NewCommandHandler(eventStore, registerborrower.WithRetryOptions(s.retryOptions...)), obs,
	); err != nil {
		return nil, err
	}

	if h.ChangeMembershipTier, err = wrapCommand[changemembershiptier.Command](
		changemembershiptier.NewCommandHandler(eventStore, changemembershiptier.WithRetryOptions(s.retryOptions...)), obs,
	); err != nil {
		return nil, err
	}

	if h.SetFinePolicy, err = wrapCommand[setfinepolicy.Command](
		setfinepolicy.NewCommandHandler(eventStore, setfinepolicy.WithRetryOptions(s.retryOptions...)), obs,
	); err != nil {
		return nil, err
	}

	if h.ActiveBorrowRecords, err = wrapQuery[activeborrowrecords.Query, activeborrowrecords.ActiveBorrowRecords](
		activeborrowrecords.NewQueryHandler(eventStore), obs,
	); err != nil {
		return nil, err
	}

	if h.BorrowerHistory, err = wrapQuery[borrowerhistory.Query, borrowerhistory.BorrowerHistory](
		borrowerhistory.NewQueryHandler(eventStore), obs,
	); err != nil {
		return nil, err
	}

	if h.OverdueBorrowers, err = wrapQuery[overdueborrowers.Query, overdueborrowers.OverdueBorrowers](
		overdueborrowers.NewQueryHandler(eventStore), obs,
	); err != nil {
		return nil, err
	}

	if h.OverdueRecords, err = wrapQuery[overduerecords.Query, overduerecords.OverdueRecords](
		overduerecords.NewQueryHandler(eventStore), obs,
	); err != nil {
		return nil, err
	}

	if h.Catalog, err = wrapQuery[catalog.Query, catalog.Catalog](
		catalog.NewQueryHandler(eventStore), obs,
	); err != nil {
		return nil, err
	}

	if h.SimilarBooks, err = wrapQuery[similarbooks.Query, similarbooks.SimilarBooks](
		similarbooks.NewQueryHandler(eventStore), obs,
	); err != nil {
		return nil, err
	}

	if h.AvailabilitySummary, err = wrapQuery[availabilitysummary.Query, availabilitysummary.AvailabilitySummary](
		availabilitysummary.NewQueryHandler(eventStore), obs,
	); err != nil {
		return nil, err
	}

	if h.BorrowerActivity, err = wrapQuery[borroweractivity.Query, borroweractivity.BorrowerActivity](
		borroweractivity.NewQueryHandler(eventStore), obs,
	); err != nil {
		return nil, err
	}

	if h.FinePolicies, err = wrapQuery[finepolicies.Query, finepolicies.FinePolicies](
		finepolicies.NewQueryHandler(eventStore), obs,
	); err != nil {
		return nil, err
	}

	topBorrowed, err := topborrowedbooks.NewSnapshotQueryHandler(
		eventStore,
		snapshotOptions[topborrowedbooks.Query, topborrowedbooks.TopBorrowedBooks](obs)...,
	)
	if err != nil {
		return nil, err
	}
	h.TopBorrowedBooks = topBorrowed

	if h.OverdueScanner, err = overduescan.NewScanner(
		h.OverdueRecords,
		overduescan.WithClock(s.now),
		overduescan.WithLogging(obs.Logger),
		overduescan.WithContextualLogging(obs.ContextualLogger),
	); err != nil {
		return nil, err
	}

	return h, nil
}

func engineOptions(obs Observability, s handlerSettings) []engine.Option {
	return []engine.Option{
		engine.WithClock(s.now),
		engine.WithRetryOptions(s.retryOptions...),
		engine.WithMetrics(obs.MetricsCollector),
		engine.WithTracing(obs.TracingCollector),
		engine.WithLogging(obs.Logger),
		engine.WithContextualLogging(obs.ContextualLogger),
	}
}

func wrapCommand[C shell.Command](handler shell.CommandHandler[C], obs Observability) (shell.CommandHandler[C], error) {
	return observable.NewCommandWrapper[C](
		handler,
		observable.WithCommandMetrics[C](obs.MetricsCollector),
		observable.WithCommandTracing[C](obs.TracingCollector),
		observable.WithCommandLogging[C](obs.Logger),
		observable.WithCommandContextualLogging[C](obs.ContextualLogger),
	)
}

func wrapQuery[Q shell.Query, R shell.QueryResult](handler shell.QueryHandler[Q, R], obs Observability) (shell.QueryHandler[Q, R], error) {
	return observable.NewQueryWrapper[Q, R](
		handler,
		observable.WithQueryMetrics[Q, R](obs.MetricsCollector),
		observable.WithQueryTracing[Q, R](obs.TracingCollector),
		observable.WithQueryLogging[Q, R](obs.Logger),
		observable.WithQueryContextualLogging[Q, R](obs.ContextualLogger),
	)
}

func snapshotOptions[Q shell.Query, R shell.QueryResult](obs Observability) []snapshot.Option[Q, R] {
	return []snapshot.Option[Q, R]{
		snapshot.WithMetrics[Q, R](obs.MetricsCollector),
		snapshot.WithTracing[Q, R](obs.TracingCollector),
		snapshot.WithLogging[Q, R](obs.Logger),
		snapshot.WithContextualLogging[Q, R](obs.ContextualLogger),
	}
}
