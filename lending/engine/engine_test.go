package engine_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-lending/eventstore"
	"github.com/AntonStoeckl/library-lending/eventstore/memoryengine"
	"github.com/AntonStoeckl/library-lending/lending/core"
	"github.com/AntonStoeckl/library-lending/lending/engine"
	"github.com/AntonStoeckl/library-lending/lending/features/query/catalog"
	"github.com/AntonStoeckl/library-lending/lending/readmodel"
	"github.com/AntonStoeckl/library-lending/lending/shell"
	. "github.com/AntonStoeckl/library-lending/testutil/helper" //nolint:revive
	"github.com/AntonStoeckl/library-lending/testutil/postgreswrapper"
	"github.com/AntonStoeckl/library-lending/testutil/testdoubles"
)

type clock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.now
}

func (c *clock) advanceDays(days int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.now = c.now.AddDate(0, 0, days)
}

func givenEngine(t *testing.T, es shell.EventStore, c *clock, opts ...engine.Option) *engine.Engine {
	t.Helper()

	e, err := engine.New(es, append([]engine.Option{engine.WithClock(c.Now)}, opts...)...)
	require.NoError(t, err)

	return e
}

func availableCopiesOf(t *testing.T, es shell.QueriesEvents, bookID string) int {
	t.Helper()

	query, err := catalog.BuildQuery("", nil, 1, catalog.MaxPageSize, "")
	require.NoError(t, err)

	result, err := catalog.NewQueryHandler(es).Handle(t.Context(), query)
	require.NoError(t, err)

	for _, book := range result.Books {
		if book.BookID == bookID {
			return book.AvailableCopies
		}
	}

	t.Fatalf("book %s is not in the catalog", bookID)

	return 0
}

func Test_Engine_BorrowThenLateReturn(t *testing.T) {
	// arrange
	es := GivenMemoryEventStore(t)
	GivenEventsWereAppended(t, es,
		BookAdded("book-1", 1),
		BorrowerRegistered("borrower-a", core.TierBasic),
		BorrowerRegistered("borrower-b", core.TierBasic),
	)
	c := &clock{now: FixedTime}
	e := givenEngine(t, es, c)

	// act
	borrowed, borrowErr := e.Borrow(t.Context(), "book-1", "borrower-a")
	availableAfterBorrow := availableCopiesOf(t, es, "book-1")

	_, secondBorrowErr := e.Borrow(t.Context(), "book-1", "borrower-b")

	c.advanceDays(20)
	returned, returnErr := e.Return(t.Context(), "book-1", "borrower-a")

	// assert
	require.NoError(t, borrowErr)
	assert.NotEmpty(t, borrowed.RecordID)
	assert.Equal(t, "Title book-1", borrowed.BookTitle)
	assert.Equal(t, "Name borrower-a", borrowed.BorrowerName)
	assert.Equal(t, core.ToDay(FixedTime), borrowed.BorrowDate)
	assert.Equal(t, core.DueDateFor(FixedTime), borrowed.DueDate)
	assert.True(t, borrowed.Active)
	assert.False(t, borrowed.Overdue)
	assert.Nil(t, borrowed.ReturnDate)
	assert.Zero(t, availableAfterBorrow)

	assert.ErrorIs(t, secondBorrowErr, core.ErrUnavailable)

	require.NoError(t, returnErr)
	assert.Equal(t, borrowed.RecordID, returned.RecordID)
	assert.False(t, returned.Active)
	assert.False(t, returned.Overdue)
	require.NotNil(t, returned.ReturnDate)
	assert.Equal(t, "30.00", returned.FineAmount.StringFixed(2))
	assert.Equal(t, 1, availableCopiesOf(t, es, "book-1"))
}

func Test_Engine_OnTimeReturnHasNoFine(t *testing.T) {
	// arrange
	es := GivenMemoryEventStore(t)
	GivenEventsWereAppended(t, es,
		BookAdded("book-1", 2),
		BorrowerRegistered("borrower-1", core.TierBasic),
	)
	c := &clock{now: FixedTime}
	e := givenEngine(t, es, c)

	_, err := e.Borrow(t.Context(), "book-1", "borrower-1")
	require.NoError(t, err)
	c.advanceDays(core.LoanPeriodDays)

	// act
	returned, err := e.Return(t.Context(), "book-1", "borrower-1")

	// assert
	require.NoError(t, err)
	assert.True(t, returned.FineAmount.IsZero())
	assert.Equal(t, 2, availableCopiesOf(t, es, "book-1"))
}

func Test_Engine_BasicBorrowerCannotExceedTheLimit(t *testing.T) {
	// arrange
	es := GivenMemoryEventStore(t)
	GivenEventsWereAppended(t, es,
		BookAdded("book-1", 1),
		BookAdded("book-2", 1),
		BookAdded("book-3", 1),
		BorrowerRegistered("borrower-1", core.TierBasic),
	)
	e := givenEngine(t, es, &clock{now: FixedTime})

	_, err := e.Borrow(t.Context(), "book-1", "borrower-1")
	require.NoError(t, err)
	_, err = e.Borrow(t.Context(), "book-2", "borrower-1")
	require.NoError(t, err)

	// act
	_, err = e.Borrow(t.Context(), "book-3", "borrower-1")

	// assert
	require.ErrorIs(t, err, core.ErrLimitExceeded)

	var businessErr *core.BusinessError
	require.True(t, errors.As(err, &businessErr))
	assert.Equal(t, 2, businessErr.Limit)
	assert.Equal(t, 1, availableCopiesOf(t, es, "book-3"))
}

func Test_Engine_ReturnWithoutOpenRecordIsInvalidState(t *testing.T) {
	// arrange
	es := GivenMemoryEventStore(t)
	GivenEventsWereAppended(t, es,
		BookAdded("book-1", 1),
		BorrowerRegistered("borrower-1", core.TierBasic),
	)
	e := givenEngine(t, es, &clock{now: FixedTime})
	eventsBefore := es.Len()

	// act
	_, err := e.Return(t.Context(), "book-1", "borrower-1")

	// assert
	assert.ErrorIs(t, err, core.ErrInvalidState)
	assert.Equal(t, eventsBefore, es.Len())
}

func Test_Engine_ConcurrentBorrowsOfTheLastCopy(t *testing.T) {
	assertOnlyOneBorrowOfTheLastCopy(t, GivenMemoryEventStore(t))
}

func Test_Engine_ConcurrentBorrowsOfTheLastCopy_OnPostgres(t *testing.T) {
	assertOnlyOneBorrowOfTheLastCopy(t, postgreswrapper.New(t).EventStore())
}

func assertOnlyOneBorrowOfTheLastCopy(t *testing.T, es shell.EventStore) {
	t.Helper()

	// arrange
	const borrowers = 10

	bookID := GivenUniqueID(t)
	borrowerIDs := make([]string, 0, borrowers)

	GivenEventsWereAppended(t, es, BookAdded(bookID, 1))

	for range borrowers {
		borrowerID := GivenUniqueID(t)
		borrowerIDs = append(borrowerIDs, borrowerID)
		GivenEventsWereAppended(t, es, BorrowerRegistered(borrowerID, core.TierBasic))
	}

	e := givenEngine(t, es, &clock{now: FixedTime},
		engine.WithRetryOptions(shell.WithMaxAttempts(borrowers+2), shell.WithBaseDelay(time.Millisecond)),
	)

	var (
		wg          sync.WaitGroup
		mu          sync.Mutex
		successes   int
		unavailable int
	)

	// act
	for _, borrowerID := range borrowerIDs {
		wg.Add(1)

		go func(borrowerID string) {
			defer wg.Done()

			_, err := e.Borrow(t.Context(), bookID, borrowerID)

			mu.Lock()
			defer mu.Unlock()

			switch {
			case err == nil:
				successes++
			case errors.Is(err, core.ErrUnavailable):
				unavailable++
			}
		}(borrowerID)
	}

	wg.Wait()

	// assert
	assert.Equal(t, 1, successes)
	assert.Equal(t, borrowers-1, unavailable)
	assert.Zero(t, availableCopiesOf(t, es, bookID))
	assert.Len(t, borrowsOf(t, es, bookID), 1)
}

func borrowsOf(t *testing.T, es shell.QueriesEvents, bookID string) core.DomainEvents {
	t.Helper()

	var borrows core.DomainEvents

	for _, event := range EventsOf(t, es, core.BookBorrowedEventType) {
		if borrowed, ok := event.(core.BookBorrowed); ok && borrowed.BookID == bookID {
			borrows = append(borrows, borrowed)
		}
	}

	return borrows
}

// borrowAfterReturnStore runs afterReturn once, right after the first BookReturned is stored.
type borrowAfterReturnStore struct {
	*memoryengine.EventStore

	once        sync.Once
	afterReturn func()
}

func (s *borrowAfterReturnStore) Append(
	ctx context.Context,
	filter eventstore.Filter,
	expectedMaxSequenceNumber eventstore.MaxSequenceNumberUint,
	event eventstore.StorableEvent,
	additionalEvents ...eventstore.StorableEvent,
) error {

	if err := s.EventStore.Append(ctx, filter, expectedMaxSequenceNumber, event, additionalEvents...); err != nil {
		return err
	}

	if event.EventType == core.BookReturnedEventType {
		s.once.Do(s.afterReturn)
	}

	return nil
}

func Test_Engine_ReturnReportsTheClosedRecordWhenThePairBorrowsAgainAtOnce(t *testing.T) {
	// arrange
	es := GivenMemoryEventStore(t)
	GivenEventsWereAppended(t, es,
		BookAdded("book-1", 1),
		BorrowerRegistered("borrower-a", core.TierBasic),
	)
	c := &clock{now: FixedTime}
	direct := givenEngine(t, es, c)

	borrowed, err := direct.Borrow(t.Context(), "book-1", "borrower-a")
	require.NoError(t, err)

	var (
		borrowedAgain  readmodel.BorrowRecordView
		borrowAgainErr error
	)

	store := &borrowAfterReturnStore{EventStore: es}
	store.afterReturn = func() {
		borrowedAgain, borrowAgainErr = direct.Borrow(t.Context(), "book-1", "borrower-a")
	}
	e := givenEngine(t, store, c)

	c.advanceDays(3)

	// act
	returned, err := e.Return(t.Context(), "book-1", "borrower-a")

	// assert
	require.NoError(t, err)
	require.NoError(t, borrowAgainErr)
	assert.NotEqual(t, borrowed.RecordID, borrowedAgain.RecordID)
	assert.Equal(t, borrowed.RecordID, returned.RecordID)
	assert.False(t, returned.Active)
	require.NotNil(t, returned.ReturnDate)
	assert.True(t, borrowedAgain.Active)
}

func Test_Engine_ReportsRejectionsThroughTheWrappers(t *testing.T) {
	// arrange
	es := GivenMemoryEventStore(t)
	metrics := testdoubles.NewMetricsCollectorSpy()
	logs := testdoubles.NewLogHandlerSpy(false)
	e := givenEngine(t, es, &clock{now: FixedTime}, engine.WithMetrics(metrics), engine.WithLogging(logs.NewLogger()))

	// act
	_, err := e.Borrow(t.Context(), "book-1", "nobody")

	// assert
	assert.ErrorIs(t, err, core.ErrNotFound)
	assert.True(t, metrics.HasRecord(shell.CommandHandlerBusinessRejectionsMetric, map[string]string{
		"command_type": "BorrowBook",
		"reason":       core.ReasonBorrowerNotFound,
	}))
}

func Test_New_RejectsNilEventStore(t *testing.T) {
	// act
	_, err := engine.New(nil)

	// assert
	assert.ErrorIs(t, err, engine.ErrNilEventStore)
}
