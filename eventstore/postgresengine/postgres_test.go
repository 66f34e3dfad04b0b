package postgresengine_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-lending/eventstore"
	"github.com/AntonStoeckl/library-lending/eventstore/postgresengine"
	"github.com/AntonStoeckl/library-lending/testutil/postgreswrapper"
)

func Test_Append_When_NoEvent_MatchesTheFilter(t *testing.T) {
	// setup
	ctx := eventstore.WithStrongConsistency(t.Context())
	es := postgreswrapper.New(t).EventStore()
	bookID := uuid.NewString()
	filter := filterForBook(bookID)

	// arrange
	givenEventsWereAppended(t, ctx, es, givenEvent(t, "BookAddedToCatalog", uuid.NewString(), ""))
	_, maxSeq, err := es.Query(ctx, filter)
	require.NoError(t, err)

	// act
	err = es.Append(ctx, filter, maxSeq, givenEvent(t, "BookAddedToCatalog", bookID, ""))

	// assert
	assert.NoError(t, err)
	assert.Equal(t, eventstore.MaxSequenceNumberUint(0), maxSeq)
}

func Test_Append_When_TheStreamChangedAfterTheQuery(t *testing.T) {
	// setup
	ctx := eventstore.WithStrongConsistency(t.Context())
	es := postgreswrapper.New(t).EventStore()
	bookID := uuid.NewString()
	filter := filterForBook(bookID)

	// arrange
	givenEventsWereAppended(t, ctx, es, givenEvent(t, "BookAddedToCatalog", bookID, ""))
	_, maxSeq, err := es.Query(ctx, filter)
	require.NoError(t, err)
	givenEventsWereAppended(t, ctx, es, givenEvent(t, "BookBorrowed", bookID, uuid.NewString()))

	// act
	err = es.Append(ctx, filter, maxSeq, givenEvent(t, "BookBorrowed", bookID, uuid.NewString()))

	// assert
	assert.ErrorIs(t, err, eventstore.ErrConcurrencyConflict)
}

func Test_Append_IgnoresEventsOutsideTheFilter(t *testing.T) {
	// setup
	ctx := eventstore.WithStrongConsistency(t.Context())
	es := postgreswrapper.New(t).EventStore()
	bookID := uuid.NewString()
	filter := filterForBook(bookID)

	// arrange
	givenEventsWereAppended(t, ctx, es, givenEvent(t, "BookAddedToCatalog", bookID, ""))
	_, maxSeq, err := es.Query(ctx, filter)
	require.NoError(t, err)
	givenEventsWereAppended(t, ctx, es, givenEvent(t, "BookAddedToCatalog", uuid.NewString(), ""))

	// act
	err = es.Append(ctx, filter, maxSeq, givenEvent(t, "BookBorrowed", bookID, uuid.NewString()))

	// assert
	assert.NoError(t, err)
}

func Test_Append_MultipleEvents(t *testing.T) {
	// setup
	ctx := eventstore.WithStrongConsistency(t.Context())
	es := postgreswrapper.New(t).EventStore()
	bookID := uuid.NewString()
	filter := filterForBook(bookID)

	// act
	err := es.Append(ctx, filter, 0,
		givenEvent(t, "BookAddedToCatalog", bookID, ""),
		givenEvent(t, "BookCopiesAdded", bookID, ""),
	)

	// assert
	require.NoError(t, err)
	events, maxSeq, err := es.Query(ctx, filter)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "BookAddedToCatalog", events[0].EventType)
	assert.Equal(t, "BookCopiesAdded", events[1].EventType)
	assert.Equal(t, events[1].SequenceNumber, maxSeq)
}

func Test_Query_OnlyMatchesStringPayloadValues(t *testing.T) {
	// setup
	ctx := eventstore.WithStrongConsistency(t.Context())
	es := postgreswrapper.New(t).EventStore()

	// arrange
	nested, err := eventstore.BuildStorableEventWithEmptyMetadata(
		"BookAddedToCatalog",
		time.Now(),
		[]byte(`{"Book":{"BookID":"nested-1"},"TotalCopies":3}`),
	)
	require.NoError(t, err)
	givenEventsWereAppended(t, ctx, es, nested)

	// act
	events, maxSeq, err := es.Query(ctx, filterForBook("nested-1"))

	// assert
	require.NoError(t, err)
	assert.Empty(t, events)
	assert.Equal(t, eventstore.MaxSequenceNumberUint(0), maxSeq)
}

func Test_Query_WithSequenceNumberHigherThan(t *testing.T) {
	// setup
	ctx := eventstore.WithStrongConsistency(t.Context())
	es := postgreswrapper.New(t).EventStore()
	bookID := uuid.NewString()
	filter := filterForBook(bookID)

	// arrange
	givenEventsWereAppended(t, ctx, es, givenEvent(t, "BookAddedToCatalog", bookID, ""))
	_, firstSeq, err := es.Query(ctx, filter)
	require.NoError(t, err)
	givenEventsWereAppended(t, ctx, es, givenEvent(t, "BookBorrowed", bookID, uuid.NewString()))

	// act
	events, maxSeq, err := es.Query(ctx, filter.WithSequenceNumberHigherThan(firstSeq))

	// assert
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "BookBorrowed", events[0].EventType)
	assert.Greater(t, maxSeq, firstSeq)
}

func Test_Append_ConcurrentWritersOnTheSameStream(t *testing.T) {
	// setup
	ctx := eventstore.WithStrongConsistency(t.Context())
	es := postgreswrapper.New(t).EventStore()
	bookID := uuid.NewString()
	filter := filterForBook(bookID)
	event := givenEvent(t, "BookBorrowed", bookID, uuid.NewString())

	// arrange
	givenEventsWereAppended(t, ctx, es, givenEvent(t, "BookAddedToCatalog", bookID, ""))
	_, maxSeq, err := es.Query(ctx, filter)
	require.NoError(t, err)

	var succeeded, conflicted atomic.Int32
	var wg sync.WaitGroup

	// act
	for range 10 {
		wg.Add(1)

		go func() {
			defer wg.Done()

			switch appendErr := es.Append(ctx, filter, maxSeq, event); {
			case appendErr == nil:
				succeeded.Add(1)
			case assert.ErrorIs(t, appendErr, eventstore.ErrConcurrencyConflict):
				conflicted.Add(1)
			}
		}()
	}

	wg.Wait()

	// assert
	assert.Equal(t, int32(1), succeeded.Load())
	assert.Equal(t, int32(9), conflicted.Load())
}

func Test_Append_ConcurrentDecisionsOnTheLastCopy(t *testing.T) {
	// setup
	ctx := eventstore.WithStrongConsistency(t.Context())
	es := postgreswrapper.New(t).EventStore()
	bookID := uuid.NewString()
	filter := filterForBook(bookID)

	// arrange
	givenEventsWereAppended(t, ctx, es, givenEvent(t, "BookAddedToCatalog", bookID, ""))

	var borrowed atomic.Int32
	var wg sync.WaitGroup

	// act
	for range 8 {
		wg.Add(1)

		go func() {
			defer wg.Done()

			borrowerID := uuid.NewString()

			for {
				events, maxSeq, queryErr := es.Query(ctx, filter)
				if !assert.NoError(t, queryErr) {
					return
				}

				for _, event := range events {
					if event.EventType == "BookBorrowed" {
						return
					}
				}

				appendErr := es.Append(ctx, filter, maxSeq, givenEvent(t, "BookBorrowed", bookID, borrowerID))
				if errors.Is(appendErr, eventstore.ErrConcurrencyConflict) {
					continue
				}

				if assert.NoError(t, appendErr) {
					borrowed.Add(1)
				}

				return
			}
		}()
	}

	wg.Wait()

	// assert
	events, _, err := es.Query(ctx, filter)
	require.NoError(t, err)
	assert.Equal(t, int32(1), borrowed.Load())
	assert.Len(t, events, 2)
}

func Test_Snapshots_SaveLoadAndDelete(t *testing.T) {
	// setup
	ctx := t.Context()
	es := postgreswrapper.New(t).EventStore()
	filterHash := filterForBook("b-1").Hash()

	// arrange
	first, err := eventstore.BuildSnapshot("TopBorrowedBooks", filterHash, 3, []byte(`{"Ranking":[]}`))
	require.NoError(t, err)
	second, err := eventstore.BuildSnapshot("TopBorrowedBooks", filterHash, 7, []byte(`{"Ranking":[{"BookID":"b-1"}]}`))
	require.NoError(t, err)

	// act
	require.NoError(t, es.SaveSnapshot(ctx, first))
	require.NoError(t, es.SaveSnapshot(ctx, second))
	loaded, loadErr := es.LoadSnapshot(ctx, "TopBorrowedBooks", filterHash)
	deleteErr := es.DeleteSnapshot(ctx, "TopBorrowedBooks", filterHash)
	afterDelete, afterDeleteErr := es.LoadSnapshot(ctx, "TopBorrowedBooks", filterHash)

	// assert
	require.NoError(t, loadErr)
	require.NotNil(t, loaded)
	assert.Equal(t, eventstore.MaxSequenceNumberUint(7), loaded.SequenceNumber)
	assert.JSONEq(t, `{"Ranking":[{"BookID":"b-1"}]}`, string(loaded.Data))
	assert.NoError(t, deleteErr)
	assert.NoError(t, afterDeleteErr)
	assert.Nil(t, afterDelete)
}

func filterForBook(bookID string) eventstore.Filter {
	return eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf("BookAddedToCatalog", "BookCopiesAdded", "BookBorrowed", "BookReturned").
		AndAnyPredicateOf(eventstore.P("BookID", bookID)).
		Finalize()
}

func givenEvent(t *testing.T, eventType string, bookID string, borrowerID string) eventstore.StorableEvent {
	t.Helper()

	payload := `{"BookID":"` + bookID + `"`
	if borrowerID != "" {
		payload += `,"BorrowerID":"` + borrowerID + `"`
	}
	payload += `}`

	event, err := eventstore.BuildStorableEvent(eventType, time.Now(), []byte(payload), []byte(`{"MessageID":"m-1"}`))
	require.NoError(t, err)

	return event
}

func givenEventsWereAppended(t *testing.T, ctx context.Context, es *postgresengine.EventStore, events ...eventstore.StorableEvent) {
	t.Helper()

	for _, event := range events {
		_, maxSeq, err := es.Query(ctx, eventstore.BuildEventFilter().MatchingAnyEvent())
		require.NoError(t, err)
		require.NoError(t, es.Append(ctx, eventstore.BuildEventFilter().MatchingAnyEvent(), maxSeq, event))
	}
}
