package helper

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-lending/eventstore"
	"github.com/AntonStoeckl/library-lending/eventstore/memoryengine"
	"github.com/AntonStoeckl/library-lending/lending/core"
	"github.com/AntonStoeckl/library-lending/lending/shell"
)

// FixedTime is the default "now" of handler tests.
var FixedTime = time.Date(2026, time.March, 2, 9, 30, 0, 0, time.UTC)

// GivenUniqueID returns a fresh v7 UUID string.
func GivenUniqueID(t testing.TB) string {
	t.Helper()

	id, err := uuid.NewV7()
	require.NoError(t, err, "error in arranging test data")

	return id.String()
}

func GivenMemoryEventStore(t testing.TB, options ...memoryengine.Option) *memoryengine.EventStore {
	t.Helper()

	es, err := memoryengine.NewEventStore(options...)
	require.NoError(t, err, "error in arranging test data")

	return es
}

// GivenEventsWereAppended appends events unconditionally, one by one.
func GivenEventsWereAppended(t testing.TB, es shell.EventStore, events ...core.DomainEvent) {
	t.Helper()

	anyEvent := eventstore.BuildEventFilter().MatchingAnyEvent()

	for _, event := range events {
		_, maxSequenceNumber, err := es.Query(t.Context(), anyEvent)
		require.NoError(t, err, "error in arranging test data")

		storableEvent, err := shell.StorableEventFrom(event, shell.NewCommandMetadata())
		require.NoError(t, err, "error in arranging test data")

		require.NoError(t, es.Append(t.Context(), anyEvent, maxSequenceNumber, storableEvent), "error in arranging test data")
	}
}

// EventsOf returns all events of the given types in append order.
func EventsOf(t testing.TB, es shell.QueriesEvents, eventType string, eventTypes ...string) core.DomainEvents {
	t.Helper()

	filter := eventstore.BuildEventFilter().Matching().AnyEventTypeOf(eventType, eventTypes...).Finalize()

	storableEvents, _, err := es.Query(t.Context(), filter)
	require.NoError(t, err)

	events, err := shell.DomainEventsFrom(storableEvents)
	require.NoError(t, err)

	return events
}

func BookAdded(bookID string, totalCopies int) core.BookAddedToCatalog {
	return core.BuildBookAddedToCatalog(bookID, "Title "+bookID, "Author "+bookID, "fiction", totalCopies, FixedTime)
}

func BookAddedWithCategory(bookID string, category string, totalCopies int) core.BookAddedToCatalog {
	return core.BuildBookAddedToCatalog(bookID, "Title "+bookID, "Author "+bookID, category, totalCopies, FixedTime)
}

func BorrowerRegistered(borrowerID string, tier core.MembershipTier) core.BorrowerRegistered {
	return core.BuildBorrowerRegistered(borrowerID, "Name "+borrowerID, borrowerID+"@example.com", tier, FixedTime)
}

func BookBorrowed(recordID string, bookID string, borrowerID string, borrowedAt time.Time) core.BookBorrowed {
	return core.BuildBookBorrowed(recordID, bookID, borrowerID, borrowedAt)
}

func BookReturned(recordID string, bookID string, borrowerID string, fine string, returnedAt time.Time) core.BookReturned {
	return core.BuildBookReturned(recordID, bookID, borrowerID, decimal.RequireFromString(fine), returnedAt)
}
