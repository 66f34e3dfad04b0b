package topborrowedbooks_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-lending/lending/core"
	"github.com/AntonStoeckl/library-lending/lending/features/query/topborrowedbooks"
	. "github.com/AntonStoeckl/library-lending/testutil/helper" //nolint:revive
)

func rankedIDs(books []topborrowedbooks.BorrowedBook) []string {
	ids := make([]string, 0, len(books))
	for _, book := range books {
		ids = append(ids, book.BookID)
	}

	return ids
}

func Test_Project_RanksByTimesBorrowed(t *testing.T) {
	// arrange
	history := core.DomainEvents{
		BookAdded("book-1", 5),
		BookAdded("book-2", 5),
		BookAdded("book-3", 5),
		BookAdded("book-4", 5),
		BookBorrowed("record-1", "book-2", "borrower-1", FixedTime),
		BookBorrowed("record-2", "book-2", "borrower-2", FixedTime),
		BookBorrowed("record-3", "book-1", "borrower-1", FixedTime),
		BookBorrowed("record-4", "book-3", "borrower-1", FixedTime),
		BookBorrowed("record-5", "book-3", "borrower-2", FixedTime),
		BookBorrowed("record-6", "book-3", "borrower-3", FixedTime),
		core.BuildBookRemovedFromCatalog("book-3", "Title book-3", "Author book-3", FixedTime),
	}

	// act
	result := topborrowedbooks.Project(history, topborrowedbooks.BuildQuery(0), 11)

	// assert
	assert.Equal(t, []string{"book-2", "book-1"}, rankedIDs(result.Top(topborrowedbooks.DefaultLimit)))
	assert.Equal(t, []string{"book-2"}, rankedIDs(result.Top(1)))
	assert.Equal(t, "Title book-2", result.Ranking[1].Title)
	assert.Equal(t, 2, result.Ranking[1].TimesBorrowed)
}

func Test_BuildQuery_Limits(t *testing.T) {
	assert.Equal(t, topborrowedbooks.DefaultLimit, topborrowedbooks.BuildQuery(0).Limit)
	assert.Equal(t, 3, topborrowedbooks.BuildQuery(3).Limit)
	assert.Equal(t, topborrowedbooks.MaxLimit, topborrowedbooks.BuildQuery(1000).Limit)
}

func Test_SnapshotQueryHandler_ContinuesFromTheSnapshot(t *testing.T) {
	// arrange
	es := GivenMemoryEventStore(t)
	GivenEventsWereAppended(t, es,
		BookAdded("book-1", 5),
		BookAdded("book-2", 5),
		BookBorrowed("record-1", "book-1", "borrower-1", FixedTime),
	)
	handler, err := topborrowedbooks.NewSnapshotQueryHandler(es)
	require.NoError(t, err)
	query := topborrowedbooks.BuildQuery(5)

	// act
	first, firstErr := handler.Handle(t.Context(), query)

	GivenEventsWereAppended(t, es,
		BookBorrowed("record-2", "book-2", "borrower-1", FixedTime),
		BookBorrowed("record-3", "book-2", "borrower-2", FixedTime),
	)

	second, secondErr := handler.Handle(t.Context(), query)
	direct, directErr := topborrowedbooks.NewQueryHandler(es).Handle(t.Context(), query)

	// assert
	require.NoError(t, firstErr)
	require.NoError(t, secondErr)
	require.NoError(t, directErr)

	assert.Equal(t, []string{"book-1"}, rankedIDs(first.Top(query.Limit)))
	assert.Equal(t, []string{"book-2", "book-1"}, rankedIDs(second.Top(query.Limit)))
	assert.Equal(t, uint(5), second.SequenceNumber)
	assert.Equal(t, direct, second)
}
