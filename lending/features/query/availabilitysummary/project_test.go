package availabilitysummary_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-lending/lending/core"
	"github.com/AntonStoeckl/library-lending/lending/features/query/availabilitysummary"
	. "github.com/AntonStoeckl/library-lending/testutil/helper" //nolint:revive
)

func Test_QueryHandler_SumsPerCategory(t *testing.T) {
	// arrange
	es := GivenMemoryEventStore(t)
	GivenEventsWereAppended(t, es,
		BookAddedWithCategory("book-1", "scifi", 2),
		BookAddedWithCategory("book-2", "scifi", 3),
		BookAddedWithCategory("book-3", "classics", 1),
		BookAddedWithCategory("book-4", "classics", 4),
		core.BuildBookCopiesAdded("book-1", "Title book-1", "Author book-1", 1, FixedTime),
		core.BuildBookRemovedFromCatalog("book-4", "Title book-4", "Author book-4", FixedTime),
		BookBorrowed("record-1", "book-1", "borrower-1", FixedTime),
		BookBorrowed("record-2", "book-3", "borrower-1", FixedTime),
	)

	// act
	result, err := availabilitysummary.NewQueryHandler(es).Handle(t.Context(), availabilitysummary.BuildQuery())

	// assert
	require.NoError(t, err)
	assert.Equal(t, []availabilitysummary.CategoryAvailability{
		{Category: "classics", AvailableCopies: 0, TotalCopies: 1},
		{Category: "scifi", AvailableCopies: 5, TotalCopies: 6},
	}, result.Categories)
	assert.Equal(t, uint(8), result.SequenceNumber)
}
