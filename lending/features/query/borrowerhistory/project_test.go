package borrowerhistory_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-lending/lending/core"
	"github.com/AntonStoeckl/library-lending/lending/features/query/borrowerhistory"
	. "github.com/AntonStoeckl/library-lending/testutil/helper" //nolint:revive
)

func Test_QueryHandler_ListsRecordsOfTheBorrowerNewestFirst(t *testing.T) {
	// arrange
	es := GivenMemoryEventStore(t)
	GivenEventsWereAppended(t, es,
		BookAdded("book-1", 2),
		BookAdded("book-2", 2),
		BorrowerRegistered("borrower-1", core.TierBasic),
		BorrowerRegistered("borrower-2", core.TierBasic),
		BookBorrowed("record-1", "book-1", "borrower-1", FixedTime),
		BookBorrowed("record-2", "book-1", "borrower-2", FixedTime),
		BookReturned("record-1", "book-1", "borrower-1", "10", FixedTime.AddDate(0, 0, 16)),
		BookBorrowed("record-3", "book-2", "borrower-1", FixedTime.AddDate(0, 0, 17)),
	)
	handler := borrowerhistory.NewQueryHandler(es)

	// act
	result, err := handler.Handle(t.Context(), borrowerhistory.BuildQuery("borrower-1", FixedTime.AddDate(0, 0, 18)))

	// assert
	require.NoError(t, err)
	assert.True(t, result.Found)
	assert.Equal(t, "Name borrower-1", result.BorrowerName)
	require.Len(t, result.Records, 2)

	assert.Equal(t, "record-3", result.Records[0].RecordID)
	assert.True(t, result.Records[0].Active)
	assert.Equal(t, "Title book-2", result.Records[0].BookTitle)

	assert.Equal(t, "record-1", result.Records[1].RecordID)
	assert.False(t, result.Records[1].Active)
	assert.Equal(t, "10", result.Records[1].FineAmount.String())
}

func Test_Project_UnknownBorrowerHasNoRecords(t *testing.T) {
	// act
	result := borrowerhistory.Project(core.DomainEvents{}, borrowerhistory.BuildQuery("nobody", FixedTime), 0)

	// assert
	assert.False(t, result.Found)
	assert.Empty(t, result.Records)
}
