package activeborrowrecords_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-lending/lending/core"
	"github.com/AntonStoeckl/library-lending/lending/features/query/activeborrowrecords"
	. "github.com/AntonStoeckl/library-lending/testutil/helper" //nolint:revive
)

func Test_QueryHandler_ListsOnlyOpenRecordsInBorrowOrder(t *testing.T) {
	// arrange
	es := GivenMemoryEventStore(t)
	GivenEventsWereAppended(t, es,
		BookAdded("book-1", 3),
		BookAdded("book-2", 1),
		BorrowerRegistered("borrower-1", core.TierPremium),
		BookBorrowed("record-1", "book-1", "borrower-1", FixedTime),
		BookBorrowed("record-2", "book-2", "borrower-1", FixedTime.AddDate(0, 0, 1)),
		BookBorrowed("record-3", "book-1", "borrower-1", FixedTime.AddDate(0, 0, 2)),
		BookReturned("record-2", "book-2", "borrower-1", "0", FixedTime.AddDate(0, 0, 3)),
	)
	handler := activeborrowrecords.NewQueryHandler(es)

	// act
	result, err := handler.Handle(t.Context(), activeborrowrecords.BuildQuery(FixedTime.AddDate(0, 0, 15)))

	// assert
	require.NoError(t, err)
	require.Equal(t, 2, result.Count)
	assert.Equal(t, "record-1", result.Records[0].RecordID)
	assert.True(t, result.Records[0].Overdue)
	assert.Equal(t, "record-3", result.Records[1].RecordID)
	assert.False(t, result.Records[1].Overdue)
	assert.Equal(t, "Name borrower-1", result.Records[1].BorrowerName)
	assert.Equal(t, uint(7), result.SequenceNumber)
}

func Test_Project_EmptyHistoryHasNoRecords(t *testing.T) {
	// act
	result := activeborrowrecords.Project(core.DomainEvents{}, activeborrowrecords.BuildQuery(FixedTime), 0)

	// assert
	assert.Empty(t, result.Records)
	assert.Zero(t, result.Count)
}
