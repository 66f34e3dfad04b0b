package overduerecords_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-lending/lending/core"
	"github.com/AntonStoeckl/library-lending/lending/features/query/overduerecords"
	. "github.com/AntonStoeckl/library-lending/testutil/helper" //nolint:revive
)

func Test_Project_OverdueMeansOpenAndDueDateBeforeToday(t *testing.T) {
	// arrange
	history := core.DomainEvents{
		BookAdded("book-1", 5),
		BookBorrowed("record-late", "book-1", "borrower-1", FixedTime.AddDate(0, 0, 1)),
		BookBorrowed("record-later", "book-1", "borrower-2", FixedTime),
		BookBorrowed("record-due-today", "book-1", "borrower-3", FixedTime.AddDate(0, 0, 6)),
		BookBorrowed("record-returned", "book-1", "borrower-4", FixedTime),
		BookReturned("record-returned", "book-1", "borrower-4", "25", FixedTime.AddDate(0, 0, 19)),
	}
	asOf := FixedTime.AddDate(0, 0, 20)

	// act
	result := overduerecords.Project(history, overduerecords.BuildQuery(asOf), 6)

	// assert
	require.Equal(t, 2, result.Count)
	assert.Equal(t, "record-later", result.Records[0].RecordID)
	assert.Equal(t, "record-late", result.Records[1].RecordID)
	assert.Equal(t, "Title book-1", result.Records[0].BookTitle)
	assert.Equal(t, uint(6), result.SequenceNumber)
}

func Test_QueryHandler_NothingIsOverdueBeforeTheDueDate(t *testing.T) {
	// arrange
	es := GivenMemoryEventStore(t)
	GivenEventsWereAppended(t, es,
		BookAdded("book-1", 1),
		BookBorrowed("record-1", "book-1", "borrower-1", FixedTime),
	)
	handler := overduerecords.NewQueryHandler(es)

	// act
	result, err := handler.Handle(t.Context(), overduerecords.BuildQuery(FixedTime.AddDate(0, 0, core.LoanPeriodDays)))

	// assert
	require.NoError(t, err)
	assert.Empty(t, result.Records)
}
