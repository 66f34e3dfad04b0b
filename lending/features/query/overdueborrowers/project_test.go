package overdueborrowers_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-lending/lending/core"
	"github.com/AntonStoeckl/library-lending/lending/features/query/overdueborrowers"
	. "github.com/AntonStoeckl/library-lending/testutil/helper" //nolint:revive
)

func Test_QueryHandler_GroupsOverdueRecordsPerBorrower(t *testing.T) {
	// arrange
	es := GivenMemoryEventStore(t)
	GivenEventsWereAppended(t, es,
		BorrowerRegistered("borrower-1", core.TierPremium),
		BorrowerRegistered("borrower-2", core.TierBasic),
		BorrowerRegistered("borrower-3", core.TierBasic),
		BookBorrowed("record-1", "book-1", "borrower-1", FixedTime.AddDate(0, 0, 2)),
		BookBorrowed("record-2", "book-2", "borrower-1", FixedTime.AddDate(0, 0, 1)),
		BookBorrowed("record-3", "book-3", "borrower-2", FixedTime),
		BookBorrowed("record-4", "book-4", "borrower-3", FixedTime),
		BookReturned("record-4", "book-4", "borrower-3", "0", FixedTime.AddDate(0, 0, 3)),
	)
	handler := overdueborrowers.NewQueryHandler(es)

	// act
	result, err := handler.Handle(t.Context(), overdueborrowers.BuildQuery(FixedTime.AddDate(0, 0, 30)))

	// assert
	require.NoError(t, err)
	require.Len(t, result.Borrowers, 2)

	assert.Equal(t, "borrower-2", result.Borrowers[0].BorrowerID)
	assert.Equal(t, 1, result.Borrowers[0].OverdueCount)

	assert.Equal(t, "borrower-1", result.Borrowers[1].BorrowerID)
	assert.Equal(t, "Name borrower-1", result.Borrowers[1].Name)
	assert.Equal(t, "borrower-1@example.com", result.Borrowers[1].Email)
	assert.Equal(t, 2, result.Borrowers[1].OverdueCount)
	assert.Equal(t, core.DueDateFor(FixedTime.AddDate(0, 0, 1)), result.Borrowers[1].OldestDueDate)
}
