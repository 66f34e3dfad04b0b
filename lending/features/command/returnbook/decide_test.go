package returnbook_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-lending/lending/core"
	"github.com/AntonStoeckl/library-lending/lending/features/command/returnbook"
	. "github.com/AntonStoeckl/library-lending/testutil/helper" //nolint:revive
)

func Test_Decide_Fines(t *testing.T) {
	testCases := []struct {
		description  string
		policies     core.DomainEvents
		daysBorrowed int
		expectedFine string
	}{
		{description: "returned on the due date", daysBorrowed: 14, expectedFine: "0"},
		{description: "returned early", daysBorrowed: 3, expectedFine: "0"},
		{description: "one day late with the default rate", daysBorrowed: 15, expectedFine: "5"},
		{description: "six days late with the default rate", daysBorrowed: 20, expectedFine: "30"},
		{
			description:  "category policy applies",
			policies:     core.DomainEvents{core.BuildFinePolicySet("fiction", decimal.RequireFromString("1.25"), FixedTime)},
			daysBorrowed: 18,
			expectedFine: "5",
		},
		{
			description:  "policy of another category is ignored",
			policies:     core.DomainEvents{core.BuildFinePolicySet("science", decimal.RequireFromString("1.25"), FixedTime)},
			daysBorrowed: 16,
			expectedFine: "10",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			// arrange
			history := append(core.DomainEvents{
				BookAdded("book-1", 1),
				BorrowerRegistered("borrower-1", core.TierBasic),
				BookBorrowed("record-1", "book-1", "borrower-1", FixedTime),
			}, tc.policies...)
			command := returnbook.BuildCommand("book-1", "borrower-1", FixedTime.AddDate(0, 0, tc.daysBorrowed))

			// act
			result := returnbook.Decide(history, command)

			// assert
			require.True(t, result.HasEventToAppend())
			event, ok := result.Event.(core.BookReturned)
			require.True(t, ok)
			assert.Equal(t, "record-1", event.RecordID)
			assert.True(t, decimal.RequireFromString(tc.expectedFine).Equal(event.FineAmount), "fine was %s", event.FineAmount)
		})
	}
}

func Test_Decide_NoActiveBorrowRecord(t *testing.T) {
	testCases := []struct {
		description string
		history     core.DomainEvents
	}{
		{description: "never borrowed", history: core.DomainEvents{BookAdded("book-1", 1)}},
		{
			description: "already returned",
			history: core.DomainEvents{
				BookAdded("book-1", 1),
				BookBorrowed("record-1", "book-1", "borrower-1", FixedTime),
				BookReturned("record-1", "book-1", "borrower-1", "0", FixedTime),
			},
		},
		{
			description: "borrowed by someone else",
			history: core.DomainEvents{
				BookAdded("book-1", 1),
				BookBorrowed("record-1", "book-1", "borrower-2", FixedTime),
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			// act
			result := returnbook.Decide(tc.history, returnbook.BuildCommand("book-1", "borrower-1", FixedTime))

			// assert
			assert.False(t, result.HasEventToAppend())
			assert.ErrorIs(t, result.HasError(), core.ErrInvalidState)
		})
	}
}
