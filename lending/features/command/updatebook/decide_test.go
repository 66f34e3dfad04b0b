package updatebook_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-lending/lending/core"
	"github.com/AntonStoeckl/library-lending/lending/features/command/updatebook"
	. "github.com/AntonStoeckl/library-lending/testutil/helper" //nolint:revive
)

func Test_Decide_BookDetailsUpdated(t *testing.T) {
	// arrange
	history := core.DomainEvents{BookAdded("book-1", 3)}
	command := updatebook.BuildCommand("book-1", "New Title", "Author book-1", "fiction", 5, FixedTime)

	// act
	result := updatebook.Decide(history, command)

	// assert
	require.True(t, result.HasEventToAppend())
	assert.Equal(t, core.BuildBookDetailsUpdated("book-1", "New Title", "Author book-1", "fiction", 5, FixedTime), result.Event)
}

func Test_Decide_TotalBelowBorrowedCopies(t *testing.T) {
	// arrange
	history := core.DomainEvents{
		BookAdded("book-1", 3),
		BookBorrowed("record-1", "book-1", "borrower-1", FixedTime),
		BookBorrowed("record-2", "book-1", "borrower-2", FixedTime),
	}

	// act
	rejected := updatebook.Decide(history, updatebook.BuildCommand("book-1", "Title book-1", "Author book-1", "fiction", 1, FixedTime))
	accepted := updatebook.Decide(history, updatebook.BuildCommand("book-1", "Title book-1", "Author book-1", "fiction", 2, FixedTime))

	// assert
	assert.ErrorIs(t, rejected.HasError(), core.ErrInvalidState)
	assert.True(t, accepted.HasEventToAppend())
}

func Test_Decide_UnchangedDetailsAreIdempotent(t *testing.T) {
	// arrange
	history := core.DomainEvents{BookAdded("book-1", 3)}

	// act
	result := updatebook.Decide(history, updatebook.BuildCommand("book-1", "Title book-1", "Author book-1", "fiction", 3, FixedTime))

	// assert
	assert.True(t, result.IsIdempotent())
}

func Test_Decide_RemovedBookIsNotFound(t *testing.T) {
	// arrange
	history := core.DomainEvents{
		BookAdded("book-1", 3),
		core.BuildBookRemovedFromCatalog("book-1", "Title book-1", "Author book-1", FixedTime),
	}

	// act
	result := updatebook.Decide(history, updatebook.BuildCommand("book-1", "Title", "Author", "fiction", 3, FixedTime))

	// assert
	assert.ErrorIs(t, result.HasError(), core.ErrNotFound)
}

func Test_Decide_NegativeTotalIsInvalid(t *testing.T) {
	result := updatebook.Decide(core.DomainEvents{BookAdded("book-1", 3)}, updatebook.BuildCommand("book-1", "T", "A", "c", -1, FixedTime))

	assert.ErrorIs(t, result.HasError(), core.ErrInvalidInput)
}
