package readmodel_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-lending/lending/core"
	"github.com/AntonStoeckl/library-lending/lending/readmodel"
)

func Test_ProjectLibrary_BorrowAndReturnKeepInventoryInRange(t *testing.T) {
	// arrange
	borrowedAt := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	returnedAt := borrowedAt.AddDate(0, 0, 20)

	history := core.DomainEvents{
		core.BuildBookAddedToCatalog("book-1", "Dune", "Frank Herbert", "fiction", 1, borrowedAt),
		core.BuildBorrowerRegistered("borrower-1", "Ada", "ada@example.com", core.TierBasic, borrowedAt),
		core.BuildBookBorrowed("record-1", "book-1", "borrower-1", borrowedAt),
		core.BuildBookReturned("record-1", "book-1", "borrower-1", decimal.RequireFromString("30"), returnedAt),
		core.BuildBookReturned("record-1", "book-1", "borrower-1", decimal.RequireFromString("30"), returnedAt),
	}

	// act
	library := readmodel.ProjectLibrary(history)

	// assert
	book, ok := library.ActiveBook("book-1")
	require.True(t, ok)
	assert.Equal(t, core.Inventory{TotalCopies: 1, AvailableCopies: 1}, book.Inventory)
	assert.Equal(t, 1, book.TimesBorrowed)
	assert.Empty(t, library.OpenRecords())

	view := library.View(library.Records["record-1"], returnedAt)
	assert.Equal(t, "Dune", view.BookTitle)
	assert.Equal(t, "Ada", view.BorrowerName)
	assert.False(t, view.Active)
	assert.False(t, view.Overdue)
	require.NotNil(t, view.ReturnDate)
	assert.Equal(t, core.ToDay(returnedAt), *view.ReturnDate)
	assert.True(t, decimal.RequireFromString("30").Equal(view.FineAmount))
}

func Test_ProjectLibrary_OverdueIsDerivedFromToday(t *testing.T) {
	// arrange
	borrowedAt := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	history := core.DomainEvents{
		core.BuildBookAddedToCatalog("book-1", "Dune", "Frank Herbert", "fiction", 2, borrowedAt),
		core.BuildBookBorrowed("record-1", "book-1", "borrower-1", borrowedAt),
	}

	// act
	library := readmodel.ProjectLibrary(history)

	// assert
	assert.Empty(t, library.OverdueRecords(borrowedAt.AddDate(0, 0, 14)), "the due date itself is not overdue")
	assert.Len(t, library.OverdueRecords(borrowedAt.AddDate(0, 0, 15)), 1)
}

func Test_ProjectLibrary_RemovedBooksAreNotActive(t *testing.T) {
	// arrange
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	history := core.DomainEvents{
		core.BuildBookAddedToCatalog("book-1", "Dune", "Frank Herbert", "fiction", 2, now),
		core.BuildBookAddedToCatalog("book-2", "Emma", "Jane Austen", "classics", 1, now),
		core.BuildBookRemovedFromCatalog("book-1", "Dune", "Frank Herbert", now),
	}

	// act
	library := readmodel.ProjectLibrary(history)

	// assert
	_, ok := library.ActiveBook("book-1")
	assert.False(t, ok)
	require.Len(t, library.ActiveBooks(), 1)
	assert.Equal(t, "book-2", library.ActiveBooks()[0].BookID)
}

func Test_ProjectLibrary_DetailsUpdateShiftsAvailableCopies(t *testing.T) {
	// arrange
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	history := core.DomainEvents{
		core.BuildBookAddedToCatalog("book-1", "Dune", "Frank Herbert", "fiction", 3, now),
		core.BuildBookBorrowed("record-1", "book-1", "borrower-1", now),
		core.BuildBookCopiesAdded("book-1", "Dune", "Frank Herbert", 2, now),
		core.BuildBookDetailsUpdated("book-1", "Dune", "Frank Herbert", "sci-fi", 2, now),
	}

	// act
	library := readmodel.ProjectLibrary(history)

	// assert
	book, ok := library.ActiveBook("book-1")
	require.True(t, ok)
	assert.Equal(t, "sci-fi", book.Category)
	assert.Equal(t, core.Inventory{TotalCopies: 2, AvailableCopies: 1}, book.Inventory)
}

func Test_LatestRecordOf_ReturnsNewestRecordOfPair(t *testing.T) {
	// arrange
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	history := core.DomainEvents{
		core.BuildBookBorrowed("record-1", "book-1", "borrower-1", now),
		core.BuildBookReturned("record-1", "book-1", "borrower-1", decimal.Zero, now),
		core.BuildBookBorrowed("record-2", "book-1", "borrower-1", now),
		core.BuildBookBorrowed("record-3", "book-2", "borrower-1", now),
	}

	// act
	record, ok := readmodel.ProjectLibrary(history).LatestRecordOf("book-1", "borrower-1")

	// assert
	require.True(t, ok)
	assert.Equal(t, "record-2", record.RecordID)
}
