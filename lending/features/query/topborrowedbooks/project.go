package topborrowedbooks

import (
	"slices"
	"strings"

	"github.com/AntonStoeckl/library-lending/eventstore"
	"github.com/AntonStoeckl/library-lending/lending/core"
)

// Project continues from base if given, history then only holds the events after base.SequenceNumber.
func Project(history core.DomainEvents, _ Query, maxSeq uint, base ...TopBorrowedBooks) TopBorrowedBooks {
	books := make(map[core.BookIDString]*BorrowedBook)

	if len(base) > 0 {
		for _, book := range base[0].Ranking {
			books[book.BookID] = &book
		}
	}

	bookFor := func(bookID core.BookIDString) *BorrowedBook {
		book, ok := books[bookID]
		if !ok {
			book = &BorrowedBook{BookID: bookID}
			books[bookID] = book
		}

		return book
	}

	for _, event := range history {
		switch e := event.(type) {
		case core.BookAddedToCatalog:
			book := bookFor(e.BookID)
			book.Title, book.Author, book.Removed = e.Title, e.Author, false

		case core.BookDetailsUpdated:
			book := bookFor(e.BookID)
			book.Title, book.Author = e.Title, e.Author

		case core.BookRemovedFromCatalog:
			bookFor(e.BookID).Removed = true

		case core.BookBorrowed:
			bookFor(e.BookID).TimesBorrowed++
		}
	}

	ranking := make([]BorrowedBook, 0, len(books))
	for _, book := range books {
		ranking = append(ranking, *book)
	}

	slices.SortFunc(ranking, func(a, b BorrowedBook) int {
		if a.TimesBorrowed != b.TimesBorrowed {
			return b.TimesBorrowed - a.TimesBorrowed
		}

		return strings.Compare(a.BookID, b.BookID)
	})

	return TopBorrowedBooks{Ranking: ranking, SequenceNumber: maxSeq}
}

func BuildEventFilter(_ Query) eventstore.Filter {
	return eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf(
			core.BookAddedToCatalogEventType,
			core.BookDetailsUpdatedEventType,
			core.BookRemovedFromCatalogEventType,
			core.BookBorrowedEventType,
		).
		Finalize()
}
