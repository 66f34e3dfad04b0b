package similarbooks

import (
	"github.com/AntonStoeckl/library-lending/eventstore"
	"github.com/AntonStoeckl/library-lending/lending/core"
	"github.com/AntonStoeckl/library-lending/lending/readmodel"
)

func Project(history core.DomainEvents, query Query, maxSeq uint, _ ...SimilarBooks) SimilarBooks {
	library := readmodel.ProjectLibrary(history)
	result := SimilarBooks{
		BookID:         query.BookID,
		Books:          make([]readmodel.BookSummary, 0, MaxSuggestions),
		SequenceNumber: maxSeq,
	}

	book, ok := library.ActiveBook(query.BookID)
	if !ok {
		return result
	}

	result.Found = true
	others := library.ActiveBooks()
	picked := map[core.BookIDString]bool{book.BookID: true}

	pick := func(matches func(readmodel.Book) bool) {
		for _, other := range others {
			if len(result.Books) == MaxSuggestions {
				return
			}

			if picked[other.BookID] || !matches(other) {
				continue
			}

			picked[other.BookID] = true
			result.Books = append(result.Books, other.Summary())
		}
	}

	pick(func(other readmodel.Book) bool { return other.Category == book.Category })
	pick(func(other readmodel.Book) bool { return other.Author == book.Author })

	return result
}

func BuildEventFilter(_ Query) eventstore.Filter {
	return eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf(
			core.BookAddedToCatalogEventType,
			core.BookCopiesAddedEventType,
			core.BookDetailsUpdatedEventType,
			core.BookRemovedFromCatalogEventType,
			core.BookBorrowedEventType,
			core.BookReturnedEventType,
		).
		Finalize()
}
