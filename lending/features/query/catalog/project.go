package catalog

import (
	"cmp"
	"slices"
	"strings"

	"github.com/AntonStoeckl/library-lending/eventstore"
	"github.com/AntonStoeckl/library-lending/lending/core"
	"github.com/AntonStoeckl/library-lending/lending/readmodel"
)

func Project(history core.DomainEvents, query Query, maxSeq uint, _ ...Catalog) Catalog {
	library := readmodel.ProjectLibrary(history)
	matching := make([]readmodel.BookSummary, 0)

	for _, book := range library.ActiveBooks() {
		if query.Category != "" && book.Category != query.Category {
			continue
		}

		if query.Available != nil && book.IsAvailable() != *query.Available {
			continue
		}

		matching = append(matching, book.Summary())
	}

	slices.SortStableFunc(matching, compareBy(query.SortBy))

	result := Catalog{
		Books:          make([]readmodel.BookSummary, 0, query.Size),
		Total:          len(matching),
		Page:           query.Page,
		Size:           query.Size,
		SequenceNumber: maxSeq,
	}

	from := (query.Page - 1) * query.Size
	if from >= len(matching) {
		return result
	}

	result.Books = append(result.Books, matching[from:min(from+query.Size, len(matching))]...)

	return result
}

func compareBy(sortBy string) func(a, b readmodel.BookSummary) int {
	switch sortBy {
	case SortByAuthor:
		return func(a, b readmodel.BookSummary) int { return strings.Compare(a.Author, b.Author) }
	case SortByCategory:
		return func(a, b readmodel.BookSummary) int { return strings.Compare(a.Category, b.Category) }
	case SortByAvailableCopies:
		// most available first
		return func(a, b readmodel.BookSummary) int { return cmp.Compare(b.AvailableCopies, a.AvailableCopies) }
	default:
		return func(a, b readmodel.BookSummary) int { return strings.Compare(a.Title, b.Title) }
	}
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
