package availabilitysummary

import (
	"slices"
	"strings"

	"github.com/AntonStoeckl/library-lending/eventstore"
	"github.com/AntonStoeckl/library-lending/lending/core"
	"github.com/AntonStoeckl/library-lending/lending/readmodel"
)

func Project(history core.DomainEvents, _ Query, maxSeq uint, _ ...AvailabilitySummary) AvailabilitySummary {
	library := readmodel.ProjectLibrary(history)
	byCategory := make(map[core.CategoryString]*CategoryAvailability)

	for _, book := range library.ActiveBooks() {
		entry, ok := byCategory[book.Category]
		if !ok {
			entry = &CategoryAvailability{Category: book.Category}
			byCategory[book.Category] = entry
		}

		entry.AvailableCopies += book.Inventory.AvailableCopies
		entry.TotalCopies += book.Inventory.TotalCopies
	}

	categories := make([]CategoryAvailability, 0, len(byCategory))
	for _, entry := range byCategory {
		categories = append(categories, *entry)
	}

	slices.SortFunc(categories, func(a, b CategoryAvailability) int {
		return strings.Compare(a.Category, b.Category)
	})

	return AvailabilitySummary{Categories: categories, SequenceNumber: maxSeq}
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
