package overduerecords

import (
	"slices"

	"github.com/AntonStoeckl/library-lending/eventstore"
	"github.com/AntonStoeckl/library-lending/lending/core"
	"github.com/AntonStoeckl/library-lending/lending/readmodel"
)

// Project orders by due date, the longest overdue first.
func Project(history core.DomainEvents, query Query, maxSeq uint, _ ...OverdueRecords) OverdueRecords {
	library := readmodel.ProjectLibrary(history)
	records := library.Views(library.OverdueRecords(query.AsOf), query.AsOf)

	slices.SortStableFunc(records, func(a, b readmodel.BorrowRecordView) int {
		return a.DueDate.Compare(b.DueDate)
	})

	return OverdueRecords{
		Records:        records,
		Count:          len(records),
		SequenceNumber: maxSeq,
	}
}

func BuildEventFilter(_ Query) eventstore.Filter {
	return eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf(
			core.BookAddedToCatalogEventType,
			core.BookDetailsUpdatedEventType,
			core.BorrowerRegisteredEventType,
			core.BookBorrowedEventType,
			core.BookReturnedEventType,
		).
		Finalize()
}
