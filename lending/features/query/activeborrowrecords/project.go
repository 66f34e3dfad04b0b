package activeborrowrecords

import (
	"github.com/AntonStoeckl/library-lending/eventstore"
	"github.com/AntonStoeckl/library-lending/lending/core"
	"github.com/AntonStoeckl/library-lending/lending/readmodel"
)

func Project(history core.DomainEvents, query Query, maxSeq uint, _ ...ActiveBorrowRecords) ActiveBorrowRecords {
	library := readmodel.ProjectLibrary(history)
	records := library.Views(library.OpenRecords(), query.AsOf)

	return ActiveBorrowRecords{
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
