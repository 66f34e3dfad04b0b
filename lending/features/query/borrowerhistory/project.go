package borrowerhistory

import (
	"slices"

	"github.com/AntonStoeckl/library-lending/eventstore"
	"github.com/AntonStoeckl/library-lending/lending/core"
	"github.com/AntonStoeckl/library-lending/lending/readmodel"
)

func Project(history core.DomainEvents, query Query, maxSeq uint, _ ...BorrowerHistory) BorrowerHistory {
	library := readmodel.ProjectLibrary(history)
	result := BorrowerHistory{
		BorrowerID:     query.BorrowerID,
		Records:        make([]readmodel.BorrowRecordView, 0),
		SequenceNumber: maxSeq,
	}

	if borrower, ok := library.Borrowers[query.BorrowerID]; ok {
		result.BorrowerName = borrower.Name
		result.Found = true
	}

	records := library.RecordsInOrder()
	slices.Reverse(records)

	for _, record := range records {
		if record.BorrowerID == query.BorrowerID {
			result.Records = append(result.Records, library.View(record, query.AsOf))
		}
	}

	return result
}

func BuildEventFilter(query Query) eventstore.Filter {
	return eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf(
			core.BorrowerRegisteredEventType,
			core.BookBorrowedEventType,
			core.BookReturnedEventType,
		).
		AndAnyPredicateOf(eventstore.P("BorrowerID", query.BorrowerID)).
		OrMatching().
		AnyEventTypeOf(
			core.BookAddedToCatalogEventType,
			core.BookDetailsUpdatedEventType,
		).
		Finalize()
}
