package borrowrecord

import (
	"github.com/AntonStoeckl/library-lending/eventstore"
	"github.com/AntonStoeckl/library-lending/lending/core"
	"github.com/AntonStoeckl/library-lending/lending/readmodel"
)

func Project(history core.DomainEvents, query Query, maxSeq uint, _ ...BorrowRecord) BorrowRecord {
	library := readmodel.ProjectLibrary(history)
	result := BorrowRecord{SequenceNumber: maxSeq}

	var (
		record core.BorrowRecord
		found  bool
	)

	if query.RecordID != "" {
		record, found = library.Records[query.RecordID]
		found = found && record.BookID == query.BookID && record.BorrowerID == query.BorrowerID
	} else {
		record, found = library.LatestRecordOf(query.BookID, query.BorrowerID)
	}

	if found {
		result.Record = library.View(record, query.AsOf)
		result.Found = true
	}

	return result
}

func BuildEventFilter(query Query) eventstore.Filter {
	return eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf(
			core.BookBorrowedEventType,
			core.BookReturnedEventType,
		).
		AndAllPredicatesOf(
			eventstore.P("BookID", query.BookID),
			eventstore.P("BorrowerID", query.BorrowerID),
		).
		OrMatching().
		AnyEventTypeOf(
			core.BookAddedToCatalogEventType,
			core.BookDetailsUpdatedEventType,
		).
		AndAnyPredicateOf(eventstore.P("BookID", query.BookID)).
		OrMatching().
		AnyEventTypeOf(core.BorrowerRegisteredEventType).
		AndAnyPredicateOf(eventstore.P("BorrowerID", query.BorrowerID)).
		Finalize()
}
