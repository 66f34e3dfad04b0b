package returnbook

import (
	"github.com/AntonStoeckl/library-lending/eventstore"
	"github.com/AntonStoeckl/library-lending/lending/core"
)

type state struct {
	openRecord   *core.BorrowRecord
	bookCategory core.CategoryString
	finePolicies core.FinePolicies
}

// Decide determines whether the return is allowed and computes the fine.
//
//	GIVEN: an open borrow record of BookID and BorrowerID
//	WHEN: ReturnBook is received
//	THEN: BookReturned is generated with the fine for the days past the due date
//	ERROR: NoActiveBorrowRecord if the pair has no open record
func Decide(history core.DomainEvents, command Command) core.DecisionResult {
	s := project(history, command.BookID, command.BorrowerID)

	if s.openRecord == nil {
		return core.ErrorDecision(core.NoActiveBorrowRecord(command.BookID, command.BorrowerID))
	}

	fine := core.ComputeFine(s.finePolicies.RateFor(s.bookCategory), s.openRecord.DueDate, core.ToDay(command.OccurredAt))

	return core.SuccessDecision(
		core.BuildBookReturned(s.openRecord.RecordID, command.BookID, command.BorrowerID, fine, command.OccurredAt),
	)
}

func project(history core.DomainEvents, bookID core.BookIDString, borrowerID core.BorrowerIDString) state {
	s := state{finePolicies: make(core.FinePolicies)}

	for _, event := range history {
		switch e := event.(type) {
		case core.BookAddedToCatalog:
			if e.BookID == bookID {
				s.bookCategory = e.Category
			}

		case core.BookDetailsUpdated:
			if e.BookID == bookID {
				s.bookCategory = e.Category
			}

		case core.FinePolicySet:
			s.finePolicies.Apply(e)

		case core.BookBorrowed:
			if e.BookID == bookID && e.BorrowerID == borrowerID {
				record := core.BorrowRecordFrom(e)
				s.openRecord = &record
			}

		case core.BookReturned:
			if s.openRecord != nil && s.openRecord.RecordID == e.RecordID {
				s.openRecord = nil
			}
		}
	}

	return s
}

// BuildEventFilter is the same boundary as borrowing, so borrows and returns of a pair serialize.
func BuildEventFilter(bookID core.BookIDString, borrowerID core.BorrowerIDString) eventstore.Filter {
	return eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf(
			core.BookAddedToCatalogEventType,
			core.BookCopiesAddedEventType,
			core.BookDetailsUpdatedEventType,
			core.BookRemovedFromCatalogEventType,
			core.BorrowerRegisteredEventType,
			core.MembershipTierChangedEventType,
			core.BookBorrowedEventType,
			core.BookReturnedEventType,
		).
		AndAnyPredicateOf(
			eventstore.P("BookID", bookID),
			eventstore.P("BorrowerID", borrowerID),
		).
		OrMatching().
		AnyEventTypeOf(
			core.FinePolicySetEventType,
		).
		Finalize()
}
