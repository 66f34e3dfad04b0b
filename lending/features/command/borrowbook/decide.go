package borrowbook

import (
	"github.com/AntonStoeckl/library-lending/eventstore"
	"github.com/AntonStoeckl/library-lending/lending/core"
)

// state is what Decide needs to know, projected from the history.
type state struct {
	borrowerExists       bool
	borrowLimit          int
	borrowerOpenRecords  int
	bookExists           bool
	bookIsRemoved        bool
	inventory            core.Inventory
	borrowerHoldsTheBook bool
	openRecords          map[core.RecordIDString]core.BookIDString
}

// Decide determines whether the borrow is allowed.
//
//	GIVEN: a book with BookID and a borrower with BorrowerID
//	WHEN: BorrowBook is received
//	THEN: BookBorrowed is generated, due in 14 days
//	ERROR: BorrowerNotFound, BookNotFound, BorrowLimitExceeded, BookNotAvailable, AlreadyBorrowed (in this order)
func Decide(history core.DomainEvents, command Command) core.DecisionResult {
	s := project(history, command.BookID, command.BorrowerID)

	switch {
	case !s.borrowerExists:
		return core.ErrorDecision(core.BorrowerNotFound(command.BorrowerID))

	case !s.bookExists || s.bookIsRemoved:
		return core.ErrorDecision(core.BookNotFound(command.BookID))

	case s.borrowerOpenRecords >= s.borrowLimit:
		return core.ErrorDecision(core.BorrowLimitExceeded(command.BorrowerID, s.borrowLimit))

	case !s.inventory.IsAvailable():
		return core.ErrorDecision(core.BookNotAvailable(command.BookID))

	case s.borrowerHoldsTheBook:
		return core.ErrorDecision(core.AlreadyBorrowed(command.BookID))
	}

	return core.SuccessDecision(
		core.BuildBookBorrowed(command.RecordID, command.BookID, command.BorrowerID, command.OccurredAt),
	)
}

func project(history core.DomainEvents, bookID core.BookIDString, borrowerID core.BorrowerIDString) state { //nolint:gocognit
	s := state{openRecords: make(map[core.RecordIDString]core.BookIDString)}

	for _, event := range history {
		switch e := event.(type) {
		case core.BorrowerRegistered:
			if e.BorrowerID == borrowerID {
				s.borrowerExists = true
				s.borrowLimit = e.Tier.BorrowLimit()
			}

		case core.MembershipTierChanged:
			if e.BorrowerID == borrowerID {
				s.borrowLimit = e.Tier.BorrowLimit()
			}

		case core.BookAddedToCatalog:
			if e.BookID == bookID {
				s.bookExists = true
				s.inventory = core.NewInventory(e.TotalCopies)
			}

		case core.BookCopiesAdded:
			if e.BookID == bookID {
				s.inventory = s.inventory.AddCopies(e.Copies)
			}

		case core.BookDetailsUpdated:
			if e.BookID == bookID {
				s.inventory = s.inventory.WithTotal(e.TotalCopies)
			}

		case core.BookRemovedFromCatalog:
			if e.BookID == bookID {
				s.bookIsRemoved = true
			}

		case core.BookBorrowed:
			if e.BookID == bookID {
				s.inventory = s.inventory.DecrementAvailable()
			}

			if e.BorrowerID == borrowerID {
				s.openRecords[e.RecordID] = e.BookID
			}

		case core.BookReturned:
			if e.BookID == bookID {
				s.inventory = s.inventory.IncrementAvailable()
			}

			if e.BorrowerID == borrowerID {
				delete(s.openRecords, e.RecordID)
			}
		}
	}

	s.borrowerOpenRecords = len(s.openRecords)

	for _, openBookID := range s.openRecords {
		if openBookID == bookID {
			s.borrowerHoldsTheBook = true
		}
	}

	return s
}

// BuildEventFilter selects every catalog, borrower and lending event of the book and the borrower.
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
