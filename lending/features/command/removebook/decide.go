package removebook

import (
	"github.com/AntonStoeckl/library-lending/eventstore"
	"github.com/AntonStoeckl/library-lending/lending/core"
)

type state struct {
	bookExists  bool
	bookRemoved bool
	title       string
	author      string
	openRecords map[core.RecordIDString]bool
}

// Decide determines whether the book can be removed.
//
//	GIVEN: a book with BookID
//	WHEN: RemoveBook is received
//	THEN: BookRemovedFromCatalog is generated
//	ERROR: BookNotFound if the book does not exist or was already removed
//	ERROR: BookHasOpenRecords while any copy is borrowed
func Decide(history core.DomainEvents, command Command) core.DecisionResult {
	s := project(history, command.BookID)

	if !s.bookExists || s.bookRemoved {
		return core.ErrorDecision(core.BookNotFound(command.BookID))
	}

	if len(s.openRecords) > 0 {
		return core.ErrorDecision(core.BookHasOpenRecords(command.BookID))
	}

	return core.SuccessDecision(
		core.BuildBookRemovedFromCatalog(command.BookID, s.title, s.author, command.OccurredAt),
	)
}

func project(history core.DomainEvents, bookID core.BookIDString) state {
	s := state{openRecords: make(map[core.RecordIDString]bool)}

	for _, event := range history {
		switch e := event.(type) {
		case core.BookAddedToCatalog:
			if e.BookID == bookID {
				s.bookExists = true
				s.title, s.author = e.Title, e.Author
			}

		case core.BookDetailsUpdated:
			if e.BookID == bookID {
				s.title, s.author = e.Title, e.Author
			}

		case core.BookRemovedFromCatalog:
			if e.BookID == bookID {
				s.bookRemoved = true
			}

		case core.BookBorrowed:
			if e.BookID == bookID {
				s.openRecords[e.RecordID] = true
			}

		case core.BookReturned:
			if e.BookID == bookID {
				delete(s.openRecords, e.RecordID)
			}
		}
	}

	return s
}

func BuildEventFilter(bookID core.BookIDString) eventstore.Filter {
	return eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf(
			core.BookAddedToCatalogEventType,
			core.BookDetailsUpdatedEventType,
			core.BookRemovedFromCatalogEventType,
			core.BookBorrowedEventType,
			core.BookReturnedEventType,
		).
		AndAnyPredicateOf(eventstore.P("BookID", bookID)).
		Finalize()
}
