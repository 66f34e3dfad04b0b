package updatebook

import (
	"github.com/AntonStoeckl/library-lending/eventstore"
	"github.com/AntonStoeckl/library-lending/lending/core"
)

type state struct {
	bookExists  bool
	bookRemoved bool
	title       string
	author      string
	category    core.CategoryString
	inventory   core.Inventory
}

// Decide determines whether the book can be updated.
//
//	GIVEN: a book with BookID
//	WHEN: UpdateBook is received
//	THEN: BookDetailsUpdated is generated, the available copies shift by the change of the total
//	ERROR: InvalidInput for empty details or a negative total
//	ERROR: BookNotFound if the book does not exist or was removed
//	ERROR: TotalCopiesBelowBorrowed if more copies are out than the new total
//	IDEMPOTENCY: nothing changes
func Decide(history core.DomainEvents, command Command) core.DecisionResult {
	if err := validate(command); err != nil {
		return core.ErrorDecision(err)
	}

	s := project(history, command.BookID)

	if !s.bookExists || s.bookRemoved {
		return core.ErrorDecision(core.BookNotFound(command.BookID))
	}

	if borrowed := s.inventory.BorrowedCopies(); command.TotalCopies < borrowed {
		return core.ErrorDecision(core.TotalCopiesBelowBorrowed(command.BookID, borrowed))
	}

	if s.title == command.Title &&
		s.author == command.Author &&
		s.category == command.Category &&
		s.inventory.TotalCopies == command.TotalCopies {

		return core.IdempotentDecision()
	}

	return core.SuccessDecision(
		core.BuildBookDetailsUpdated(
			command.BookID,
			command.Title,
			command.Author,
			command.Category,
			command.TotalCopies,
			command.OccurredAt,
		),
	)
}

func validate(command Command) error {
	switch {
	case command.Title == "":
		return core.InvalidInput("title", "must not be empty")
	case command.Author == "":
		return core.InvalidInput("author", "must not be empty")
	case command.Category == "":
		return core.InvalidInput("category", "must not be empty")
	case command.TotalCopies < 0:
		return core.InvalidInput("totalCopies", "must not be negative")
	}

	return nil
}

func project(history core.DomainEvents, bookID core.BookIDString) state {
	s := state{}

	for _, event := range history {
		switch e := event.(type) {
		case core.BookAddedToCatalog:
			if e.BookID == bookID {
				s.bookExists = true
				s.title, s.author, s.category = e.Title, e.Author, e.Category
				s.inventory = core.NewInventory(e.TotalCopies)
			}

		case core.BookCopiesAdded:
			if e.BookID == bookID {
				s.inventory = s.inventory.AddCopies(e.Copies)
			}

		case core.BookDetailsUpdated:
			if e.BookID == bookID {
				s.title, s.author, s.category = e.Title, e.Author, e.Category
				s.inventory = s.inventory.WithTotal(e.TotalCopies)
			}

		case core.BookRemovedFromCatalog:
			if e.BookID == bookID {
				s.bookRemoved = true
			}

		case core.BookBorrowed:
			if e.BookID == bookID {
				s.inventory = s.inventory.DecrementAvailable()
			}

		case core.BookReturned:
			if e.BookID == bookID {
				s.inventory = s.inventory.IncrementAvailable()
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
			core.BookCopiesAddedEventType,
			core.BookDetailsUpdatedEventType,
			core.BookRemovedFromCatalogEventType,
			core.BookBorrowedEventType,
			core.BookReturnedEventType,
		).
		AndAnyPredicateOf(eventstore.P("BookID", bookID)).
		Finalize()
}
