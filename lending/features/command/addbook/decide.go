package addbook

import (
	"github.com/AntonStoeckl/library-lending/eventstore"
	"github.com/AntonStoeckl/library-lending/lending/core"
)

type book struct {
	title   string
	author  string
	deleted bool
}

type state struct {
	books     map[core.BookIDString]*book
	bookOrder []core.BookIDString
}

// Decide merges by title and author or creates a new book.
//
//	GIVEN: a title, an author, a category and a number of copies
//	WHEN: AddBook is received
//	THEN: BookCopiesAdded if a non-removed book with the same title and author exists, else BookAddedToCatalog
//	ERROR: InvalidInput for an empty title, author or category or less than one copy
//	IDEMPOTENCY: the command's BookID already exists
func Decide(history core.DomainEvents, command Command) core.DecisionResult {
	if err := validate(command); err != nil {
		return core.ErrorDecision(err)
	}

	s := project(history)

	if _, ok := s.books[command.BookID]; ok {
		return core.IdempotentDecision()
	}

	for _, bookID := range s.bookOrder {
		b := s.books[bookID]
		if !b.deleted && b.title == command.Title && b.author == command.Author {
			return core.SuccessDecision(
				core.BuildBookCopiesAdded(bookID, command.Title, command.Author, command.Copies, command.OccurredAt),
			)
		}
	}

	return core.SuccessDecision(
		core.BuildBookAddedToCatalog(
			command.BookID,
			command.Title,
			command.Author,
			command.Category,
			command.Copies,
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
	case command.Copies < 1:
		return core.InvalidInput("copies", "must be at least 1")
	}

	return nil
}

func project(history core.DomainEvents) state {
	s := state{books: make(map[core.BookIDString]*book)}

	for _, event := range history {
		switch e := event.(type) {
		case core.BookAddedToCatalog:
			s.books[e.BookID] = &book{title: e.Title, author: e.Author}
			s.bookOrder = append(s.bookOrder, e.BookID)

		case core.BookDetailsUpdated:
			if b, ok := s.books[e.BookID]; ok {
				b.title = e.Title
				b.author = e.Author
			}

		case core.BookRemovedFromCatalog:
			if b, ok := s.books[e.BookID]; ok {
				b.deleted = true
			}
		}
	}

	return s
}

var catalogEventTypes = []string{
	core.BookAddedToCatalogEventType,
	core.BookCopiesAddedEventType,
	core.BookDetailsUpdatedEventType,
	core.BookRemovedFromCatalogEventType,
}

// BuildCandidatesFilter finds the books that ever carried title and author.
func BuildCandidatesFilter(title string, author string) eventstore.Filter {
	return eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf(catalogEventTypes[0], catalogEventTypes[1:]...).
		AndAllPredicatesOf(
			eventstore.P("Title", title),
			eventstore.P("Author", author),
		).
		Finalize()
}

// CandidateBookIDs returns the distinct BookIDs of the candidate events.
func CandidateBookIDs(history core.DomainEvents) []core.BookIDString {
	seen := make(map[core.BookIDString]bool)
	bookIDs := make([]core.BookIDString, 0)

	add := func(bookID core.BookIDString) {
		if !seen[bookID] {
			seen[bookID] = true
			bookIDs = append(bookIDs, bookID)
		}
	}

	for _, event := range history {
		switch e := event.(type) {
		case core.BookAddedToCatalog:
			add(e.BookID)
		case core.BookCopiesAdded:
			add(e.BookID)
		case core.BookDetailsUpdated:
			add(e.BookID)
		case core.BookRemovedFromCatalog:
			add(e.BookID)
		}
	}

	return bookIDs
}

// BuildEventFilter is the consistency boundary: every event with the title and author,
// plus every catalog event of the candidate books and of the new BookID.
func BuildEventFilter(command Command, candidateBookIDs []core.BookIDString) eventstore.Filter {
	bookPredicates := make([]eventstore.FilterPredicate, 0, len(candidateBookIDs))
	for _, bookID := range candidateBookIDs {
		bookPredicates = append(bookPredicates, eventstore.P("BookID", bookID))
	}

	return eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf(catalogEventTypes[0], catalogEventTypes[1:]...).
		AndAllPredicatesOf(
			eventstore.P("Title", command.Title),
			eventstore.P("Author", command.Author),
		).
		OrMatching().
		AnyEventTypeOf(catalogEventTypes[0], catalogEventTypes[1:]...).
		AndAnyPredicateOf(eventstore.P("BookID", command.BookID), bookPredicates...).
		Finalize()
}
