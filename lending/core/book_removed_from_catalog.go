package core

import (
	"time"
)

const BookRemovedFromCatalogEventType = "BookRemovedFromCatalog"

// BookRemovedFromCatalog soft-deletes a book, its borrow history stays readable.
type BookRemovedFromCatalog struct {
	BookID     BookIDString
	Title      string
	Author     string
	OccurredAt OccurredAt
}

func BuildBookRemovedFromCatalog(bookID BookIDString, title string, author string, occurredAt time.Time) BookRemovedFromCatalog {
	return BookRemovedFromCatalog{
		BookID:     bookID,
		Title:      title,
		Author:     author,
		OccurredAt: ToOccurredAt(occurredAt),
	}
}

func (e BookRemovedFromCatalog) EventType() string {
	return BookRemovedFromCatalogEventType
}

func (e BookRemovedFromCatalog) HasOccurredAt() time.Time {
	return e.OccurredAt
}
