package core

import (
	"time"
)

const BookCopiesAddedEventType = "BookCopiesAdded"

// BookCopiesAdded adds copies to an existing book. Title and Author are repeated so that
// the AddBook consistency boundary, which matches on them, covers this event as well.
type BookCopiesAdded struct {
	BookID     BookIDString
	Title      string
	Author     string
	Copies     int
	OccurredAt OccurredAt
}

func BuildBookCopiesAdded(bookID BookIDString, title string, author string, copies int, occurredAt time.Time) BookCopiesAdded {
	return BookCopiesAdded{
		BookID:     bookID,
		Title:      title,
		Author:     author,
		Copies:     copies,
		OccurredAt: ToOccurredAt(occurredAt),
	}
}

func (e BookCopiesAdded) EventType() string {
	return BookCopiesAddedEventType
}

func (e BookCopiesAdded) HasOccurredAt() time.Time {
	return e.OccurredAt
}
