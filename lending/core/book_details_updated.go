package core

import (
	"time"
)

const BookDetailsUpdatedEventType = "BookDetailsUpdated"

// BookDetailsUpdated replaces the descriptive fields and the total copy count of a book.
type BookDetailsUpdated struct {
	BookID      BookIDString
	Title       string
	Author      string
	Category    CategoryString
	TotalCopies int
	OccurredAt  OccurredAt
}

func BuildBookDetailsUpdated(
	bookID BookIDString,
	title string,
	author string,
	category CategoryString,
	totalCopies int,
	occurredAt time.Time,
) BookDetailsUpdated {

	return BookDetailsUpdated{
		BookID:      bookID,
		Title:       title,
		Author:      author,
		Category:    category,
		TotalCopies: totalCopies,
		OccurredAt:  ToOccurredAt(occurredAt),
	}
}

func (e BookDetailsUpdated) EventType() string {
	return BookDetailsUpdatedEventType
}

func (e BookDetailsUpdated) HasOccurredAt() time.Time {
	return e.OccurredAt
}
