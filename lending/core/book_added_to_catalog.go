package core

import (
	"time"
)

const BookAddedToCatalogEventType = "BookAddedToCatalog"

// BookAddedToCatalog is the first event of every book.
type BookAddedToCatalog struct {
	BookID      BookIDString
	Title       string
	Author      string
	Category    CategoryString
	TotalCopies int
	OccurredAt  OccurredAt
}

func BuildBookAddedToCatalog(
	bookID BookIDString,
	title string,
	author string,
	category CategoryString,
	totalCopies int,
	occurredAt time.Time,
) BookAddedToCatalog {

	return BookAddedToCatalog{
		BookID:      bookID,
		Title:       title,
		Author:      author,
		Category:    category,
		TotalCopies: totalCopies,
		OccurredAt:  ToOccurredAt(occurredAt),
	}
}

func (e BookAddedToCatalog) EventType() string {
	return BookAddedToCatalogEventType
}

func (e BookAddedToCatalog) HasOccurredAt() time.Time {
	return e.OccurredAt
}
