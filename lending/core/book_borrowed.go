package core

import (
	"time"
)

const BookBorrowedEventType = "BookBorrowed"

// BookBorrowed opens a borrow record and takes one copy out of the available stock.
type BookBorrowed struct {
	RecordID   RecordIDString
	BookID     BookIDString
	BorrowerID BorrowerIDString
	BorrowDate Day
	DueDate    Day
	OccurredAt OccurredAt
}

// BuildBookBorrowed derives BorrowDate and DueDate from occurredAt.
func BuildBookBorrowed(recordID RecordIDString, bookID BookIDString, borrowerID BorrowerIDString, occurredAt time.Time) BookBorrowed {
	return BookBorrowed{
		RecordID:   recordID,
		BookID:     bookID,
		BorrowerID: borrowerID,
		BorrowDate: ToDay(occurredAt),
		DueDate:    DueDateFor(occurredAt),
		OccurredAt: ToOccurredAt(occurredAt),
	}
}

func (e BookBorrowed) EventType() string {
	return BookBorrowedEventType
}

func (e BookBorrowed) HasOccurredAt() time.Time {
	return e.OccurredAt
}
