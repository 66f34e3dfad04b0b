package core

import (
	"time"

	"github.com/shopspring/decimal"
)

const BookReturnedEventType = "BookReturned"

// BookReturned closes a borrow record and puts the copy back into the available stock.
type BookReturned struct {
	RecordID   RecordIDString
	BookID     BookIDString
	BorrowerID BorrowerIDString
	ReturnDate Day
	FineAmount decimal.Decimal
	OccurredAt OccurredAt
}

func BuildBookReturned(
	recordID RecordIDString,
	bookID BookIDString,
	borrowerID BorrowerIDString,
	fineAmount decimal.Decimal,
	occurredAt time.Time,
) BookReturned {

	return BookReturned{
		RecordID:   recordID,
		BookID:     bookID,
		BorrowerID: borrowerID,
		ReturnDate: ToDay(occurredAt),
		FineAmount: fineAmount,
		OccurredAt: ToOccurredAt(occurredAt),
	}
}

func (e BookReturned) EventType() string {
	return BookReturnedEventType
}

func (e BookReturned) HasOccurredAt() time.Time {
	return e.OccurredAt
}
