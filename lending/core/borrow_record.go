package core

import (
	"time"

	"github.com/shopspring/decimal"
)

// BorrowRecord is one lending transaction, open from BookBorrowed until BookReturned.
type BorrowRecord struct {
	RecordID   RecordIDString
	BookID     BookIDString
	BorrowerID BorrowerIDString
	BorrowDate Day
	DueDate    Day
	ReturnDate *time.Time
	FineAmount decimal.Decimal
}

// BorrowRecordFrom opens a record from its BookBorrowed event.
func BorrowRecordFrom(e BookBorrowed) BorrowRecord {
	return BorrowRecord{
		RecordID:   e.RecordID,
		BookID:     e.BookID,
		BorrowerID: e.BorrowerID,
		BorrowDate: e.BorrowDate,
		DueDate:    e.DueDate,
		FineAmount: decimal.Zero,
	}
}

func (r BorrowRecord) IsOpen() bool {
	return r.ReturnDate == nil
}

// IsOverdue is true for open records whose due date lies before today.
func (r BorrowRecord) IsOverdue(today time.Time) bool {
	return r.IsOpen() && ToDay(today).After(r.DueDate)
}

// Close applies a BookReturned event, a closed record stays unchanged.
func (r BorrowRecord) Close(e BookReturned) BorrowRecord {
	if !r.IsOpen() {
		return r
	}

	returnDate := e.ReturnDate
	r.ReturnDate = &returnDate
	r.FineAmount = e.FineAmount

	return r
}
