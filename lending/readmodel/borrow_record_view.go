package readmodel

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/AntonStoeckl/library-lending/lending/core"
)

// BorrowRecordView is a borrow record as callers see it. ReturnDate is nil while the record is open.
type BorrowRecordView struct {
	RecordID     core.RecordIDString
	BookID       core.BookIDString
	BookTitle    string
	BorrowerID   core.BorrowerIDString
	BorrowerName string
	BorrowDate   time.Time
	DueDate      time.Time
	ReturnDate   *time.Time
	FineAmount   decimal.Decimal
	Active       bool
	Overdue      bool
}
