package topborrowedbooks

import (
	"github.com/AntonStoeckl/library-lending/lending/core"
)

type BorrowedBook struct {
	BookID        core.BookIDString
	Title         string
	Author        string
	TimesBorrowed int
	Removed       bool
}

// TopBorrowedBooks holds the ranking of all books, most borrowed first.
type TopBorrowedBooks struct {
	Ranking        []BorrowedBook
	SequenceNumber uint
}

func (r TopBorrowedBooks) GetSequenceNumber() uint {
	return r.SequenceNumber
}

// Top returns up to limit books that were borrowed at least once and are still in the catalog.
func (r TopBorrowedBooks) Top(limit int) []BorrowedBook {
	top := make([]BorrowedBook, 0, min(limit, len(r.Ranking)))

	for _, book := range r.Ranking {
		if len(top) == limit {
			break
		}

		if book.Removed || book.TimesBorrowed == 0 {
			continue
		}

		top = append(top, book)
	}

	return top
}
