package catalog

import (
	"github.com/AntonStoeckl/library-lending/lending/readmodel"
)

// Catalog is one page of books, Total counts all books that matched the filters.
type Catalog struct {
	Books          []readmodel.BookSummary
	Total          int
	Page           int
	Size           int
	SequenceNumber uint
}

func (r Catalog) GetSequenceNumber() uint {
	return r.SequenceNumber
}
