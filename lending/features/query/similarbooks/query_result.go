package similarbooks

import (
	"github.com/AntonStoeckl/library-lending/lending/core"
	"github.com/AntonStoeckl/library-lending/lending/readmodel"
)

// SimilarBooks has Found == false if the book is unknown or removed.
type SimilarBooks struct {
	BookID         core.BookIDString
	Found          bool
	Books          []readmodel.BookSummary
	SequenceNumber uint
}

func (r SimilarBooks) GetSequenceNumber() uint {
	return r.SequenceNumber
}
