package borrowrecord

import (
	"github.com/AntonStoeckl/library-lending/lending/readmodel"
)

// BorrowRecord is the query result, Found is false if no matching record exists.
type BorrowRecord struct {
	Record         readmodel.BorrowRecordView
	Found          bool
	SequenceNumber uint
}

func (r BorrowRecord) GetSequenceNumber() uint {
	return r.SequenceNumber
}
