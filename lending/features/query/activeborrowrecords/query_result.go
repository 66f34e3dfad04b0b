package activeborrowrecords

import (
	"github.com/AntonStoeckl/library-lending/lending/readmodel"
)

type ActiveBorrowRecords struct {
	Records        []readmodel.BorrowRecordView
	Count          int
	SequenceNumber uint
}

func (r ActiveBorrowRecords) GetSequenceNumber() uint {
	return r.SequenceNumber
}
