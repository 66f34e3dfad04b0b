package overduerecords

import (
	"github.com/AntonStoeckl/library-lending/lending/readmodel"
)

type OverdueRecords struct {
	Records        []readmodel.BorrowRecordView
	Count          int
	SequenceNumber uint
}

func (r OverdueRecords) GetSequenceNumber() uint {
	return r.SequenceNumber
}
