package borrowerhistory

import (
	"github.com/AntonStoeckl/library-lending/lending/core"
	"github.com/AntonStoeckl/library-lending/lending/readmodel"
)

// BorrowerHistory has Found == false for unregistered borrowers, their records are listed anyway.
type BorrowerHistory struct {
	BorrowerID     core.BorrowerIDString
	BorrowerName   string
	Found          bool
	Records        []readmodel.BorrowRecordView
	SequenceNumber uint
}

func (r BorrowerHistory) GetSequenceNumber() uint {
	return r.SequenceNumber
}
