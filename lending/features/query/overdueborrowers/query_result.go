package overdueborrowers

import (
	"time"

	"github.com/AntonStoeckl/library-lending/lending/core"
)

// OverdueBorrower is a borrower with OverdueCount overdue records, the oldest due on OldestDueDate.
type OverdueBorrower struct {
	BorrowerID    core.BorrowerIDString
	Name          string
	Email         string
	OverdueCount  int
	OldestDueDate time.Time
}

type OverdueBorrowers struct {
	Borrowers      []OverdueBorrower
	SequenceNumber uint
}

func (r OverdueBorrowers) GetSequenceNumber() uint {
	return r.SequenceNumber
}
