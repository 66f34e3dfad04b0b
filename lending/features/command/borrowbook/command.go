package borrowbook

import (
	"time"

	"github.com/AntonStoeckl/library-lending/lending/core"
)

const (
	commandType = "BorrowBook"
)

// Command is the intent of a borrower to take a copy of a book home.
// RecordID is chosen by the caller so that the resulting record can be read back.
type Command struct {
	RecordID   core.RecordIDString
	BookID     core.BookIDString
	BorrowerID core.BorrowerIDString
	OccurredAt core.OccurredAt
}

func (c Command) CommandType() string {
	return commandType
}

func BuildCommand(
	recordID core.RecordIDString,
	bookID core.BookIDString,
	borrowerID core.BorrowerIDString,
	occurredAt time.Time,
) Command {

	return Command{
		RecordID:   recordID,
		BookID:     bookID,
		BorrowerID: borrowerID,
		OccurredAt: core.ToOccurredAt(occurredAt),
	}
}
