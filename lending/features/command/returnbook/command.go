package returnbook

import (
	"time"

	"github.com/AntonStoeckl/library-lending/lending/core"
)

const (
	commandType = "ReturnBook"
)

// Command is the intent of a borrower to bring a book back.
type Command struct {
	BookID     core.BookIDString
	BorrowerID core.BorrowerIDString
	OccurredAt core.OccurredAt
}

func (c Command) CommandType() string {
	return commandType
}

func BuildCommand(bookID core.BookIDString, borrowerID core.BorrowerIDString, occurredAt time.Time) Command {
	return Command{
		BookID:     bookID,
		BorrowerID: borrowerID,
		OccurredAt: core.ToOccurredAt(occurredAt),
	}
}
