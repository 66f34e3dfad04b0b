package removebook

import (
	"time"

	"github.com/AntonStoeckl/library-lending/lending/core"
)

const (
	commandType = "RemoveBook"
)

type Command struct {
	BookID     core.BookIDString
	OccurredAt core.OccurredAt
}

func (c Command) CommandType() string {
	return commandType
}

func BuildCommand(bookID core.BookIDString, occurredAt time.Time) Command {
	return Command{
		BookID:     bookID,
		OccurredAt: core.ToOccurredAt(occurredAt),
	}
}
