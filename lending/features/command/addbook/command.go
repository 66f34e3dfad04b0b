package addbook

import (
	"strings"
	"time"

	"github.com/AntonStoeckl/library-lending/lending/core"
)

const (
	commandType = "AddBook"
)

// Command adds Copies copies of a book. BookID is only used when the book is new.
type Command struct {
	BookID     core.BookIDString
	Title      string
	Author     string
	Category   core.CategoryString
	Copies     int
	OccurredAt core.OccurredAt
}

func (c Command) CommandType() string {
	return commandType
}

func BuildCommand(
	bookID core.BookIDString,
	title string,
	author string,
	category core.CategoryString,
	copies int,
	occurredAt time.Time,
) Command {

	return Command{
		BookID:     bookID,
		Title:      strings.TrimSpace(title),
		Author:     strings.TrimSpace(author),
		Category:   strings.TrimSpace(category),
		Copies:     copies,
		OccurredAt: core.ToOccurredAt(occurredAt),
	}
}
