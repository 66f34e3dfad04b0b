package updatebook

import (
	"strings"
	"time"

	"github.com/AntonStoeckl/library-lending/lending/core"
)

const (
	commandType = "UpdateBook"
)

type Command struct {
	BookID      core.BookIDString
	Title       string
	Author      string
	Category    core.CategoryString
	TotalCopies int
	OccurredAt  core.OccurredAt
}

func (c Command) CommandType() string {
	return commandType
}

func BuildCommand(
	bookID core.BookIDString,
	title string,
	author string,
	category core.CategoryString,
	totalCopies int,
	occurredAt time.Time,
) Command {

	return Command{
		BookID:      bookID,
		Title:       strings.TrimSpace(title),
		Author:      strings.TrimSpace(author),
		Category:    strings.TrimSpace(category),
		TotalCopies: totalCopies,
		OccurredAt:  core.ToOccurredAt(occurredAt),
	}
}
