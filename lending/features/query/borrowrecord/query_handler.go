package borrowrecord

import (
	"github.com/AntonStoeckl/library-lending/lending/shell"
)

type QueryHandler = shell.ProjectingQueryHandler[Query, BorrowRecord]

func NewQueryHandler(eventStore shell.QueriesEvents) QueryHandler {
	return shell.NewProjectingQueryHandler[Query, BorrowRecord](eventStore, BuildEventFilter, Project)
}
