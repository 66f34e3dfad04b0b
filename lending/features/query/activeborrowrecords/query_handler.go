package activeborrowrecords

import (
	"github.com/AntonStoeckl/library-lending/lending/shell"
)

type QueryHandler = shell.ProjectingQueryHandler[Query, ActiveBorrowRecords]

func NewQueryHandler(eventStore shell.QueriesEvents) QueryHandler {
	return shell.NewProjectingQueryHandler[Query, ActiveBorrowRecords](eventStore, BuildEventFilter, Project)
}
