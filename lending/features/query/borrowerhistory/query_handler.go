package borrowerhistory

import (
	"github.com/AntonStoeckl/library-lending/lending/shell"
)

type QueryHandler = shell.ProjectingQueryHandler[Query, BorrowerHistory]

func NewQueryHandler(eventStore shell.QueriesEvents) QueryHandler {
	return shell.NewProjectingQueryHandler[Query, BorrowerHistory](eventStore, BuildEventFilter, Project)
}
