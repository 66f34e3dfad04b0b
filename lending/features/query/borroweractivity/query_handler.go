package borroweractivity

import (
	"github.com/AntonStoeckl/library-lending/lending/shell"
)

type QueryHandler = shell.ProjectingQueryHandler[Query, BorrowerActivity]

func NewQueryHandler(eventStore shell.QueriesEvents) QueryHandler {
	return shell.NewProjectingQueryHandler[Query, BorrowerActivity](eventStore, BuildEventFilter, Project)
}
