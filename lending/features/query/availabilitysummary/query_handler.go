package availabilitysummary

import (
	"github.com/AntonStoeckl/library-lending/lending/shell"
)

type QueryHandler = shell.ProjectingQueryHandler[Query, AvailabilitySummary]

func NewQueryHandler(eventStore shell.QueriesEvents) QueryHandler {
	return shell.NewProjectingQueryHandler[Query, AvailabilitySummary](eventStore, BuildEventFilter, Project)
}
