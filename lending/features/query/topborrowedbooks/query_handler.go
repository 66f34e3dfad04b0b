package topborrowedbooks

import (
	"github.com/AntonStoeckl/library-lending/lending/shell"
	"github.com/AntonStoeckl/library-lending/lending/shell/snapshot"
)

type QueryHandler = shell.ProjectingQueryHandler[Query, TopBorrowedBooks]

func NewQueryHandler(eventStore shell.QueriesEvents) QueryHandler {
	return shell.NewProjectingQueryHandler[Query, TopBorrowedBooks](eventStore, BuildEventFilter, Project)
}

type SnapshotQueryHandler = snapshot.QueryWrapper[Query, TopBorrowedBooks]

// NewSnapshotQueryHandler serves the ranking from its snapshot plus the events appended since.
func NewSnapshotQueryHandler(
	eventStore snapshot.QueriesEventsAndHandlesSnapshots,
	opts ...snapshot.Option[Query, TopBorrowedBooks],
) (*SnapshotQueryHandler, error) {

	return snapshot.NewQueryWrapper[Query, TopBorrowedBooks](NewQueryHandler(eventStore), eventStore, Project, BuildEventFilter, opts...)
}
