package activeborrowrecords

import (
	"time"
)

const (
	queryType = "ActiveBorrowRecords"
)

// Query lists the open records, AsOf decides which of them are overdue.
type Query struct {
	AsOf time.Time
}

func BuildQuery(asOf time.Time) Query {
	return Query{AsOf: asOf}
}

func (q Query) QueryType() string {
	return queryType
}

func (q Query) SnapshotType() string {
	return queryType
}
