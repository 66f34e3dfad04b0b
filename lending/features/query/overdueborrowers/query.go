package overdueborrowers

import (
	"time"
)

const (
	queryType = "OverdueBorrowers"
)

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
