package borrowerhistory

import (
	"time"

	"github.com/AntonStoeckl/library-lending/lending/core"
)

const (
	queryType = "BorrowerHistory"
)

type Query struct {
	BorrowerID core.BorrowerIDString
	AsOf       time.Time
}

func BuildQuery(borrowerID core.BorrowerIDString, asOf time.Time) Query {
	return Query{BorrowerID: borrowerID, AsOf: asOf}
}

func (q Query) QueryType() string {
	return queryType
}

func (q Query) SnapshotType() string {
	return queryType
}
