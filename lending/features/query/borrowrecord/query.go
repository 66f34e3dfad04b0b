package borrowrecord

import (
	"time"

	"github.com/AntonStoeckl/library-lending/lending/core"
)

const (
	queryType = "BorrowRecord"
)

type Query struct {
	RecordID   core.RecordIDString
	BookID     core.BookIDString
	BorrowerID core.BorrowerIDString
	AsOf       time.Time
}

// BuildQuery reads the record with recordID, or the latest record of the pair if recordID is empty.
func BuildQuery(recordID core.RecordIDString, bookID core.BookIDString, borrowerID core.BorrowerIDString, asOf time.Time) Query {
	return Query{
		RecordID:   recordID,
		BookID:     bookID,
		BorrowerID: borrowerID,
		AsOf:       asOf,
	}
}

func (q Query) QueryType() string {
	return queryType
}

func (q Query) SnapshotType() string {
	return queryType
}
