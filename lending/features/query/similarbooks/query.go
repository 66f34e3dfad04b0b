package similarbooks

import (
	"github.com/AntonStoeckl/library-lending/lending/core"
)

const (
	queryType = "SimilarBooks"

	MaxSuggestions = 5
)

type Query struct {
	BookID core.BookIDString
}

func BuildQuery(bookID core.BookIDString) Query {
	return Query{BookID: bookID}
}

func (q Query) QueryType() string {
	return queryType
}

func (q Query) SnapshotType() string {
	return queryType
}
