package topborrowedbooks

const (
	queryType = "TopBorrowedBooks"

	DefaultLimit = 5
	MaxLimit     = 100
)

type Query struct {
	Limit int
}

// BuildQuery uses DefaultLimit for limits below 1 and caps at MaxLimit.
func BuildQuery(limit int) Query {
	switch {
	case limit < 1:
		limit = DefaultLimit
	case limit > MaxLimit:
		limit = MaxLimit
	}

	return Query{Limit: limit}
}

func (q Query) QueryType() string {
	return queryType
}

// SnapshotType does not depend on the limit, all limits share one snapshot.
func (q Query) SnapshotType() string {
	return queryType
}
