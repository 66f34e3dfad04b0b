package availabilitysummary

const (
	queryType = "AvailabilitySummary"
)

type Query struct{}

func BuildQuery() Query {
	return Query{}
}

func (q Query) QueryType() string {
	return queryType
}

func (q Query) SnapshotType() string {
	return queryType
}
