package catalog

import (
	"slices"

	"github.com/AntonStoeckl/library-lending/lending/core"
)

const (
	queryType = "Catalog"

	DefaultPageSize = 20
	MaxPageSize     = 100

	SortByTitle           = "title"
	SortByAuthor          = "author"
	SortByCategory        = "category"
	SortByAvailableCopies = "availableCopies"
)

var sortKeys = []string{SortByTitle, SortByAuthor, SortByCategory, SortByAvailableCopies}

// Query selects one page. An empty Category and a nil Available do not filter.
type Query struct {
	Category  core.CategoryString
	Available *bool
	Page      int
	Size      int
	SortBy    string
}

// BuildQuery applies the defaults: page 1, DefaultPageSize, sorted by title.
// A size above MaxPageSize is capped.
func BuildQuery(category core.CategoryString, available *bool, page int, size int, sortBy string) (Query, error) {
	if page < 0 {
		return Query{}, core.InvalidInput("page", "must not be negative")
	}

	if size < 0 {
		return Query{}, core.InvalidInput("size", "must not be negative")
	}

	if sortBy == "" {
		sortBy = SortByTitle
	}

	if !slices.Contains(sortKeys, sortBy) {
		return Query{}, core.InvalidInput("sortBy", "must be one of title, author, category, availableCopies")
	}

	if page == 0 {
		page = 1
	}

	switch {
	case size == 0:
		size = DefaultPageSize
	case size > MaxPageSize:
		size = MaxPageSize
	}

	return Query{Category: category, Available: available, Page: page, Size: size, SortBy: sortBy}, nil
}

func (q Query) QueryType() string {
	return queryType
}

func (q Query) SnapshotType() string {
	return queryType
}
