package catalog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-lending/lending/core"
	"github.com/AntonStoeckl/library-lending/lending/features/query/catalog"
	. "github.com/AntonStoeckl/library-lending/testutil/helper" //nolint:revive
)

func givenLibraryHistory() core.DomainEvents {
	return core.DomainEvents{
		core.BuildBookAddedToCatalog("book-1", "Dune", "Herbert", "scifi", 2, FixedTime),
		core.BuildBookAddedToCatalog("book-2", "Emma", "Austen", "classics", 1, FixedTime),
		core.BuildBookAddedToCatalog("book-3", "Anathem", "Stephenson", "scifi", 3, FixedTime),
		core.BuildBookAddedToCatalog("book-4", "Gone", "Someone", "classics", 1, FixedTime),
		core.BuildBookRemovedFromCatalog("book-4", "Gone", "Someone", FixedTime),
		BookBorrowed("record-1", "book-2", "borrower-1", FixedTime),
	}
}

func Test_Project_FiltersAndSorts(t *testing.T) {
	available := true
	unavailable := false

	testCases := []struct {
		description string
		category    string
		available   *bool
		sortBy      string
		expectedIDs []string
	}{
		{description: "default sort by title", expectedIDs: []string{"book-3", "book-1", "book-2"}},
		{description: "sort by author", sortBy: catalog.SortByAuthor, expectedIDs: []string{"book-2", "book-1", "book-3"}},
		{description: "sort by available copies", sortBy: catalog.SortByAvailableCopies, expectedIDs: []string{"book-3", "book-1", "book-2"}},
		{description: "sort by category keeps insertion order within a category", sortBy: catalog.SortByCategory, expectedIDs: []string{"book-2", "book-1", "book-3"}},
		{description: "category filter", category: "scifi", expectedIDs: []string{"book-3", "book-1"}},
		{description: "only available", available: &available, expectedIDs: []string{"book-3", "book-1"}},
		{description: "only unavailable", available: &unavailable, expectedIDs: []string{"book-2"}},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			// arrange
			query, err := catalog.BuildQuery(tc.category, tc.available, 0, 0, tc.sortBy)
			require.NoError(t, err)

			// act
			result := catalog.Project(givenLibraryHistory(), query, 6)

			// assert
			ids := make([]string, 0, len(result.Books))
			for _, book := range result.Books {
				ids = append(ids, book.BookID)
			}

			assert.Equal(t, tc.expectedIDs, ids)
			assert.Equal(t, len(tc.expectedIDs), result.Total)
		})
	}
}

func Test_Project_Pages(t *testing.T) {
	// arrange
	query, err := catalog.BuildQuery("", nil, 2, 2, "")
	require.NoError(t, err)

	// act
	result := catalog.Project(givenLibraryHistory(), query, 6)

	// assert
	require.Len(t, result.Books, 1)
	assert.Equal(t, "book-2", result.Books[0].BookID)
	assert.Equal(t, 3, result.Total)
	assert.Equal(t, 2, result.Page)
}

func Test_BuildQuery_DefaultsAndValidation(t *testing.T) {
	// act
	defaults, defaultsErr := catalog.BuildQuery("", nil, 0, 0, "")
	capped, cappedErr := catalog.BuildQuery("", nil, 1, 500, "")
	_, sortErr := catalog.BuildQuery("", nil, 1, 10, "isbn")
	_, pageErr := catalog.BuildQuery("", nil, -1, 10, "")

	// assert
	require.NoError(t, defaultsErr)
	assert.Equal(t, 1, defaults.Page)
	assert.Equal(t, catalog.DefaultPageSize, defaults.Size)
	assert.Equal(t, catalog.SortByTitle, defaults.SortBy)

	require.NoError(t, cappedErr)
	assert.Equal(t, catalog.MaxPageSize, capped.Size)

	assert.ErrorIs(t, sortErr, core.ErrInvalidInput)
	assert.ErrorIs(t, pageErr, core.ErrInvalidInput)
}

func Test_QueryHandler_ReadsFromTheStore(t *testing.T) {
	// arrange
	es := GivenMemoryEventStore(t)
	GivenEventsWereAppended(t, es, givenLibraryHistory()...)
	query, err := catalog.BuildQuery("classics", nil, 1, 10, "")
	require.NoError(t, err)

	// act
	result, err := catalog.NewQueryHandler(es).Handle(t.Context(), query)

	// assert
	require.NoError(t, err)
	require.Len(t, result.Books, 1)
	assert.Equal(t, "Emma", result.Books[0].Title)
	assert.Zero(t, result.Books[0].AvailableCopies)
	assert.False(t, result.Books[0].IsAvailable)
	assert.Equal(t, uint(6), result.SequenceNumber)
}
