package eventstore_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/AntonStoeckl/library-lending/eventstore"
)

//nolint:funlen
func Test_FilterBuilder_ValidCombinations(t *testing.T) {
	tests := []struct {
		name     string
		build    func() eventstore.Filter
		validate func(t *testing.T, filter eventstore.Filter)
	}{
		{
			name: "matching_any_event_creates_empty_filter",
			build: func() eventstore.Filter {
				return eventstore.BuildEventFilter().MatchingAnyEvent()
			},
			validate: func(t *testing.T, f eventstore.Filter) {
				assert.Empty(t, f.Items())
				assert.True(t, f.MatchesAnyEvent())
				assert.Equal(t, uint(0), f.SequenceNumberHigherThan())
			},
		},
		{
			name: "single_event_type",
			build: func() eventstore.Filter {
				return eventstore.BuildEventFilter().
					Matching().
					AnyEventTypeOf("BookBorrowed").
					Finalize()
			},
			validate: func(t *testing.T, f eventstore.Filter) {
				assert.Len(t, f.Items(), 1)
				assert.Equal(t, []string{"BookBorrowed"}, f.Items()[0].EventTypes())
				assert.Empty(t, f.Items()[0].Predicates())
				assert.False(t, f.Items()[0].AllPredicatesMustMatch())
			},
		},
		{
			name: "event_types_are_sorted_and_deduplicated",
			build: func() eventstore.Filter {
				return eventstore.BuildEventFilter().
					Matching().
					AnyEventTypeOf("BookReturned", "", "BookBorrowed", "BookReturned").
					Finalize()
			},
			validate: func(t *testing.T, f eventstore.Filter) {
				assert.Equal(t, []string{"BookBorrowed", "BookReturned"}, f.Items()[0].EventTypes())
			},
		},
		{
			name: "event_types_with_any_predicate",
			build: func() eventstore.Filter {
				return eventstore.BuildEventFilter().
					Matching().
					AnyEventTypeOf("BookBorrowed").
					AndAnyPredicateOf(eventstore.P("BookID", "b-1"), eventstore.P("BorrowerID", "u-1")).
					Finalize()
			},
			validate: func(t *testing.T, f eventstore.Filter) {
				item := f.Items()[0]
				assert.Equal(t, []string{"BookBorrowed"}, item.EventTypes())
				assert.Equal(t,
					[]eventstore.FilterPredicate{eventstore.P("BookID", "b-1"), eventstore.P("BorrowerID", "u-1")},
					item.Predicates(),
				)
				assert.False(t, item.AllPredicatesMustMatch())
			},
		},
		{
			name: "all_predicates_with_event_types",
			build: func() eventstore.Filter {
				return eventstore.BuildEventFilter().
					Matching().
					AllPredicatesOf(eventstore.P("Title", "Dune"), eventstore.P("Author", "Herbert")).
					AndAnyEventTypeOf("BookAddedToCatalog").
					Finalize()
			},
			validate: func(t *testing.T, f eventstore.Filter) {
				item := f.Items()[0]
				assert.True(t, item.AllPredicatesMustMatch())
				assert.Equal(t, []string{"BookAddedToCatalog"}, item.EventTypes())
				assert.Len(t, item.Predicates(), 2)
			},
		},
		{
			name: "partial_predicates_are_dropped",
			build: func() eventstore.Filter {
				return eventstore.BuildEventFilter().
					Matching().
					AnyPredicateOf(eventstore.P("BookID", ""), eventstore.P("", "x"), eventstore.P("BookID", "b-1")).
					Finalize()
			},
			validate: func(t *testing.T, f eventstore.Filter) {
				assert.Equal(t, []eventstore.FilterPredicate{eventstore.P("BookID", "b-1")}, f.Items()[0].Predicates())
			},
		},
		{
			name: "multiple_items_are_kept_in_order",
			build: func() eventstore.Filter {
				return eventstore.BuildEventFilter().
					Matching().
					AnyEventTypeOf("BookBorrowed").
					OrMatching().
					AnyEventTypeOf("FinePolicySet").
					Finalize()
			},
			validate: func(t *testing.T, f eventstore.Filter) {
				assert.Len(t, f.Items(), 2)
				assert.Equal(t, []string{"BookBorrowed"}, f.Items()[0].EventTypes())
				assert.Equal(t, []string{"FinePolicySet"}, f.Items()[1].EventTypes())
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tc.validate(t, tc.build())
		})
	}
}

func Test_Filter_WithSequenceNumberHigherThan_ReturnsCopy(t *testing.T) {
	// arrange
	filter := eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf("BookBorrowed").
		Finalize()

	// act
	bounded := filter.WithSequenceNumberHigherThan(42)

	// assert
	assert.Equal(t, uint(0), filter.SequenceNumberHigherThan())
	assert.Equal(t, uint(42), bounded.SequenceNumberHigherThan())
	assert.Equal(t, filter.Items(), bounded.Items())
}

func Test_Filter_Hash(t *testing.T) {
	build := func(eventTypes ...string) eventstore.Filter {
		return eventstore.BuildEventFilter().
			Matching().
			AnyEventTypeOf(eventTypes[0], eventTypes[1:]...).
			AndAnyPredicateOf(eventstore.P("BookID", "b-1")).
			Finalize()
	}

	t.Run("is stable for the same criteria in any order", func(t *testing.T) {
		assert.Equal(t, build("A", "B").Hash(), build("B", "A").Hash())
	})

	t.Run("ignores the sequence number bound", func(t *testing.T) {
		assert.Equal(t, build("A").Hash(), build("A").WithSequenceNumberHigherThan(7).Hash())
	})

	t.Run("differs for different criteria", func(t *testing.T) {
		assert.NotEqual(t, build("A").Hash(), build("B").Hash())
	})

	t.Run("differs between any and all predicates", func(t *testing.T) {
		anyOf := eventstore.BuildEventFilter().Matching().AnyPredicateOf(eventstore.P("k", "v")).Finalize()
		allOf := eventstore.BuildEventFilter().Matching().AllPredicatesOf(eventstore.P("k", "v")).Finalize()

		assert.NotEqual(t, anyOf.Hash(), allOf.Hash())
	})
}
