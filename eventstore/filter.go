package eventstore

import (
	"crypto/sha256"
	"encoding/hex"
	"slices"
	"strconv"
	"strings"
)

type FilterEventTypeString = string
type FilterKeyString = string
type FilterValString = string

/***** Filter *****/

// Filter describes a "dynamic event stream": the set of events a command or query is interested in.
// The same Filter must be used for the Query that feeds a decision and for the Append that persists it,
// so that the Append only succeeds if no other event matching the Filter was appended in the meantime.
type Filter struct {
	items                    []FilterItem
	sequenceNumberHigherThan MaxSequenceNumberUint
}

// Items returns the FilterItem(s), which are combined with OR.
func (f Filter) Items() []FilterItem {
	return f.items
}

// SequenceNumberHigherThan returns the lower (exclusive) sequence number bound, 0 means unbounded.
func (f Filter) SequenceNumberHigherThan() MaxSequenceNumberUint {
	return f.sequenceNumberHigherThan
}

// WithSequenceNumberHigherThan returns a copy of the Filter that only matches events after sequenceNumber.
// It is used for incremental queries on top of a snapshot.
func (f Filter) WithSequenceNumberHigherThan(sequenceNumber MaxSequenceNumberUint) Filter {
	items := slices.Clone(f.items)

	return Filter{items: items, sequenceNumberHigherThan: sequenceNumber}
}

// MatchesAnyEvent is true for a Filter without any FilterItem.
func (f Filter) MatchesAnyEvent() bool {
	return len(f.items) == 0
}

// Hash returns a stable fingerprint of the FilterItem(s), ignoring the sequence number bound.
// Two filters built from the same criteria (in any input order) have the same Hash.
func (f Filter) Hash() string {
	var b strings.Builder

	for _, item := range f.items {
		b.WriteString("item(")
		b.WriteString(strings.Join(item.eventTypes, ","))
		b.WriteString("|")
		b.WriteString(strconv.FormatBool(item.allPredicatesMustMatch))
		b.WriteString("|")

		for _, p := range item.predicates {
			b.WriteString(p.key)
			b.WriteString("=")
			b.WriteString(p.val)
			b.WriteString(";")
		}

		b.WriteString(")")
	}

	sum := sha256.Sum256([]byte(b.String()))

	return hex.EncodeToString(sum[:])
}

/***** FilterItem *****/

// FilterItem matches events of ANY of its event types AND (ANY|ALL) of its predicates.
// An empty list of event types or predicates does not restrict the match.
type FilterItem struct {
	eventTypes             []FilterEventTypeString
	predicates             []FilterPredicate
	allPredicatesMustMatch bool
}

func (fi FilterItem) EventTypes() []FilterEventTypeString {
	return fi.eventTypes
}

func (fi FilterItem) Predicates() []FilterPredicate {
	return fi.predicates
}

func (fi FilterItem) AllPredicatesMustMatch() bool {
	return fi.allPredicatesMustMatch
}

/***** FilterPredicate *****/

// FilterPredicate matches a top-level string field of the event payload.
type FilterPredicate struct {
	key FilterKeyString
	val FilterValString
}

// P builds a FilterPredicate.
func P(key FilterKeyString, val FilterValString) FilterPredicate {
	return FilterPredicate{key: key, val: val}
}

func (fp FilterPredicate) Key() FilterKeyString {
	return fp.key
}

func (fp FilterPredicate) Val() FilterValString {
	return fp.val
}

/***** FilterBuilder *****/

// FilterBuilder builds a Filter that engines translate into their own query language.
// The builder only allows combinations that make sense for event-sourced workflows:
//
//   - (eventType OR eventType...)
//   - (predicate OR predicate...) or (predicate AND predicate...)
//   - ((eventType OR eventType...) AND (predicate OR|AND predicate...))
//   - any of the above OR any of the above... -> multiple FilterItem(s)
//   - no criteria at all -> MatchingAnyEvent
type FilterBuilder interface {
	// Matching starts a new FilterItem.
	Matching() EmptyFilterItemBuilder

	// MatchingAnyEvent returns a Filter without criteria.
	MatchingAnyEvent() Filter
}

type EmptyFilterItemBuilder interface {
	AnyEventTypeOf(eventType FilterEventTypeString, eventTypes ...FilterEventTypeString) FilterItemBuilderLackingPredicates
	AnyPredicateOf(predicate FilterPredicate, predicates ...FilterPredicate) FilterItemBuilderLackingEventTypes
	AllPredicatesOf(predicate FilterPredicate, predicates ...FilterPredicate) FilterItemBuilderLackingEventTypes
}

type FilterItemBuilderLackingPredicates interface {
	AndAnyPredicateOf(predicate FilterPredicate, predicates ...FilterPredicate) CompletedFilterItemBuilder
	AndAllPredicatesOf(predicate FilterPredicate, predicates ...FilterPredicate) CompletedFilterItemBuilder
	CompletedFilterItemBuilder
}

type FilterItemBuilderLackingEventTypes interface {
	AndAnyEventTypeOf(eventType FilterEventTypeString, eventTypes ...FilterEventTypeString) CompletedFilterItemBuilder
	CompletedFilterItemBuilder
}

type CompletedFilterItemBuilder interface {
	// OrMatching closes the current FilterItem and starts the next one.
	OrMatching() EmptyFilterItemBuilder

	// Finalize closes the current FilterItem and returns the Filter.
	Finalize() Filter
}

type filterBuilder struct {
	filter      Filter
	currentItem FilterItem
}

// BuildEventFilter starts building a Filter, finish it with Finalize() or MatchingAnyEvent().
func BuildEventFilter() FilterBuilder {
	return filterBuilder{}
}

func (fb filterBuilder) Matching() EmptyFilterItemBuilder {
	fb.currentItem = FilterItem{}

	return fb
}

func (fb filterBuilder) MatchingAnyEvent() Filter {
	return fb.filter
}

// AnyEventTypeOf adds event types to the current FilterItem, dropping empty and duplicate values.
func (fb filterBuilder) AnyEventTypeOf(
	eventType FilterEventTypeString,
	eventTypes ...FilterEventTypeString,
) FilterItemBuilderLackingPredicates {

	fb.currentItem.eventTypes = sanitizeEventTypes(
		append(slices.Clone(fb.currentItem.eventTypes), append([]FilterEventTypeString{eventType}, eventTypes...)...),
	)

	return fb
}

func (fb filterBuilder) AndAnyEventTypeOf(
	eventType FilterEventTypeString,
	eventTypes ...FilterEventTypeString,
) CompletedFilterItemBuilder {

	return fb.AnyEventTypeOf(eventType, eventTypes...)
}

// AnyPredicateOf adds predicates of which at least one must match, dropping partial and duplicate ones.
func (fb filterBuilder) AnyPredicateOf(
	predicate FilterPredicate,
	predicates ...FilterPredicate,
) FilterItemBuilderLackingEventTypes {

	fb.currentItem.predicates = sanitizePredicates(
		append(slices.Clone(fb.currentItem.predicates), append([]FilterPredicate{predicate}, predicates...)...),
	)

	return fb
}

func (fb filterBuilder) AndAnyPredicateOf(
	predicate FilterPredicate,
	predicates ...FilterPredicate,
) CompletedFilterItemBuilder {

	return fb.AnyPredicateOf(predicate, predicates...)
}

// AllPredicatesOf adds predicates which must all match, dropping partial and duplicate ones.
func (fb filterBuilder) AllPredicatesOf(
	predicate FilterPredicate,
	predicates ...FilterPredicate,
) FilterItemBuilderLackingEventTypes {

	fb.currentItem.allPredicatesMustMatch = true

	return fb.AnyPredicateOf(predicate, predicates...)
}

func (fb filterBuilder) AndAllPredicatesOf(
	predicate FilterPredicate,
	predicates ...FilterPredicate,
) CompletedFilterItemBuilder {

	return fb.AllPredicatesOf(predicate, predicates...)
}

func (fb filterBuilder) OrMatching() EmptyFilterItemBuilder {
	fb.filter.items = append(slices.Clone(fb.filter.items), fb.currentItem)
	fb.currentItem = FilterItem{}

	return fb
}

func (fb filterBuilder) Finalize() Filter {
	fb.filter.items = append(slices.Clone(fb.filter.items), fb.currentItem)

	return fb.filter
}

func sanitizeEventTypes(eventTypes []FilterEventTypeString) []FilterEventTypeString {
	eventTypes = slices.DeleteFunc(eventTypes, func(e FilterEventTypeString) bool { return e == "" })
	slices.Sort(eventTypes)

	return slices.Clip(slices.Compact(eventTypes))
}

func sanitizePredicates(predicates []FilterPredicate) []FilterPredicate {
	predicates = slices.DeleteFunc(predicates, func(p FilterPredicate) bool { return p.key == "" || p.val == "" })
	slices.SortFunc(predicates, func(a, b FilterPredicate) int {
		if c := strings.Compare(a.key, b.key); c != 0 {
			return c
		}

		return strings.Compare(a.val, b.val)
	})

	return slices.Clip(slices.Compact(predicates))
}
