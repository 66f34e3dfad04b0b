// Package core is the functional core of the library lending domain.
//
// It holds the domain events, the value types derived from them (membership tiers,
// inventory counters, fine policies, borrow records), the business error taxonomy,
// and DecisionResult, the outcome type of every pure Decide function.
//
// Nothing in here performs I/O. The imperative shell (see package shell) maps
// events to and from the event store and runs the Query, Decide, Append cycle.
package core
