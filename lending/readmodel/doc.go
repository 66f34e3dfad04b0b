// Package readmodel folds domain events into the catalog, borrower and borrow record state
// that the query slices shape into their results.
//
// Derived values (availability, borrow limits, overdue) are computed when read, never stored.
package readmodel
