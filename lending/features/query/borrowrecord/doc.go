// Package borrowrecord reads one borrow record of a (book, borrower) pair as a view,
// joined with the book title and the borrower name.
//
// Without a RecordID the most recently opened record of the pair is returned, which is how the
// engine reads back the record a Return just closed.
package borrowrecord
