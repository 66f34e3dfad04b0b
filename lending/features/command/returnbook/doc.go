// Package returnbook closes the open borrow record of a (book, borrower) pair.
//
// The fine is the fine per day of the book's category times the days past the due date,
// with the default rate when the category has no policy. Returning without an open record is
// rejected with NoActiveBorrowRecord, so a copy can not be returned twice.
package returnbook
