// Package borrowbook lends one copy of a book to a borrower.
//
// The checks run in a fixed order and the first failure wins: the borrower must exist, the book
// must exist and not be removed, the borrower must be below the borrow limit of their membership
// tier, a copy must be available, and the borrower must not already hold this book.
// A successful borrow appends one BookBorrowed event, a rejected one appends nothing.
//
// The consistency boundary covers every event carrying the BookID or the BorrowerID, so two
// concurrent borrows of the last copy can not both succeed: the second Append conflicts, the
// handler retries and then sees that no copy is left.
package borrowbook
