// Package borrowerhistory lists all borrow records of one borrower, open and closed, newest first.
package borrowerhistory
