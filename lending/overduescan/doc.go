// Package overduescan reports open borrow records whose due date has passed.
//
// The scan only reads. It logs the number of overdue records and each record at info level
// and changes no state.
package overduescan
