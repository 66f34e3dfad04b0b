// Package overduerecords lists the open borrow records whose due date has passed.
//
// It is the read side of the overdue scan and never changes state.
package overduerecords
