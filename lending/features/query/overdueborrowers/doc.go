// Package overdueborrowers lists the borrowers holding at least one overdue book.
package overdueborrowers
