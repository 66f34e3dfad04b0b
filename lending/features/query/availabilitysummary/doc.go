// Package availabilitysummary sums available and total copies per category.
package availabilitysummary
