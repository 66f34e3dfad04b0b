// Package setfinepolicy sets the fine per day late of a book category.
package setfinepolicy
