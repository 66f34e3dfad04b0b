// Package updatebook changes the details and the total number of copies of a book.
package updatebook
