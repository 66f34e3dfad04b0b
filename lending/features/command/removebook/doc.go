// Package removebook soft-deletes a book. Borrow records of the book are kept.
package removebook
