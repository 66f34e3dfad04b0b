// Package catalog pages through the non-removed books.
//
// Books can be filtered by category and by availability and sorted by title, author, category or
// available copies. Ties keep the order in which books were added.
package catalog
