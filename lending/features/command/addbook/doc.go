// Package addbook adds a title to the catalog, or more copies of it.
//
// A book is identified by title and author: if a non-removed book with the same title and
// author exists, the copies are added to it, otherwise a new book is created with the BookID of
// the command. The handler reads in two steps, first the BookIDs that ever carried the title and
// author, then every catalog event of those books, so that renamed books are seen with their
// current details.
package addbook
