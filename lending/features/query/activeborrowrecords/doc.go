// Package activeborrowrecords lists all open borrow records, oldest first.
package activeborrowrecords
