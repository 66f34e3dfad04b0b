// Package topborrowedbooks ranks books by how often they were borrowed.
//
// The projection keeps the full ranking so that it can be continued from a snapshot with only the
// events appended since. The requested limit is applied by Top, it does not change the projection.
package topborrowedbooks
