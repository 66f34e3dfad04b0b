// Package borroweractivity aggregates lending statistics per borrower.
package borroweractivity
