// Package changemembershiptier moves a borrower to another membership tier.
// The new borrow limit applies to later borrows, open records are not touched.
package changemembershiptier
