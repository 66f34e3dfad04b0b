// Package registerborrower registers a borrower with a unique email address and a membership tier.
//
// The consistency boundary is every registration with the same BorrowerID or the same (normalized)
// email, so two concurrent registrations of one email can not both succeed.
package registerborrower
