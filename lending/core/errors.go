package core

import (
	"errors"
	"fmt"
)

// Error kinds. Every BusinessError unwraps to exactly one of them.
var (
	ErrNotFound      = errors.New("not found")
	ErrLimitExceeded = errors.New("limit exceeded")
	ErrUnavailable   = errors.New("unavailable")
	ErrInvalidState  = errors.New("invalid state")
	ErrAlreadyExists = errors.New("already exists")
	ErrInvalidInput  = errors.New("invalid input")
)

const (
	ReasonBorrowerNotFound       = "BorrowerNotFound"
	ReasonBookNotFound           = "BookNotFound"
	ReasonBorrowLimitExceeded    = "BorrowLimitExceeded"
	ReasonBookNotAvailable       = "BookNotAvailable"
	ReasonAlreadyBorrowed        = "AlreadyBorrowed"
	ReasonNoActiveBorrowRecord   = "NoActiveBorrowRecord"
	ReasonBorrowRecordNotFound   = "BorrowRecordNotFound"
	ReasonBookHasOpenRecords     = "BookHasOpenRecords"
	ReasonTotalBelowBorrowed     = "TotalCopiesBelowBorrowedCopies"
	ReasonEmailAlreadyRegistered = "EmailAlreadyRegistered"
	ReasonBorrowerAlreadyExists  = "BorrowerAlreadyExists"
	ReasonInvalidInput           = "InvalidInput"
)

// BusinessError is a rejected command or a failed lookup.
// Limit is only set for ReasonBorrowLimitExceeded.
type BusinessError struct {
	Kind     error
	Reason   string
	EntityID string
	Limit    int
	Detail   string
}

func (e *BusinessError) Error() string {
	msg := e.Reason
	if e.EntityID != "" {
		msg += " [" + e.EntityID + "]"
	}

	if e.Reason == ReasonBorrowLimitExceeded {
		msg += fmt.Sprintf(": limit %d reached", e.Limit)
	}

	if e.Detail != "" {
		msg += ": " + e.Detail
	}

	return msg
}

func (e *BusinessError) Unwrap() error {
	return e.Kind
}

// KindName is the lowercase kind used in API error bodies.
func KindName(err error) string {
	switch {
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrLimitExceeded):
		return "limit_exceeded"
	case errors.Is(err, ErrUnavailable):
		return "unavailable"
	case errors.Is(err, ErrInvalidState):
		return "invalid_state"
	case errors.Is(err, ErrAlreadyExists):
		return "already_exists"
	case errors.Is(err, ErrInvalidInput):
		return "invalid_input"
	default:
		return "internal"
	}
}

func BorrowerNotFound(borrowerID BorrowerIDString) *BusinessError {
	return &BusinessError{Kind: ErrNotFound, Reason: ReasonBorrowerNotFound, EntityID: borrowerID}
}

func BookNotFound(bookID BookIDString) *BusinessError {
	return &BusinessError{Kind: ErrNotFound, Reason: ReasonBookNotFound, EntityID: bookID}
}

func BorrowRecordNotFound(recordID RecordIDString) *BusinessError {
	return &BusinessError{Kind: ErrNotFound, Reason: ReasonBorrowRecordNotFound, EntityID: recordID}
}

func BorrowLimitExceeded(borrowerID BorrowerIDString, limit int) *BusinessError {
	return &BusinessError{Kind: ErrLimitExceeded, Reason: ReasonBorrowLimitExceeded, EntityID: borrowerID, Limit: limit}
}

func BookNotAvailable(bookID BookIDString) *BusinessError {
	return &BusinessError{Kind: ErrUnavailable, Reason: ReasonBookNotAvailable, EntityID: bookID}
}

func AlreadyBorrowed(bookID BookIDString) *BusinessError {
	return &BusinessError{Kind: ErrInvalidState, Reason: ReasonAlreadyBorrowed, EntityID: bookID}
}

func NoActiveBorrowRecord(bookID BookIDString, borrowerID BorrowerIDString) *BusinessError {
	return &BusinessError{
		Kind:     ErrInvalidState,
		Reason:   ReasonNoActiveBorrowRecord,
		EntityID: bookID,
		Detail:   "borrower " + borrowerID + " holds no open record",
	}
}

func BookHasOpenRecords(bookID BookIDString) *BusinessError {
	return &BusinessError{Kind: ErrInvalidState, Reason: ReasonBookHasOpenRecords, EntityID: bookID}
}

func TotalCopiesBelowBorrowed(bookID BookIDString, borrowed int) *BusinessError {
	return &BusinessError{
		Kind:     ErrInvalidState,
		Reason:   ReasonTotalBelowBorrowed,
		EntityID: bookID,
		Detail:   fmt.Sprintf("%d copies are borrowed", borrowed),
	}
}

func EmailAlreadyRegistered(email string) *BusinessError {
	return &BusinessError{Kind: ErrAlreadyExists, Reason: ReasonEmailAlreadyRegistered, EntityID: email}
}

func BorrowerAlreadyExists(borrowerID BorrowerIDString) *BusinessError {
	return &BusinessError{Kind: ErrAlreadyExists, Reason: ReasonBorrowerAlreadyExists, EntityID: borrowerID}
}

func InvalidInput(field string, detail string) *BusinessError {
	return &BusinessError{Kind: ErrInvalidInput, Reason: ReasonInvalidInput, EntityID: field, Detail: detail}
}
