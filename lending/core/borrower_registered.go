package core

import (
	"strings"
	"time"
)

const BorrowerRegisteredEventType = "BorrowerRegistered"

// BorrowerRegistered creates a borrower. Email is stored normalized, see NormalizeEmail.
type BorrowerRegistered struct {
	BorrowerID BorrowerIDString
	Name       string
	Email      string
	Tier       MembershipTier
	OccurredAt OccurredAt
}

func BuildBorrowerRegistered(
	borrowerID BorrowerIDString,
	name string,
	email string,
	tier MembershipTier,
	occurredAt time.Time,
) BorrowerRegistered {

	return BorrowerRegistered{
		BorrowerID: borrowerID,
		Name:       name,
		Email:      NormalizeEmail(email),
		Tier:       tier,
		OccurredAt: ToOccurredAt(occurredAt),
	}
}

func (e BorrowerRegistered) EventType() string {
	return BorrowerRegisteredEventType
}

func (e BorrowerRegistered) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// NormalizeEmail trims and lowercases, uniqueness is checked on the result.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
