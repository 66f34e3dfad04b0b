package core

import (
	"time"
)

const MembershipTierChangedEventType = "MembershipTierChanged"

type MembershipTierChanged struct {
	BorrowerID BorrowerIDString
	Tier       MembershipTier
	OccurredAt OccurredAt
}

func BuildMembershipTierChanged(borrowerID BorrowerIDString, tier MembershipTier, occurredAt time.Time) MembershipTierChanged {
	return MembershipTierChanged{
		BorrowerID: borrowerID,
		Tier:       tier,
		OccurredAt: ToOccurredAt(occurredAt),
	}
}

func (e MembershipTierChanged) EventType() string {
	return MembershipTierChangedEventType
}

func (e MembershipTierChanged) HasOccurredAt() time.Time {
	return e.OccurredAt
}
