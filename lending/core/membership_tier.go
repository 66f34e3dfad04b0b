package core

import (
	"strings"
)

// MembershipTier decides how many books a borrower may hold at the same time.
type MembershipTier string

const (
	TierBasic   MembershipTier = "BASIC"
	TierPremium MembershipTier = "PREMIUM"
)

var borrowLimits = map[MembershipTier]int{
	TierBasic:   2,
	TierPremium: 5,
}

// BorrowLimit is the maximum number of open borrow records, 0 for an unknown tier.
func (t MembershipTier) BorrowLimit() int {
	return borrowLimits[t]
}

func (t MembershipTier) IsValid() bool {
	_, ok := borrowLimits[t]

	return ok
}

func (t MembershipTier) String() string {
	return string(t)
}

// ParseMembershipTier accepts the tier names case-insensitively.
func ParseMembershipTier(s string) (MembershipTier, error) {
	tier := MembershipTier(strings.ToUpper(strings.TrimSpace(s)))
	if !tier.IsValid() {
		return "", InvalidInput("membership tier", "unknown membership tier: "+s)
	}

	return tier, nil
}
