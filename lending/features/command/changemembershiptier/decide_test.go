package changemembershiptier_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/AntonStoeckl/library-lending/lending/core"
	"github.com/AntonStoeckl/library-lending/lending/features/command/changemembershiptier"
	. "github.com/AntonStoeckl/library-lending/testutil/helper" //nolint:revive
)

func Test_Decide(t *testing.T) {
	registered := core.DomainEvents{BorrowerRegistered("borrower-1", core.TierBasic)}

	testCases := []struct {
		description string
		history     core.DomainEvents
		tier        core.MembershipTier
		assertion   func(t *testing.T, result core.DecisionResult)
	}{
		{
			description: "upgrade",
			history:     registered,
			tier:        core.TierPremium,
			assertion: func(t *testing.T, result core.DecisionResult) {
				assert.Equal(t, core.BuildMembershipTierChanged("borrower-1", core.TierPremium, FixedTime), result.Event)
			},
		},
		{
			description: "same tier",
			history:     registered,
			tier:        core.TierBasic,
			assertion: func(t *testing.T, result core.DecisionResult) {
				assert.True(t, result.IsIdempotent())
			},
		},
		{
			description: "unknown borrower",
			history:     core.DomainEvents{},
			tier:        core.TierPremium,
			assertion: func(t *testing.T, result core.DecisionResult) {
				assert.ErrorIs(t, result.HasError(), core.ErrNotFound)
			},
		},
		{
			description: "unknown tier",
			history:     registered,
			tier:        "GOLD",
			assertion: func(t *testing.T, result core.DecisionResult) {
				assert.ErrorIs(t, result.HasError(), core.ErrInvalidInput)
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			tc.assertion(t, changemembershiptier.Decide(tc.history, changemembershiptier.BuildCommand("borrower-1", tc.tier, FixedTime)))
		})
	}
}
