package changemembershiptier

import (
	"time"

	"github.com/AntonStoeckl/library-lending/lending/core"
)

const (
	commandType = "ChangeMembershipTier"
)

type Command struct {
	BorrowerID core.BorrowerIDString
	Tier       core.MembershipTier
	OccurredAt core.OccurredAt
}

func (c Command) CommandType() string {
	return commandType
}

func BuildCommand(borrowerID core.BorrowerIDString, tier core.MembershipTier, occurredAt time.Time) Command {
	return Command{
		BorrowerID: borrowerID,
		Tier:       tier,
		OccurredAt: core.ToOccurredAt(occurredAt),
	}
}
