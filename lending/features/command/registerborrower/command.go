package registerborrower

import (
	"strings"
	"time"

	"github.com/AntonStoeckl/library-lending/lending/core"
)

const (
	commandType = "RegisterBorrower"
)

type Command struct {
	BorrowerID core.BorrowerIDString
	Name       string
	Email      string
	Tier       core.MembershipTier
	OccurredAt core.OccurredAt
}

func (c Command) CommandType() string {
	return commandType
}

func BuildCommand(
	borrowerID core.BorrowerIDString,
	name string,
	email string,
	tier core.MembershipTier,
	occurredAt time.Time,
) Command {

	return Command{
		BorrowerID: borrowerID,
		Name:       strings.TrimSpace(name),
		Email:      core.NormalizeEmail(email),
		Tier:       tier,
		OccurredAt: core.ToOccurredAt(occurredAt),
	}
}
