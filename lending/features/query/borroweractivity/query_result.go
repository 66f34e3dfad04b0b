package borroweractivity

import (
	"github.com/shopspring/decimal"

	"github.com/AntonStoeckl/library-lending/lending/core"
)

type BorrowerStats struct {
	BorrowerID        core.BorrowerIDString
	Name              string
	Tier              core.MembershipTier
	TotalBorrowed     int
	CurrentlyBorrowed int
	OverdueCount      int
	TotalFines        decimal.Decimal
}

type BorrowerActivity struct {
	Borrowers      []BorrowerStats
	SequenceNumber uint
}

func (r BorrowerActivity) GetSequenceNumber() uint {
	return r.SequenceNumber
}
