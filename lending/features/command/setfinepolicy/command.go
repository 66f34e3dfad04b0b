package setfinepolicy

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/AntonStoeckl/library-lending/lending/core"
)

const (
	commandType = "SetFinePolicy"
)

type Command struct {
	Category   core.CategoryString
	FinePerDay decimal.Decimal
	OccurredAt core.OccurredAt
}

func (c Command) CommandType() string {
	return commandType
}

func BuildCommand(category core.CategoryString, finePerDay decimal.Decimal, occurredAt time.Time) Command {
	return Command{
		Category:   strings.TrimSpace(category),
		FinePerDay: finePerDay.Round(2),
		OccurredAt: core.ToOccurredAt(occurredAt),
	}
}
