package core

import (
	"github.com/shopspring/decimal"
)

// DefaultFinePerDay applies to every category without a fine policy.
var DefaultFinePerDay = decimal.RequireFromString("5.00")

// DaysLate is the number of whole days returnDate lies after dueDate, 0 for on-time returns.
func DaysLate(dueDate Day, returnDate Day) int {
	if days := DaysBetween(dueDate, returnDate); days > 0 {
		return days
	}

	return 0
}

// ComputeFine multiplies the daily rate by the days late, rounded to cents.
func ComputeFine(finePerDay decimal.Decimal, dueDate Day, returnDate Day) decimal.Decimal {
	daysLate := DaysLate(dueDate, returnDate)
	if daysLate == 0 {
		return decimal.Zero
	}

	return finePerDay.Mul(decimal.NewFromInt(int64(daysLate))).Round(2)
}
