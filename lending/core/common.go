package core

import (
	"time"
)

// Instead of full value objects, identifiers are string aliases.

type BookIDString = string
type BorrowerIDString = string
type RecordIDString = string
type CategoryString = string

// OccurredAt is the moment an event happened.
type OccurredAt = time.Time

// Day is a calendar day, represented as midnight UTC.
type Day = time.Time

// LoanPeriodDays is the number of days between borrowing and the due date.
const LoanPeriodDays = 14

// ToOccurredAt normalizes to UTC with microsecond precision, the precision the event store keeps.
func ToOccurredAt(t time.Time) OccurredAt {
	return t.UTC().Truncate(time.Microsecond)
}

// ToDay returns the calendar day of t in UTC.
func ToDay(t time.Time) Day {
	y, m, d := t.UTC().Date()

	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DueDateFor returns the due date of a loan that starts on borrowDate.
func DueDateFor(borrowDate time.Time) Day {
	return ToDay(borrowDate).AddDate(0, 0, LoanPeriodDays)
}

// DaysBetween counts whole calendar days from "from" to "to", negative if "to" is earlier.
func DaysBetween(from time.Time, to time.Time) int {
	return int(ToDay(to).Sub(ToDay(from)).Hours() / 24)
}
