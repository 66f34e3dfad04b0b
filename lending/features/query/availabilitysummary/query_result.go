package availabilitysummary

import (
	"github.com/AntonStoeckl/library-lending/lending/core"
)

type CategoryAvailability struct {
	Category        core.CategoryString
	AvailableCopies int
	TotalCopies     int
}

// AvailabilitySummary is sorted by category, removed books are not counted.
type AvailabilitySummary struct {
	Categories     []CategoryAvailability
	SequenceNumber uint
}

func (r AvailabilitySummary) GetSequenceNumber() uint {
	return r.SequenceNumber
}
