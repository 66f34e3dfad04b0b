package core

// Inventory holds the copy counters of one book.
// The counters only change through the methods below, which keep 0 <= AvailableCopies <= TotalCopies.
type Inventory struct {
	TotalCopies     int
	AvailableCopies int
}

func NewInventory(totalCopies int) Inventory {
	if totalCopies < 0 {
		totalCopies = 0
	}

	return Inventory{TotalCopies: totalCopies, AvailableCopies: totalCopies}
}

// DecrementAvailable is a no-op when no copy is available.
func (i Inventory) DecrementAvailable() Inventory {
	if i.AvailableCopies > 0 {
		i.AvailableCopies--
	}

	return i
}

// IncrementAvailable is a no-op when all copies are available.
func (i Inventory) IncrementAvailable() Inventory {
	if i.AvailableCopies < i.TotalCopies {
		i.AvailableCopies++
	}

	return i
}

// AddCopies adds new copies to both counters.
func (i Inventory) AddCopies(copies int) Inventory {
	if copies <= 0 {
		return i
	}

	i.TotalCopies += copies
	i.AvailableCopies += copies

	return i
}

// WithTotal changes the total and shifts the available copies by the same difference, clamped to the valid range.
func (i Inventory) WithTotal(totalCopies int) Inventory {
	if totalCopies < 0 {
		totalCopies = 0
	}

	i.AvailableCopies += totalCopies - i.TotalCopies
	i.TotalCopies = totalCopies

	switch {
	case i.AvailableCopies < 0:
		i.AvailableCopies = 0
	case i.AvailableCopies > i.TotalCopies:
		i.AvailableCopies = i.TotalCopies
	}

	return i
}

func (i Inventory) IsAvailable() bool {
	return i.AvailableCopies > 0
}

func (i Inventory) BorrowedCopies() int {
	return i.TotalCopies - i.AvailableCopies
}
