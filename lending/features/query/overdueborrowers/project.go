package overdueborrowers

import (
	"slices"
	"strings"

	"github.com/AntonStoeckl/library-lending/eventstore"
	"github.com/AntonStoeckl/library-lending/lending/core"
	"github.com/AntonStoeckl/library-lending/lending/readmodel"
)

func Project(history core.DomainEvents, query Query, maxSeq uint, _ ...OverdueBorrowers) OverdueBorrowers {
	library := readmodel.ProjectLibrary(history)
	byBorrower := make(map[core.BorrowerIDString]*OverdueBorrower)

	for _, record := range library.OverdueRecords(query.AsOf) {
		entry, ok := byBorrower[record.BorrowerID]
		if !ok {
			entry = &OverdueBorrower{BorrowerID: record.BorrowerID, OldestDueDate: record.DueDate}
			if borrower, known := library.Borrowers[record.BorrowerID]; known {
				entry.Name = borrower.Name
				entry.Email = borrower.Email
			}

			byBorrower[record.BorrowerID] = entry
		}

		entry.OverdueCount++

		if record.DueDate.Before(entry.OldestDueDate) {
			entry.OldestDueDate = record.DueDate
		}
	}

	borrowers := make([]OverdueBorrower, 0, len(byBorrower))
	for _, entry := range byBorrower {
		borrowers = append(borrowers, *entry)
	}

	slices.SortFunc(borrowers, func(a, b OverdueBorrower) int {
		if c := a.OldestDueDate.Compare(b.OldestDueDate); c != 0 {
			return c
		}

		return strings.Compare(a.BorrowerID, b.BorrowerID)
	})

	return OverdueBorrowers{Borrowers: borrowers, SequenceNumber: maxSeq}
}

func BuildEventFilter(_ Query) eventstore.Filter {
	return eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf(
			core.BorrowerRegisteredEventType,
			core.BookBorrowedEventType,
			core.BookReturnedEventType,
		).
		Finalize()
}
