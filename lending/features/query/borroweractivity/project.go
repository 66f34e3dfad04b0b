package borroweractivity

import (
	"slices"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/AntonStoeckl/library-lending/eventstore"
	"github.com/AntonStoeckl/library-lending/lending/core"
	"github.com/AntonStoeckl/library-lending/lending/readmodel"
)

// Project lists every registered borrower, the most active first.
func Project(history core.DomainEvents, query Query, maxSeq uint, _ ...BorrowerActivity) BorrowerActivity {
	library := readmodel.ProjectLibrary(history)
	stats := make(map[core.BorrowerIDString]*BorrowerStats, len(library.Borrowers))

	for borrowerID, borrower := range library.Borrowers {
		stats[borrowerID] = &BorrowerStats{
			BorrowerID: borrowerID,
			Name:       borrower.Name,
			Tier:       borrower.Tier,
			TotalFines: decimal.Zero,
		}
	}

	for _, record := range library.RecordsInOrder() {
		entry, ok := stats[record.BorrowerID]
		if !ok {
			continue
		}

		entry.TotalBorrowed++
		entry.TotalFines = entry.TotalFines.Add(record.FineAmount)

		if record.IsOpen() {
			entry.CurrentlyBorrowed++
		}

		if record.IsOverdue(query.AsOf) {
			entry.OverdueCount++
		}
	}

	borrowers := make([]BorrowerStats, 0, len(stats))
	for _, entry := range stats {
		borrowers = append(borrowers, *entry)
	}

	slices.SortFunc(borrowers, func(a, b BorrowerStats) int {
		if a.TotalBorrowed != b.TotalBorrowed {
			return b.TotalBorrowed - a.TotalBorrowed
		}

		return strings.Compare(a.BorrowerID, b.BorrowerID)
	})

	return BorrowerActivity{Borrowers: borrowers, SequenceNumber: maxSeq}
}

func BuildEventFilter(_ Query) eventstore.Filter {
	return eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf(
			core.BorrowerRegisteredEventType,
			core.MembershipTierChangedEventType,
			core.BookBorrowedEventType,
			core.BookReturnedEventType,
		).
		Finalize()
}
