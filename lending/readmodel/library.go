package readmodel

import (
	"slices"
	"time"

	"github.com/AntonStoeckl/library-lending/lending/core"
)

// Book is the current state of one catalog entry.
type Book struct {
	BookID        core.BookIDString
	Title         string
	Author        string
	Category      core.CategoryString
	Inventory     core.Inventory
	Deleted       bool
	TimesBorrowed int
}

func (b Book) IsAvailable() bool {
	return !b.Deleted && b.Inventory.IsAvailable()
}

// Borrower is the current state of one registered borrower.
type Borrower struct {
	BorrowerID core.BorrowerIDString
	Name       string
	Email      string
	Tier       core.MembershipTier
}

func (b Borrower) MaxBorrowLimit() int {
	return b.Tier.BorrowLimit()
}

// Library is the state folded from whatever events a query selected.
// Events about unknown books or borrowers still create records, the names stay empty.
type Library struct {
	Books        map[core.BookIDString]*Book
	Borrowers    map[core.BorrowerIDString]*Borrower
	Records      map[core.RecordIDString]core.BorrowRecord
	FinePolicies core.FinePolicies

	bookOrder   []core.BookIDString
	recordOrder []core.RecordIDString
}

func NewLibrary() *Library {
	return &Library{
		Books:        make(map[core.BookIDString]*Book),
		Borrowers:    make(map[core.BorrowerIDString]*Borrower),
		Records:      make(map[core.RecordIDString]core.BorrowRecord),
		FinePolicies: make(core.FinePolicies),
	}
}

// ProjectLibrary folds history in order.
func ProjectLibrary(history core.DomainEvents) *Library {
	library := NewLibrary()

	for _, event := range history {
		library.Apply(event)
	}

	return library
}

// Apply folds one event.
func (l *Library) Apply(event core.DomainEvent) { //nolint:gocognit
	switch e := event.(type) {
	case core.BookAddedToCatalog:
		if _, ok := l.Books[e.BookID]; !ok {
			l.bookOrder = append(l.bookOrder, e.BookID)
		}

		l.Books[e.BookID] = &Book{
			BookID:    e.BookID,
			Title:     e.Title,
			Author:    e.Author,
			Category:  e.Category,
			Inventory: core.NewInventory(e.TotalCopies),
		}

	case core.BookCopiesAdded:
		if book, ok := l.Books[e.BookID]; ok {
			book.Inventory = book.Inventory.AddCopies(e.Copies)
		}

	case core.BookDetailsUpdated:
		if book, ok := l.Books[e.BookID]; ok {
			book.Title = e.Title
			book.Author = e.Author
			book.Category = e.Category
			book.Inventory = book.Inventory.WithTotal(e.TotalCopies)
		}

	case core.BookRemovedFromCatalog:
		if book, ok := l.Books[e.BookID]; ok {
			book.Deleted = true
		}

	case core.BorrowerRegistered:
		l.Borrowers[e.BorrowerID] = &Borrower{
			BorrowerID: e.BorrowerID,
			Name:       e.Name,
			Email:      e.Email,
			Tier:       e.Tier,
		}

	case core.MembershipTierChanged:
		if borrower, ok := l.Borrowers[e.BorrowerID]; ok {
			borrower.Tier = e.Tier
		}

	case core.FinePolicySet:
		l.FinePolicies.Apply(e)

	case core.BookBorrowed:
		if _, ok := l.Records[e.RecordID]; ok {
			return
		}

		l.Records[e.RecordID] = core.BorrowRecordFrom(e)
		l.recordOrder = append(l.recordOrder, e.RecordID)

		if book, ok := l.Books[e.BookID]; ok {
			book.Inventory = book.Inventory.DecrementAvailable()
			book.TimesBorrowed++
		}

	case core.BookReturned:
		record, ok := l.Records[e.RecordID]
		if !ok || !record.IsOpen() {
			return
		}

		l.Records[e.RecordID] = record.Close(e)

		if book, ok := l.Books[e.BookID]; ok {
			book.Inventory = book.Inventory.IncrementAvailable()
		}
	}
}

// ActiveBook returns the book unless it is unknown or removed.
func (l *Library) ActiveBook(bookID core.BookIDString) (Book, bool) {
	book, ok := l.Books[bookID]
	if !ok || book.Deleted {
		return Book{}, false
	}

	return *book, true
}

// ActiveBooks returns the non-removed books in the order they were added.
func (l *Library) ActiveBooks() []Book {
	books := make([]Book, 0, len(l.bookOrder))

	for _, bookID := range l.bookOrder {
		if book, ok := l.ActiveBook(bookID); ok {
			books = append(books, book)
		}
	}

	return books
}

// RecordsInOrder returns all records in the order they were opened.
func (l *Library) RecordsInOrder() []core.BorrowRecord {
	records := make([]core.BorrowRecord, 0, len(l.recordOrder))

	for _, recordID := range l.recordOrder {
		records = append(records, l.Records[recordID])
	}

	return records
}

// OpenRecords returns the open records in the order they were opened.
func (l *Library) OpenRecords() []core.BorrowRecord {
	return slices.DeleteFunc(l.RecordsInOrder(), func(r core.BorrowRecord) bool { return !r.IsOpen() })
}

// OverdueRecords returns the open records whose due date lies before today.
func (l *Library) OverdueRecords(today time.Time) []core.BorrowRecord {
	return slices.DeleteFunc(l.RecordsInOrder(), func(r core.BorrowRecord) bool { return !r.IsOverdue(today) })
}

// LatestRecordOf returns the most recently opened record of the pair.
func (l *Library) LatestRecordOf(bookID core.BookIDString, borrowerID core.BorrowerIDString) (core.BorrowRecord, bool) {
	for i := len(l.recordOrder) - 1; i >= 0; i-- {
		record := l.Records[l.recordOrder[i]]
		if record.BookID == bookID && record.BorrowerID == borrowerID {
			return record, true
		}
	}

	return core.BorrowRecord{}, false
}

// View joins a record with its book title and borrower name.
func (l *Library) View(record core.BorrowRecord, today time.Time) BorrowRecordView {
	view := BorrowRecordView{
		RecordID:   record.RecordID,
		BookID:     record.BookID,
		BorrowerID: record.BorrowerID,
		BorrowDate: record.BorrowDate,
		DueDate:    record.DueDate,
		ReturnDate: record.ReturnDate,
		FineAmount: record.FineAmount,
		Active:     record.IsOpen(),
		Overdue:    record.IsOverdue(today),
	}

	if book, ok := l.Books[record.BookID]; ok {
		view.BookTitle = book.Title
	}

	if borrower, ok := l.Borrowers[record.BorrowerID]; ok {
		view.BorrowerName = borrower.Name
	}

	return view
}

// Views maps View over records.
func (l *Library) Views(records []core.BorrowRecord, today time.Time) []BorrowRecordView {
	views := make([]BorrowRecordView, 0, len(records))

	for _, record := range records {
		views = append(views, l.View(record, today))
	}

	return views
}

// BookSummary is a catalog entry as callers see it.
type BookSummary struct {
	BookID          core.BookIDString
	Title           string
	Author          string
	Category        core.CategoryString
	TotalCopies     int
	AvailableCopies int
	IsAvailable     bool
}

func (b Book) Summary() BookSummary {
	return BookSummary{
		BookID:          b.BookID,
		Title:           b.Title,
		Author:          b.Author,
		Category:        b.Category,
		TotalCopies:     b.Inventory.TotalCopies,
		AvailableCopies: b.Inventory.AvailableCopies,
		IsAvailable:     b.IsAvailable(),
	}
}
