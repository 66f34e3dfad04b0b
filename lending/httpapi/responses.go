package httpapi

import (
	"time"

	"github.com/AntonStoeckl/library-lending/lending/features/query/availabilitysummary"
	"github.com/AntonStoeckl/library-lending/lending/features/query/borroweractivity"
	"github.com/AntonStoeckl/library-lending/lending/features/query/finepolicies"
	"github.com/AntonStoeckl/library-lending/lending/features/query/overdueborrowers"
	"github.com/AntonStoeckl/library-lending/lending/features/query/topborrowedbooks"
	"github.com/AntonStoeckl/library-lending/lending/readmodel"
)

const dateLayout = time.DateOnly

type borrowRecordResponse struct {
	RecordID     string  `json:"recordId"`
	BookID       string  `json:"bookId"`
	BookTitle    string  `json:"bookTitle"`
	BorrowerID   string  `json:"borrowerId"`
	BorrowerName string  `json:"borrowerName"`
	BorrowDate   string  `json:"borrowDate"`
	DueDate      string  `json:"dueDate"`
	ReturnDate   *string `json:"returnDate"`
	FineAmount   string  `json:"fineAmount"`
	Active       bool    `json:"active"`
	Overdue      bool    `json:"overdue"`
}

type recordsResponse struct {
	Records []borrowRecordResponse `json:"records"`
	Count   int                    `json:"count"`
}

type bookResponse struct {
	BookID          string `json:"bookId"`
	Title           string `json:"title"`
	Author          string `json:"author"`
	Category        string `json:"category"`
	TotalCopies     int    `json:"totalCopies"`
	AvailableCopies int    `json:"availableCopies"`
	IsAvailable     bool   `json:"isAvailable"`
}

type catalogResponse struct {
	Books []bookResponse `json:"books"`
	Total int            `json:"total"`
	Page  int            `json:"page"`
	Size  int            `json:"size"`
}

type similarBooksResponse struct {
	BookID string         `json:"bookId"`
	Books  []bookResponse `json:"books"`
}

type categoryAvailabilityResponse struct {
	Category        string `json:"category"`
	AvailableCopies int    `json:"availableCopies"`
	TotalCopies     int    `json:"totalCopies"`
}

type borrowerHistoryResponse struct {
	BorrowerID   string                 `json:"borrowerId"`
	BorrowerName string                 `json:"borrowerName"`
	Records      []borrowRecordResponse `json:"records"`
}

type overdueBorrowerResponse struct {
	BorrowerID    string `json:"borrowerId"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	OverdueCount  int    `json:"overdueCount"`
	OldestDueDate string `json:"oldestDueDate"`
}

type finePolicyResponse struct {
	Category   string `json:"category"`
	FinePerDay string `json:"finePerDay"`
}

type finePoliciesResponse struct {
	Policies          []finePolicyResponse `json:"policies"`
	DefaultFinePerDay string               `json:"defaultFinePerDay"`
}

type borrowedBookResponse struct {
	BookID        string `json:"bookId"`
	Title         string `json:"title"`
	Author        string `json:"author"`
	TimesBorrowed int    `json:"timesBorrowed"`
}

type borrowerStatsResponse struct {
	BorrowerID        string `json:"borrowerId"`
	Name              string `json:"name"`
	Tier              string `json:"tier"`
	TotalBorrowed     int    `json:"totalBorrowed"`
	CurrentlyBorrowed int    `json:"currentlyBorrowed"`
	OverdueCount      int    `json:"overdueCount"`
	TotalFines        string `json:"totalFines"`
}

type createdResponse struct {
	ID string `json:"id"`
}

func toRecordResponse(view readmodel.BorrowRecordView) borrowRecordResponse {
	response := borrowRecordResponse{
		RecordID:     view.RecordID,
		BookID:       view.BookID,
		BookTitle:    view.BookTitle,
		BorrowerID:   view.BorrowerID,
		BorrowerName: view.BorrowerName,
		BorrowDate:   view.BorrowDate.Format(dateLayout),
		DueDate:      view.DueDate.Format(dateLayout),
		FineAmount:   view.FineAmount.StringFixed(2),
		Active:       view.Active,
		Overdue:      view.Overdue,
	}

	if view.ReturnDate != nil {
		returnDate := view.ReturnDate.Format(dateLayout)
		response.ReturnDate = &returnDate
	}

	return response
}

func toRecordResponses(views []readmodel.BorrowRecordView) []borrowRecordResponse {
	responses := make([]borrowRecordResponse, 0, len(views))
	for _, view := range views {
		responses = append(responses, toRecordResponse(view))
	}

	return responses
}

func toBookResponses(books []readmodel.BookSummary) []bookResponse {
	responses := make([]bookResponse, 0, len(books))
	for _, b := range books {
		responses = append(responses, bookResponse{
			BookID:          b.BookID,
			Title:           b.Title,
			Author:          b.Author,
			Category:        b.Category,
			TotalCopies:     b.TotalCopies,
			AvailableCopies: b.AvailableCopies,
			IsAvailable:     b.IsAvailable,
		})
	}

	return responses
}

func toCategoryResponses(categories []availabilitysummary.CategoryAvailability) []categoryAvailabilityResponse {
	responses := make([]categoryAvailabilityResponse, 0, len(categories))
	for _, c := range categories {
		responses = append(responses, categoryAvailabilityResponse{
			Category:        c.Category,
			AvailableCopies: c.AvailableCopies,
			TotalCopies:     c.TotalCopies,
		})
	}

	return responses
}

func toOverdueBorrowerResponses(borrowers []overdueborrowers.OverdueBorrower) []overdueBorrowerResponse {
	responses := make([]overdueBorrowerResponse, 0, len(borrowers))
	for _, b := range borrowers {
		responses = append(responses, overdueBorrowerResponse{
			BorrowerID:    b.BorrowerID,
			Name:          b.Name,
			Email:         b.Email,
			OverdueCount:  b.OverdueCount,
			OldestDueDate: b.OldestDueDate.Format(dateLayout),
		})
	}

	return responses
}

func toFinePoliciesResponse(result finepolicies.FinePolicies) finePoliciesResponse {
	policies := make([]finePolicyResponse, 0, len(result.Policies))
	for _, p := range result.Policies {
		policies = append(policies, finePolicyResponse{Category: p.Category, FinePerDay: p.FinePerDay.StringFixed(2)})
	}

	return finePoliciesResponse{Policies: policies, DefaultFinePerDay: result.DefaultFinePerDay.StringFixed(2)}
}

func toBorrowedBookResponses(books []topborrowedbooks.BorrowedBook) []borrowedBookResponse {
	responses := make([]borrowedBookResponse, 0, len(books))
	for _, b := range books {
		responses = append(responses, borrowedBookResponse{
			BookID:        b.BookID,
			Title:         b.Title,
			Author:        b.Author,
			TimesBorrowed: b.TimesBorrowed,
		})
	}

	return responses
}

func toBorrowerStatsResponses(stats []borroweractivity.BorrowerStats) []borrowerStatsResponse {
	responses := make([]borrowerStatsResponse, 0, len(stats))
	for _, s := range stats {
		responses = append(responses, borrowerStatsResponse{
			BorrowerID:        s.BorrowerID,
			Name:              s.Name,
			Tier:              s.Tier.String(),
			TotalBorrowed:     s.TotalBorrowed,
			CurrentlyBorrowed: s.CurrentlyBorrowed,
			OverdueCount:      s.OverdueCount,
			TotalFines:        s.TotalFines.StringFixed(2),
		})
	}

	return responses
}
