package httpapi

import (
	"github.com/shopspring/decimal"
)

type addBookRequest struct {
	BookID   string `json:"bookId"   validate:"omitempty,max=64"`
	Title    string `json:"title"    validate:"required,max=200"`
	Author   string `json:"author"   validate:"required,max=200"`
	Category string `json:"category" validate:"required,max=100"`
	Copies   int    `json:"copies"   validate:"required,min=1"`
}

type updateBookRequest struct {
	Title       string `json:"title"       validate:"required,max=200"`
	Author      string `json:"author"      validate:"required,max=200"`
	Category    string `json:"category"    validate:"required,max=100"`
	TotalCopies int    `json:"totalCopies" validate:"min=0"`
}

type registerBorrowerRequest struct {
	BorrowerID string `json:"borrowerId" validate:"omitempty,max=64"`
	Name       string `json:"name"       validate:"required,max=200"`
	Email      string `json:"email"      validate:"required,email"`
	Tier       string `json:"tier"       validate:"required"`
}

type changeTierRequest struct {
	Tier string `json:"tier" validate:"required"`
}

type borrowRequest struct {
	BookID     string `json:"bookId"     validate:"required"`
	BorrowerID string `json:"borrowerId" validate:"required"`
}

// The rate is not validated here, the command rejects negative rates.
type setFinePolicyRequest struct {
	FinePerDay decimal.Decimal `json:"finePerDay"`
}
