package httpapi

import (
	"net/http"

	"github.com/AntonStoeckl/library-lending/lending/features/query/borroweractivity"
	"github.com/AntonStoeckl/library-lending/lending/features/query/topborrowedbooks"
)

func (a *API) topBorrowedBooks(w http.ResponseWriter, r *http.Request) {
	limit, err := intParam(r, "limit")
	if err != nil {
		a.writeError(r.Context(), w, err)
		return
	}

	query := topborrowedbooks.BuildQuery(limit)

	result, err := a.handlers.TopBorrowedBooks.Handle(r.Context(), query)
	if err != nil {
		a.writeError(r.Context(), w, err)
		return
	}

	writeJSON(w, http.StatusOK, toBorrowedBookResponses(result.Top(query.Limit)))
}

func (a *API) borrowerActivity(w http.ResponseWriter, r *http.Request) {
	result, err := a.handlers.BorrowerActivity.Handle(r.Context(), borroweractivity.BuildQuery(a.now()))
	if err != nil {
		a.writeError(r.Context(), w, err)
		return
	}

	writeJSON(w, http.StatusOK, toBorrowerStatsResponses(result.Borrowers))
}
