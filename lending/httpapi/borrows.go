package httpapi

import (
	"net/http"

	"github.com/AntonStoeckl/library-lending/lending/features/query/activeborrowrecords"
)

func (a *API) borrow(w http.ResponseWriter, r *http.Request) {
	var req borrowRequest
	if err := a.decodeAndValidate(w, r, &req); err != nil {
		a.writeError(r.Context(), w, err)
		return
	}

	record, err := a.handlers.Engine.Borrow(r.Context(), req.BookID, req.BorrowerID)
	if err != nil {
		a.writeError(r.Context(), w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toRecordResponse(record))
}

func (a *API) returnBook(w http.ResponseWriter, r *http.Request) {
	var req borrowRequest
	if err := a.decodeAndValidate(w, r, &req); err != nil {
		a.writeError(r.Context(), w, err)
		return
	}

	record, err := a.handlers.Engine.Return(r.Context(), req.BookID, req.BorrowerID)
	if err != nil {
		a.writeError(r.Context(), w, err)
		return
	}

	writeJSON(w, http.StatusOK, toRecordResponse(record))
}

func (a *API) activeBorrowRecords(w http.ResponseWriter, r *http.Request) {
	result, err := a.handlers.ActiveBorrowRecords.Handle(r.Context(), activeborrowrecords.BuildQuery(a.now()))
	if err != nil {
		a.writeError(r.Context(), w, err)
		return
	}

	writeJSON(w, http.StatusOK, recordsResponse{Records: toRecordResponses(result.Records), Count: result.Count})
}
