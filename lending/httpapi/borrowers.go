package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/AntonStoeckl/library-lending/lending/core"
	"github.com/AntonStoeckl/library-lending/lending/features/command/changemembershiptier"
	"github.com/AntonStoeckl/library-lending/lending/features/command/registerborrower"
	"github.com/AntonStoeckl/library-lending/lending/features/query/borrowerhistory"
	"github.com/AntonStoeckl/library-lending/lending/features/query/overdueborrowers"
)

func (a *API) registerBorrower(w http.ResponseWriter, r *http.Request) {
	var req registerBorrowerRequest
	if err := a.decodeAndValidate(w, r, &req); err != nil {
		a.writeError(r.Context(), w, err)
		return
	}

	tier, err := core.ParseMembershipTier(req.Tier)
	if err != nil {
		a.writeError(r.Context(), w, err)
		return
	}

	borrowerID := req.BorrowerID
	if borrowerID == "" {
		borrowerID = a.newID()
	}

	command := registerborrower.BuildCommand(borrowerID, req.Name, req.Email, tier, a.now())

	result, err := a.handlers.RegisterBorrower.Handle(r.Context(), command)
	if err != nil {
		a.writeError(r.Context(), w, err)
		return
	}

	status := http.StatusCreated
	if result.Idempotent {
		status = http.StatusOK
	}

	writeJSON(w, status, createdResponse{ID: borrowerID})
}

func (a *API) changeMembershipTier(w http.ResponseWriter, r *http.Request) {
	var req changeTierRequest
	if err := a.decodeAndValidate(w, r, &req); err != nil {
		a.writeError(r.Context(), w, err)
		return
	}

	tier, err := core.ParseMembershipTier(req.Tier)
	if err != nil {
		a.writeError(r.Context(), w, err)
		return
	}

	command := changemembershiptier.BuildCommand(chi.URLParam(r, "id"), tier, a.now())

	if _, err = a.handlers.ChangeMembershipTier.Handle(r.Context(), command); err != nil {
		a.writeError(r.Context(), w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// borrowerHistory answers 404 only if nothing at all is known about the borrower.
func (a *API) borrowerHistory(w http.ResponseWriter, r *http.Request) {
	borrowerID := chi.URLParam(r, "id")

	result, err := a.handlers.BorrowerHistory.Handle(r.Context(), borrowerhistory.BuildQuery(borrowerID, a.now()))
	if err != nil {
		a.writeError(r.Context(), w, err)
		return
	}

	if !result.Found && len(result.Records) == 0 {
		a.writeError(r.Context(), w, core.BorrowerNotFound(borrowerID))
		return
	}

	writeJSON(w, http.StatusOK, borrowerHistoryResponse{
		BorrowerID:   result.BorrowerID,
		BorrowerName: result.BorrowerName,
		Records:      toRecordResponses(result.Records),
	})
}

func (a *API) overdueBorrowers(w http.ResponseWriter, r *http.Request) {
	result, err := a.handlers.OverdueBorrowers.Handle(r.Context(), overdueborrowers.BuildQuery(a.now()))
	if err != nil {
		a.writeError(r.Context(), w, err)
		return
	}

	writeJSON(w, http.StatusOK, toOverdueBorrowerResponses(result.Borrowers))
}
