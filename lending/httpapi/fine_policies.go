package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/AntonStoeckl/library-lending/lending/features/command/setfinepolicy"
	"github.com/AntonStoeckl/library-lending/lending/features/query/finepolicies"
)

func (a *API) setFinePolicy(w http.ResponseWriter, r *http.Request) {
	var req setFinePolicyRequest
	if err := a.decodeAndValidate(w, r, &req); err != nil {
		a.writeError(r.Context(), w, err)
		return
	}

	command := setfinepolicy.BuildCommand(chi.URLParam(r, "category"), req.FinePerDay, a.now())

	if _, err := a.handlers.SetFinePolicy.Handle(r.Context(), command); err != nil {
		a.writeError(r.Context(), w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (a *API) finePolicies(w http.ResponseWriter, r *http.Request) {
	result, err := a.handlers.FinePolicies.Handle(r.Context(), finepolicies.BuildQuery())
	if err != nil {
		a.writeError(r.Context(), w, err)
		return
	}

	writeJSON(w, http.StatusOK, toFinePoliciesResponse(result))
}
