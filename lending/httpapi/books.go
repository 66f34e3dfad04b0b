package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/AntonStoeckl/library-lending/lending/core"
	"github.com/AntonStoeckl/library-lending/lending/features/command/addbook"
	"github.com/AntonStoeckl/library-lending/lending/features/command/removebook"
	"github.com/AntonStoeckl/library-lending/lending/features/command/updatebook"
	"github.com/AntonStoeckl/library-lending/lending/features/query/availabilitysummary"
	"github.com/AntonStoeckl/library-lending/lending/features/query/catalog"
	"github.com/AntonStoeckl/library-lending/lending/features/query/similarbooks"
)

// addBook answers 201 with the id from the request (or a generated one).
// If the copies were merged into an existing book with the same title and author,
// that book keeps its own id.
func (a *API) addBook(w http.ResponseWriter, r *http.Request) {
	var req addBookRequest
	if err := a.decodeAndValidate(w, r, &req); err != nil {
		a.writeError(r.Context(), w, err)
		return
	}

	bookID := req.BookID
	if bookID == "" {
		bookID = a.newID()
	}

	command := addbook.BuildCommand(bookID, req.Title, req.Author, req.Category, req.Copies, a.now())

	result, err := a.handlers.AddBook.Handle(r.Context(), command)
	if err != nil {
		a.writeError(r.Context(), w, err)
		return
	}

	status := http.StatusCreated
	if result.Idempotent {
		status = http.StatusOK
	}

	writeJSON(w, status, createdResponse{ID: bookID})
}

func (a *API) updateBook(w http.ResponseWriter, r *http.Request) {
	var req updateBookRequest
	if err := a.decodeAndValidate(w, r, &req); err != nil {
		a.writeError(r.Context(), w, err)
		return
	}

	command := updatebook.BuildCommand(chi.URLParam(r, "id"), req.Title, req.Author, req.Category, req.TotalCopies, a.now())

	if _, err := a.handlers.UpdateBook.Handle(r.Context(), command); err != nil {
		a.writeError(r.Context(), w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (a *API) removeBook(w http.ResponseWriter, r *http.Request) {
	command := removebook.BuildCommand(chi.URLParam(r, "id"), a.now())

	if _, err := a.handlers.RemoveBook.Handle(r.Context(), command); err != nil {
		a.writeError(r.Context(), w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (a *API) listCatalog(w http.ResponseWriter, r *http.Request) {
	query, err := catalogQueryFrom(r)
	if err != nil {
		a.writeError(r.Context(), w, err)
		return
	}

	result, err := a.handlers.Catalog.Handle(r.Context(), query)
	if err != nil {
		a.writeError(r.Context(), w, err)
		return
	}

	writeJSON(w, http.StatusOK, catalogResponse{
		Books: toBookResponses(result.Books),
		Total: result.Total,
		Page:  result.Page,
		Size:  result.Size,
	})
}

func catalogQueryFrom(r *http.Request) (catalog.Query, error) {
	available, err := boolParam(r, "available")
	if err != nil {
		return catalog.Query{}, err
	}

	page, err := intParam(r, "page")
	if err != nil {
		return catalog.Query{}, err
	}

	size, err := intParam(r, "size")
	if err != nil {
		return catalog.Query{}, err
	}

	params := r.URL.Query()

	return catalog.BuildQuery(params.Get("category"), available, page, size, params.Get("sortBy"))
}

func (a *API) similarBooks(w http.ResponseWriter, r *http.Request) {
	bookID := chi.URLParam(r, "id")

	result, err := a.handlers.SimilarBooks.Handle(r.Context(), similarbooks.BuildQuery(bookID))
	if err != nil {
		a.writeError(r.Context(), w, err)
		return
	}

	if !result.Found {
		a.writeError(r.Context(), w, core.BookNotFound(bookID))
		return
	}

	writeJSON(w, http.StatusOK, similarBooksResponse{BookID: result.BookID, Books: toBookResponses(result.Books)})
}

func (a *API) availabilitySummary(w http.ResponseWriter, r *http.Request) {
	result, err := a.handlers.AvailabilitySummary.Handle(r.Context(), availabilitysummary.BuildQuery())
	if err != nil {
		a.writeError(r.Context(), w, err)
		return
	}

	writeJSON(w, http.StatusOK, toCategoryResponses(result.Categories))
}
