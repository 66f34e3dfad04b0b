package httpapi

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/AntonStoeckl/library-lending/eventstore"
	"github.com/AntonStoeckl/library-lending/lending/core"
)

const (
	kindConcurrencyConflict = "concurrency_conflict"
	kindInternal            = "internal"
)

type errorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
}

// statusFor maps the error kinds of core to status codes.
// Concurrency conflicts only get here once the command's retries are used up.
func statusFor(err error) int {
	switch {
	case errors.Is(err, core.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, core.ErrLimitExceeded):
		return http.StatusUnprocessableEntity
	case errors.Is(err, core.ErrUnavailable),
		errors.Is(err, core.ErrInvalidState),
		errors.Is(err, core.ErrAlreadyExists):
		return http.StatusConflict
	case errors.Is(err, core.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, eventstore.ErrConcurrencyConflict):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func (a *API) writeError(ctx context.Context, w http.ResponseWriter, err error) {
	status := statusFor(err)

	switch status {
	case http.StatusServiceUnavailable:
		writeJSON(w, status, errorResponse{Error: "concurrent modification, try again", Kind: kindConcurrencyConflict})

	case http.StatusInternalServerError:
		a.logger.ErrorContext(ctx, "request failed", slog.String("error", err.Error()))
		writeJSON(w, status, errorResponse{Error: "internal error", Kind: kindInternal})

	default:
		writeJSON(w, status, errorResponse{Error: err.Error(), Kind: core.KindName(err)})
	}
}

// validationError turns the first failed field into an InvalidInput error.
func validationError(err error) error {
	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) || len(fieldErrors) == 0 {
		return core.InvalidInput("body", err.Error())
	}

	fe := fieldErrors[0]
	detail := "failed on " + fe.Tag()
	if fe.Param() != "" {
		detail += "=" + fe.Param()
	}

	return core.InvalidInput(fe.Field(), detail)
}
