package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-auth-api/internal/domain"
)

// httpError maps a service error onto the response envelope. Unknown errors
// are logged and surfaced as a generic 500 so internals never leak to the client.
func httpError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		respondError(w, http.StatusNotFound, err.Error(), nil)
	case errors.Is(err, domain.ErrConflict):
		respondError(w, http.StatusUnprocessableEntity, err.Error(), nil)
	case errors.Is(err, domain.ErrRateLimited):
		respondError(w, http.StatusTooManyRequests, err.Error(), nil)
	case errors.Is(err, domain.ErrUnauthorized):
		respondError(w, http.StatusUnauthorized, err.Error(), nil)
	case errors.Is(err, domain.ErrForbidden):
		respondError(w, http.StatusForbidden, err.Error(), nil)
	case errors.Is(err, domain.ErrInvalidCode), errors.Is(err, domain.ErrBadRequest):
		respondError(w, http.StatusBadRequest, err.Error(), nil)
	default:
		slog.Error("internal error", "err", err)
		respondError(w, http.StatusInternalServerError, "something went wrong", nil)
	}
}
