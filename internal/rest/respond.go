package rest

import (
	"context"
	"errors"
	"net/http"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/goccy/go-json"

	"treatment-booking-api/internal/auth"
	"treatment-booking-api/internal/model"
	"treatment-booking-api/internal/store"
)

type message struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError is the single place REST maps service errors to status codes.
func (a *API) writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, auth.ErrUnauthorized):
		writeJSON(w, http.StatusUnauthorized, message{auth.ErrUnauthorized.Error()})
	case errors.Is(err, auth.ErrForbidden), errors.Is(err, auth.ErrUnknownAccount):
		writeJSON(w, http.StatusForbidden, message{auth.ErrForbidden.Error()})
	case errors.Is(err, model.ErrInvalid):
		writeJSON(w, http.StatusBadRequest, message{err.Error()})
	case errors.Is(err, store.ErrInvalidID):
		writeJSON(w, http.StatusBadRequest, message{"invalid id"})
	case errors.Is(err, store.ErrDuplicate):
		writeJSON(w, http.StatusConflict, message{"already exists"})
	case errors.Is(err, context.Canceled):
		// client went away
		w.WriteHeader(499)
	default:
		a.log.Error().Err(err).
			Str("request_id", chimw.GetReqID(r.Context())).
			Str("path", r.URL.Path).
			Msg("request failed")
		writeJSON(w, http.StatusInternalServerError, message{"internal error"})
	}
}
