package rest

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"treatment-booking-api/internal/auth"
	"treatment-booking-api/internal/middleware"
	"treatment-booking-api/internal/model"
)

const maxBody = 1 << 20

func (a *API) health(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = io.WriteString(w, "clinic booking server is running\n")
}

func (a *API) listAvailability(w http.ResponseWriter, r *http.Request) {
	out, err := a.slots.Compute(r.Context(), r.URL.Query().Get("date"))
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (a *API) listAvailabilityJoined(w http.ResponseWriter, r *http.Request) {
	out, err := a.slots.ComputeJoined(r.Context(), r.URL.Query().Get("date"))
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (a *API) listBookings(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	if err := auth.RequireSelf(middleware.EmailFrom(r.Context()), email); err != nil {
		a.writeError(w, r, err)
		return
	}
	out, err := a.bookings.ListForEmail(r.Context(), email)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// booking fields with a fixed meaning; everything else lands in details
var bookingKeys = map[string]bool{
	"_id": true, "email": true, "treatment": true, "appointmentDate": true,
	"slot": true, "details": true, "createdAt": true,
}

// decodeBooking accepts the flat document web clients send: known fields
// at the top level plus free-form ones like patient, phone and price.
// Free-form strings are kept verbatim, other values as compact JSON text.
func decodeBooking(body []byte) (model.Booking, error) {
	var b model.Booking
	if err := json.Unmarshal(body, &b); err != nil {
		return b, fmt.Errorf("%w: %v", model.ErrInvalid, err)
	}
	var flat map[string]json.RawMessage
	if err := json.Unmarshal(body, &flat); err != nil {
		return b, fmt.Errorf("%w: %v", model.ErrInvalid, err)
	}
	for k, raw := range flat {
		if bookingKeys[k] {
			continue
		}
		v, ok, err := detailText(raw)
		if err != nil {
			return b, fmt.Errorf("%w: field %s: %v", model.ErrInvalid, k, err)
		}
		if !ok {
			continue
		}
		if b.Details == nil {
			b.Details = make(map[string]string)
		}
		b.Details[k] = v
	}
	b.ID, b.CreatedAt = "", time.Time{}
	return b, nil
}

// detailText reports false for null.
func detailText(raw json.RawMessage) (string, bool, error) {
	raw = bytes.TrimSpace(raw)
	switch {
	case len(raw) == 0, bytes.Equal(raw, []byte("null")):
		return "", false, nil
	case raw[0] == '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", false, err
		}
		return s, true, nil
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return "", false, err
	}
	return buf.String(), true, nil
}

type bookingResponse struct {
	Accepted bool           `json:"accepted"`
	Reason   string         `json:"reason,omitempty"`
	Booking  *model.Booking `json:"booking,omitempty"`
}

func (a *API) createBooking(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBody))
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	b, err := decodeBooking(body)
	if err == nil {
		err = model.Validate(&b)
	}
	if err != nil {
		a.writeError(w, r, err)
		return
	}

	res, err := a.bookings.Submit(r.Context(), b)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	if !res.Accepted {
		writeJSON(w, http.StatusConflict, bookingResponse{Reason: res.Reason})
		return
	}
	writeJSON(w, http.StatusCreated, bookingResponse{Accepted: true, Booking: res.Booking})
}

type tokenResponse struct {
	AccessToken string     `json:"accesstoken"`
	ExpiresAt   *time.Time `json:"expiresAt,omitempty"`
}

func (a *API) issueToken(w http.ResponseWriter, r *http.Request) {
	tok, err := a.auth.IssueToken(r.Context(), r.URL.Query().Get("email"))
	if err != nil {
		if errors.Is(err, auth.ErrUnknownAccount) {
			writeJSON(w, http.StatusForbidden, tokenResponse{})
			return
		}
		a.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tokenResponse{AccessToken: tok.Value, ExpiresAt: &tok.ExpiresAt})
}

func (a *API) listUsers(w http.ResponseWriter, r *http.Request) {
	out, err := a.users.ListUsers(r.Context())
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	if out == nil {
		out = []model.UserAccount{}
	}
	writeJSON(w, http.StatusOK, out)
}

func (a *API) checkAdmin(w http.ResponseWriter, r *http.Request) {
	ok, err := a.auth.IsAdmin(r.Context(), chi.URLParam(r, "email"))
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"isAdmin": ok})
}

func (a *API) promote(w http.ResponseWriter, r *http.Request) {
	res, err := a.auth.PromoteToAdmin(r.Context(), middleware.EmailFrom(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

type createUserRequest struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

func (a *API) createUser(w http.ResponseWriter, r *http.Request) {
	var in createUserRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, maxBody)).Decode(&in); err != nil {
		a.writeError(w, r, fmt.Errorf("%w: %v", model.ErrInvalid, err))
		return
	}
	u := &model.UserAccount{Email: in.Email, Name: in.Name, Role: model.RoleNone}
	if err := model.Validate(u); err != nil {
		a.writeError(w, r, err)
		return
	}
	if err := a.users.CreateUser(r.Context(), u); err != nil {
		a.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, u)
}
