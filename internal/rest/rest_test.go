package rest_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"treatment-booking-api/internal/auth"
	"treatment-booking-api/internal/availability"
	"treatment-booking-api/internal/booking"
	"treatment-booking-api/internal/middleware"
	"treatment-booking-api/internal/model"
	"treatment-booking-api/internal/rest"
	"treatment-booking-api/internal/store"
	"treatment-booking-api/internal/store/memstore"
)

const secret = "rest-test-secret"

type fixture struct {
	h     http.Handler
	store *memstore.Store
	auth  *auth.Authorizer
}

func setup(t *testing.T, cfg rest.Config) *fixture {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	st := memstore.New()
	require.NoError(t, st.UpsertTreatment(ctx, &model.TreatmentOption{Name: "Cleaning", Slots: []string{"9am", "10am", "11am"}}))
	a := auth.New(st, secret)
	api := rest.New(
		availability.New(st, st, st),
		booking.New(st, nil, zerolog.Nop()),
		a, st,
		middleware.NewRateLimiter(ctx, 0.001, 3),
		zerolog.Nop(), cfg,
	)
	return &fixture{h: api.Routes(), store: st, auth: a}
}

func (f *fixture) do(t *testing.T, method, path, body, token string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	f.h.ServeHTTP(rec, req)
	return rec
}

func (f *fixture) user(t *testing.T, email string, admin bool) (*model.UserAccount, string) {
	t.Helper()
	u := &model.UserAccount{Email: email}
	require.NoError(t, f.store.CreateUser(context.Background(), u))
	if admin {
		_, err := f.store.PromoteToAdmin(context.Background(), u.ID)
		require.NoError(t, err)
	}
	tok, err := f.auth.IssueToken(context.Background(), email)
	require.NoError(t, err)
	return u, tok.Value
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestHealth(t *testing.T) {
	f := setup(t, rest.Config{})
	rec := f.do(t, http.MethodGet, "/", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "running")
}

func TestBookingFlow(t *testing.T) {
	f := setup(t, rest.Config{})

	rec := f.do(t, http.MethodPost, "/bookings",
		`{"email":"p@x.com","treatment":"Cleaning","appointmentDate":"2024-01-05","slot":"10am","patient":"Pat","price":120}`, "")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode[struct {
		Accepted bool          `json:"accepted"`
		Booking  model.Booking `json:"booking"`
	}](t, rec)
	assert.True(t, created.Accepted)
	assert.NotEmpty(t, created.Booking.ID)
	assert.Equal(t, map[string]string{"patient": "Pat", "price": "120"}, created.Booking.Details)

	rec = f.do(t, http.MethodPost, "/bookings",
		`{"email":"p@x.com","treatment":"Cleaning","appointmentDate":"2024-01-05","slot":"11am"}`, "")
	assert.Equal(t, http.StatusConflict, rec.Code)
	rejected := decode[map[string]any](t, rec)
	assert.Equal(t, false, rejected["accepted"])
	assert.Equal(t, "you have booked an appointment on 2024-01-05", rejected["reason"])

	for _, path := range []string{"/appointmentOptions?date=2024-01-05", "/v2/appointmentOptions?date=2024-01-05"} {
		rec = f.do(t, http.MethodGet, path, "", "")
		require.Equal(t, http.StatusOK, rec.Code)
		got := decode[[]model.Availability](t, rec)
		assert.Equal(t, []model.Availability{{Name: "Cleaning", Slots: []string{"9am", "11am"}}}, got, path)
	}
}

func TestCreateBookingDetailsKeepJSON(t *testing.T) {
	f := setup(t, rest.Config{})

	rec := f.do(t, http.MethodPost, "/bookings", `{
		"email":"p@x.com","treatment":"Cleaning","appointmentDate":"2024-01-07","slot":"9am",
		"price":120.50,"insured":true,"notes":null,
		"address":{"city": "Lagos", "zip": "100001"},"phones":["0801", "0802"]
	}`, "")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	got, err := f.store.FindBookings(context.Background(), store.BookingQuery{Email: "p@x.com", AppointmentDate: "2024-01-07"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, map[string]string{
		"price":   "120.50",
		"insured": "true",
		"address": `{"city":"Lagos","zip":"100001"}`,
		"phones":  `["0801","0802"]`,
	}, got[0].Details)
}

func TestCreateBookingInvalid(t *testing.T) {
	f := setup(t, rest.Config{})

	for _, body := range []string{
		`not json`,
		`{"email":"p@x.com"}`,
		`{"email":"bad","treatment":"Cleaning","appointmentDate":"2024-01-05","slot":"9am"}`,
	} {
		rec := f.do(t, http.MethodPost, "/bookings", body, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code, body)
	}
}

func TestListBookingsAuth(t *testing.T) {
	f := setup(t, rest.Config{})
	_, tok := f.user(t, "p@x.com", false)
	_, other := f.user(t, "q@x.com", false)
	f.do(t, http.MethodPost, "/bookings",
		`{"email":"p@x.com","treatment":"Cleaning","appointmentDate":"2024-01-05","slot":"9am"}`, "")

	rec := f.do(t, http.MethodGet, "/bookings?email=p@x.com", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "unauthorized access", decode[map[string]string](t, rec)["message"])

	rec = f.do(t, http.MethodGet, "/bookings?email=p@x.com", "", "garbage")
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "forbidden access", decode[map[string]string](t, rec)["message"])

	rec = f.do(t, http.MethodGet, "/bookings?email=p@x.com", "", other)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = f.do(t, http.MethodGet, "/bookings?email=p@x.com", "", tok)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]model.Booking](t, rec), 1)
}

func TestIssueToken(t *testing.T) {
	f := setup(t, rest.Config{})
	f.user(t, "p@x.com", false)

	rec := f.do(t, http.MethodGet, "/jwt?email=p@x.com", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	got := decode[map[string]any](t, rec)
	assert.NotEmpty(t, got["accesstoken"])
	assert.NotContains(t, got, "accessToken")
	assert.NotEmpty(t, got["expiresAt"])

	rec = f.do(t, http.MethodGet, "/jwt?email=ghost@x.com", "", "")
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, map[string]any{"accesstoken": ""}, decode[map[string]any](t, rec))

	// burst of 3 per IP
	rec = f.do(t, http.MethodGet, "/jwt?email=p@x.com", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	rec = f.do(t, http.MethodGet, "/jwt?email=p@x.com", "", "")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
}

func TestUsers(t *testing.T) {
	f := setup(t, rest.Config{})

	rec := f.do(t, http.MethodPost, "/users", `{"email":"new@x.com","name":"New","role":"admin"}`, "")
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decode[model.UserAccount](t, rec)
	assert.Equal(t, model.RoleNone, created.Role)

	rec = f.do(t, http.MethodPost, "/users", `{"email":"new@x.com"}`, "")
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = f.do(t, http.MethodPost, "/users", `{"name":"no email"}`, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = f.do(t, http.MethodGet, "/users", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	rec = f.do(t, http.MethodGet, "/users/admin/new@x.com", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	_, tok := f.user(t, "p@x.com", false)
	rec = f.do(t, http.MethodGet, "/users", "", tok)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]model.UserAccount](t, rec), 2)

	rec = f.do(t, http.MethodGet, "/users/admin/new@x.com", "", tok)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, map[string]bool{"isAdmin": false}, decode[map[string]bool](t, rec))
}

func TestOpenDirectory(t *testing.T) {
	f := setup(t, rest.Config{OpenDirectory: true})

	rec := f.do(t, http.MethodGet, "/users", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]\n", rec.Body.String())

	rec = f.do(t, http.MethodGet, "/users/admin/anyone@x.com", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = f.do(t, http.MethodPut, "/users/admin/whatever", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestPromote(t *testing.T) {
	f := setup(t, rest.Config{})
	_, adminTok := f.user(t, "admin@x.com", true)
	target, plainTok := f.user(t, "t@x.com", false)

	rec := f.do(t, http.MethodPut, "/users/admin/"+target.ID, "", plainTok)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = f.do(t, http.MethodPut, "/users/admin/"+target.ID, "", adminTok)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, store.PromoteResult{MatchedCount: 1, ModifiedCount: 1}, decode[store.PromoteResult](t, rec))

	rec = f.do(t, http.MethodPut, "/users/admin/not-an-id", "", adminTok)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// missing target is created as an admin
	missing := "0f8fad5b-d9cb-469f-a165-70867728950e"
	rec = f.do(t, http.MethodPut, "/users/admin/"+missing, "", adminTok)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, missing, decode[store.PromoteResult](t, rec).UpsertedID)
}

func TestCORSPreflight(t *testing.T) {
	f := setup(t, rest.Config{CORSOrigins: []string{"https://clinic.example"}})

	req := httptest.NewRequest(http.MethodOptions, "/bookings", nil)
	req.Header.Set("Origin", "https://clinic.example")
	req.Header.Set("Access-Control-Request-Method", "POST")
	rec := httptest.NewRecorder()
	f.h.ServeHTTP(rec, req)
	assert.Equal(t, "https://clinic.example", rec.Header().Get("Access-Control-Allow-Origin"))
}
