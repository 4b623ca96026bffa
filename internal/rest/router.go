// Package rest serves the JSON HTTP surface used by the web client.
package rest

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/rs/zerolog"

	"treatment-booking-api/internal/auth"
	"treatment-booking-api/internal/availability"
	"treatment-booking-api/internal/booking"
	"treatment-booking-api/internal/middleware"
	"treatment-booking-api/internal/store"
)

type Config struct {
	CORSOrigins []string
	// OpenDirectory serves GET /users and GET /users/admin/{email}
	// without a token.
	OpenDirectory bool
	// MaxRequests is the per-IP ceiling per second across all routes.
	MaxRequests int
}

type API struct {
	slots    *availability.Resolver
	bookings *booking.Controller
	auth     *auth.Authorizer
	users    store.Users
	limiter  *middleware.RateLimiter
	log      zerolog.Logger
	cfg      Config
}

// New wires the REST handlers. limiter throttles token issuance and
// registration per IP.
func New(slots *availability.Resolver, bookings *booking.Controller, a *auth.Authorizer, users store.Users,
	limiter *middleware.RateLimiter, log zerolog.Logger, cfg Config) *API {
	if len(cfg.CORSOrigins) == 0 {
		cfg.CORSOrigins = []string{"*"}
	}
	if cfg.MaxRequests <= 0 {
		cfg.MaxRequests = 50
	}
	return &API{slots: slots, bookings: bookings, auth: a, users: users, limiter: limiter, log: log, cfg: cfg}
}

func (a *API) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logger(a.log))
	r.Use(chimw.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: a.cfg.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))
	r.Use(httprate.LimitByIP(a.cfg.MaxRequests, time.Second))

	bearer := middleware.Bearer(a.auth, a.writeError)

	r.Get("/", a.health)
	r.Get("/appointmentOptions", a.listAvailability)
	r.Get("/v2/appointmentOptions", a.listAvailabilityJoined)

	r.Post("/bookings", a.createBooking)
	r.With(bearer).Get("/bookings", a.listBookings)

	r.With(a.limiter.Limit).Get("/jwt", a.issueToken)

	r.Route("/users", func(r chi.Router) {
		r.With(a.limiter.Limit).Post("/", a.createUser)
		r.With(bearer).Put("/admin/{id}", a.promote)

		r.Group(func(r chi.Router) {
			if !a.cfg.OpenDirectory {
				r.Use(bearer)
			}
			r.Get("/", a.listUsers)
			r.Get("/admin/{email}", a.checkAdmin)
		})
	})
	return r
}
