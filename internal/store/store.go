package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"

	"treatment-booking-api/internal/model"
)

var (
	ErrNotFound  = errors.New("not found")
	ErrDuplicate = errors.New("duplicate record")
	ErrInvalidID = errors.New("invalid id")
)

// Catalog lists every treatment option, ordered by name.
type Catalog interface {
	ListTreatments(ctx context.Context) ([]model.TreatmentOption, error)
}

// BookingQuery matches bookings on every non-empty Email and Treatment.
// AppointmentDate is an exact key, the empty date included, unless AnyDate
// is set.
type BookingQuery struct {
	Email           string
	Treatment       string
	AppointmentDate string
	AnyDate         bool
}

type Bookings interface {
	FindBookings(ctx context.Context, q BookingQuery) ([]model.Booking, error)
	// InsertBooking assigns b.ID. It returns ErrDuplicate when the
	// (email, treatment, appointmentDate) triple already exists.
	InsertBooking(ctx context.Context, b *model.Booking) error
}

// JoinedAvailability computes remaining slots inside the store.
type JoinedAvailability interface {
	AvailabilityOn(ctx context.Context, date string) ([]model.Availability, error)
}

type Users interface {
	UserByEmail(ctx context.Context, email string) (*model.UserAccount, error)
	ListUsers(ctx context.Context) ([]model.UserAccount, error)
	CreateUser(ctx context.Context, u *model.UserAccount) error
	// PromoteToAdmin sets role=admin on the account with the given id,
	// creating it when absent.
	PromoteToAdmin(ctx context.Context, id string) (PromoteResult, error)
}

// CatalogWriter is used by the seed command only; the core never writes
// the catalog.
type CatalogWriter interface {
	UpsertTreatment(ctx context.Context, t *model.TreatmentOption) error
}

// Repository is everything a backend provides.
type Repository interface {
	Catalog
	Bookings
	JoinedAvailability
	Users
	CatalogWriter
}

type PromoteResult struct {
	MatchedCount  int64  `json:"matchedCount"`
	ModifiedCount int64  `json:"modifiedCount"`
	UpsertedID    string `json:"upsertedId,omitempty"`
}

// Store is the postgres backend.
type Store struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

var _ Repository = (*Store)(nil)
