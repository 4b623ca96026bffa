// Package memstore is an in-process store.Repository for local runs and
// tests. It enforces the same uniqueness rules as the database backends.
package memstore

import (
	"context"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"treatment-booking-api/internal/model"
	"treatment-booking-api/internal/store"
)

type Store struct {
	mu         sync.RWMutex
	treatments map[string]model.TreatmentOption
	bookings   []model.Booking
	users      []model.UserAccount
	now        func() time.Time
}

func New() *Store {
	return &Store{
		treatments: make(map[string]model.TreatmentOption),
		now:        time.Now,
	}
}

var _ store.Repository = (*Store)(nil)

func (s *Store) ListTreatments(ctx context.Context) ([]model.TreatmentOption, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.TreatmentOption, 0, len(s.treatments))
	for _, t := range s.treatments {
		t.Slots = slices.Clone(t.Slots)
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *Store) UpsertTreatment(ctx context.Context, t *model.TreatmentOption) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if prev, ok := s.treatments[t.Name]; ok {
		t.ID = prev.ID
	} else if t.ID == "" {
		t.ID = uuid.New().String()
	}
	cp := *t
	cp.Slots = slices.Clone(t.Slots)
	s.treatments[t.Name] = cp
	return nil
}

func (s *Store) AvailabilityOn(ctx context.Context, date string) ([]model.Availability, error) {
	treatments, err := s.ListTreatments(ctx)
	if err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Availability, 0, len(treatments))
	for _, t := range treatments {
		slots := []string{}
		for _, slot := range t.Slots {
			if !s.bookedLocked(t.Name, date, slot) {
				slots = append(slots, slot)
			}
		}
		out = append(out, model.Availability{Name: t.Name, Slots: slots})
	}
	return out, nil
}

func (s *Store) bookedLocked(treatment, date, slot string) bool {
	for _, b := range s.bookings {
		if b.Treatment == treatment && b.AppointmentDate == date && b.Slot == slot {
			return true
		}
	}
	return false
}

func matches(b model.Booking, q store.BookingQuery) bool {
	return (q.Email == "" || b.Email == q.Email) &&
		(q.Treatment == "" || b.Treatment == q.Treatment) &&
		(q.AnyDate || b.AppointmentDate == q.AppointmentDate)
}

func (s *Store) FindBookings(ctx context.Context, q store.BookingQuery) ([]model.Booking, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []model.Booking
	for _, b := range s.bookings {
		if matches(b, q) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (s *Store) InsertBooking(ctx context.Context, b *model.Booking) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	key := store.BookingQuery{Email: b.Email, Treatment: b.Treatment, AppointmentDate: b.AppointmentDate}
	for _, existing := range s.bookings {
		if matches(existing, key) {
			return store.ErrDuplicate
		}
	}
	b.ID = uuid.New().String()
	b.CreatedAt = s.now()
	s.bookings = append(s.bookings, *b)
	return nil
}

func (s *Store) UserByEmail(ctx context.Context, email string) (*model.UserAccount, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.Email != "" && u.Email == email {
			return &u, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *Store) ListUsers(ctx context.Context) ([]model.UserAccount, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.users), nil
}

func (s *Store) CreateUser(ctx context.Context, u *model.UserAccount) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.users {
		if existing.Email != "" && existing.Email == u.Email {
			return store.ErrDuplicate
		}
	}
	u.ID = uuid.New().String()
	u.CreatedAt = s.now()
	s.users = append(s.users, *u)
	return nil
}

func (s *Store) PromoteToAdmin(ctx context.Context, id string) (store.PromoteResult, error) {
	if err := ctx.Err(); err != nil {
		return store.PromoteResult{}, err
	}
	if _, err := uuid.Parse(id); err != nil {
		return store.PromoteResult{}, store.ErrInvalidID
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.users {
		if s.users[i].ID != id {
			continue
		}
		if s.users[i].Role == model.RoleAdmin {
			return store.PromoteResult{MatchedCount: 1}, nil
		}
		s.users[i].Role = model.RoleAdmin
		return store.PromoteResult{MatchedCount: 1, ModifiedCount: 1}, nil
	}
	s.users = append(s.users, model.UserAccount{ID: id, Role: model.RoleAdmin, CreatedAt: s.now()})
	return store.PromoteResult{UpsertedID: id}, nil
}
