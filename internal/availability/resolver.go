// Package availability computes the slots still open per treatment on a date.
package availability

import (
	"context"
	"fmt"

	"treatment-booking-api/internal/model"
	"treatment-booking-api/internal/store"
)

type Resolver struct {
	catalog  store.Catalog
	bookings store.Bookings
	joined   store.JoinedAvailability
}

func New(catalog store.Catalog, bookings store.Bookings, joined store.JoinedAvailability) *Resolver {
	return &Resolver{catalog: catalog, bookings: bookings, joined: joined}
}

// Compute loads the catalog and the date's bookings and filters in process.
// Dates are opaque strings compared exactly.
func (r *Resolver) Compute(ctx context.Context, date string) ([]model.Availability, error) {
	treatments, err := r.catalog.ListTreatments(ctx)
	if err != nil {
		return nil, fmt.Errorf("list treatments: %w", err)
	}
	booked, err := r.bookings.FindBookings(ctx, store.BookingQuery{AppointmentDate: date})
	if err != nil {
		return nil, fmt.Errorf("list bookings on %s: %w", date, err)
	}

	taken := make(map[string]map[string]struct{})
	for _, b := range booked {
		set, ok := taken[b.Treatment]
		if !ok {
			set = make(map[string]struct{})
			taken[b.Treatment] = set
		}
		set[b.Slot] = struct{}{}
	}

	out := make([]model.Availability, 0, len(treatments))
	for _, t := range treatments {
		out = append(out, model.Availability{Name: t.Name, Slots: Remaining(t.Slots, taken[t.Name])})
	}
	return out, nil
}

// ComputeJoined lets the store do the join. Output matches Compute.
func (r *Resolver) ComputeJoined(ctx context.Context, date string) ([]model.Availability, error) {
	out, err := r.joined.AvailabilityOn(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("joined availability on %s: %w", date, err)
	}
	for i := range out {
		if out[i].Slots == nil {
			out[i].Slots = []string{}
		}
	}
	return out, nil
}

// Remaining returns slots minus booked, keeping slot order. The result is
// never nil.
func Remaining(slots []string, booked map[string]struct{}) []string {
	out := make([]string, 0, len(slots))
	for _, s := range slots {
		if _, ok := booked[s]; !ok {
			out = append(out, s)
		}
	}
	return out
}
